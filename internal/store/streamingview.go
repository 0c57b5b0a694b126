package store

import (
	"context"
	"sync"
)

// EndBehavior configures what cursor_next/cursor_back do once the cursor
// reaches a known-finite dataset's boundary. This view standardizes on
// Clamp; Wrap is kept for parity with the upstream node's scroll.rs,
// which wrapped.
type EndBehavior int

const (
	Clamp EndBehavior = iota
	Wrap
)

// StreamingView is an append-only buffer fed lazily from a Producer,
// windowed for display without loading
// the whole dataset eagerly. The buffer never shrinks until the view
// itself is discarded (Close).
type StreamingView[T any] struct {
	mu sync.Mutex

	buffer    []T
	exhausted bool
	ch        chan T
	cancel    context.CancelFunc

	selected     int
	windowStart  int
	windowHeight int
	end          EndBehavior
}

// defaultChanCapacity bounds the internal producer->consumer channel,
// giving the blocking worker back-pressure.
const defaultChanCapacity = 256

// NewStreamingView starts a dedicated pump goroutine that drains producer
// into a bounded channel, and returns a view with the given initial window
// height set via SetHeight. Since prefetch never blocks, the initial buffer
// holds only what the pump has already delivered, which may be nothing.
func NewStreamingView[T any](ctx context.Context, producer Producer[T], height int) *StreamingView[T] {
	ctx, cancel := context.WithCancel(ctx)
	v := &StreamingView[T]{
		ch:     make(chan T, defaultChanCapacity),
		cancel: cancel,
		end:    Clamp,
	}
	go v.pump(ctx, producer)
	v.SetHeight(height)
	return v
}

// SetEndBehavior configures clamp vs. wrap at dataset boundaries.
func (v *StreamingView[T]) SetEndBehavior(b EndBehavior) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.end = b
}

func (v *StreamingView[T]) pump(ctx context.Context, p Producer[T]) {
	defer close(v.ch)
	for {
		item, ok := p.Next(ctx)
		if !ok {
			return
		}
		select {
		case v.ch <- item:
		case <-ctx.Done():
			return
		}
	}
}

// Close discards the view by canceling the pump's context: the pump stops
// at its next send attempt (or sooner, if the producer itself observes the
// canceled context), then closes the channel.
func (v *StreamingView[T]) Close() {
	v.cancel()
}

// prefetchToLocked pulls whatever is immediately available from the
// channel, non-blockingly, until the buffer covers maxIndex or the
// producer has nothing ready right now (it may still have more later —
// exhausted is only set once the channel is actually closed). Must be
// called with v.mu held.
func (v *StreamingView[T]) prefetchToLocked(maxIndex int) {
	for len(v.buffer) <= maxIndex {
		select {
		case item, ok := <-v.ch:
			if !ok {
				v.exhausted = true
				return
			}
			v.buffer = append(v.buffer, item)
		default:
			return
		}
	}
}

func (v *StreamingView[T]) maxVisibleIndexLocked() int {
	return v.windowStart + v.windowHeight - 1
}

// clampSelectedLocked enforces ViewWindow's invariant: window_start <=
// selected_index < window_start+window_height, and selected in
// [0, len(buffer)).
func (v *StreamingView[T]) clampSelectedLocked() {
	if len(v.buffer) == 0 {
		v.selected = 0
		return
	}
	if v.selected > len(v.buffer)-1 {
		v.selected = len(v.buffer) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected < v.windowStart {
		v.selected = v.windowStart
	}
	if v.selected > v.maxVisibleIndexLocked() {
		v.selected = v.maxVisibleIndexLocked()
	}
}

func (v *StreamingView[T]) clampWindowStartLocked() {
	if v.windowStart < 0 {
		v.windowStart = 0
	}
	maxStart := v.maxWindowStartLocked()
	if v.windowStart > maxStart {
		v.windowStart = maxStart
	}
}

// maxWindowStartLocked returns the furthest the window may scroll right
// now. When the dataset is known-finite (exhausted), that is the logical
// end (total-height, floored at zero); otherwise it is bounded only by
// what has been buffered so far, since the true end is unknown.
func (v *StreamingView[T]) maxWindowStartLocked() int {
	total := len(v.buffer)
	if v.exhausted {
		if total-v.windowHeight < 0 {
			return 0
		}
		return total - v.windowHeight
	}
	if total == 0 {
		return 0
	}
	return total - 1
}

// SetHeight sets the visible window height, then prefetches toward the
// maximum visible index, taking only items the pump has already
// delivered (see prefetchToLocked).
func (v *StreamingView[T]) SetHeight(h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if h < 1 {
		h = 1
	}
	v.windowHeight = h
	v.prefetchToLocked(v.maxVisibleIndexLocked())
	v.clampWindowStartLocked()
	v.clampSelectedLocked()
}

// CursorNext moves the selection forward by one, prefetching as needed.
// At the end of a known-finite dataset it wraps or clamps per config.
func (v *StreamingView[T]) CursorNext() {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.selected + 1
	v.prefetchToLocked(next)
	if next < len(v.buffer) {
		v.selected = next
		if v.selected > v.maxVisibleIndexLocked() {
			v.windowStart = v.selected - v.windowHeight + 1
		}
		return
	}
	if v.exhausted && v.end == Wrap && len(v.buffer) > 0 {
		v.selected = 0
		v.windowStart = 0
	}
	// Clamp (default), or not yet exhausted: stay at the current index.
}

// CursorBack moves the selection back by one.
func (v *StreamingView[T]) CursorBack() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.selected > 0 {
		v.selected--
		if v.selected < v.windowStart {
			v.windowStart = v.selected
		}
		return
	}
	if v.end == Wrap && v.exhausted && len(v.buffer) > 0 {
		v.prefetchToLocked(len(v.buffer)) // best-effort: pull anything pending
		v.selected = len(v.buffer) - 1
		v.windowStart = v.maxWindowStartLocked()
	}
}

// AdvanceWindow scrolls the viewport forward without moving the selection
// away from its absolute index, unless doing so would violate the
// ViewWindow invariant — in which case the selection is pulled back onto
// the newly visible window.
func (v *StreamingView[T]) AdvanceWindow() {
	v.mu.Lock()
	defer v.mu.Unlock()

	target := v.windowStart + 1
	v.prefetchToLocked(target + v.windowHeight - 1)
	maxStart := v.maxWindowStartLocked()
	if target > maxStart {
		target = maxStart
	}
	v.windowStart = target
	v.clampSelectedLocked()
}

// RetreatWindow scrolls the viewport back by one row.
func (v *StreamingView[T]) RetreatWindow() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.windowStart > 0 {
		v.windowStart--
	}
	v.clampSelectedLocked()
}

// SelectIndexByRow sets the selection to windowStart+r, clamped to the
// buffer's current length. r is a row within the visible window.
func (v *StreamingView[T]) SelectIndexByRow(r int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	target := v.windowStart + r
	v.prefetchToLocked(target)
	if target < 0 {
		target = 0
	}
	if len(v.buffer) > 0 && target > len(v.buffer)-1 {
		target = len(v.buffer) - 1
	}
	v.selected = target
}

// SelectedItem returns the currently selected item, or ok=false if the
// buffer is empty.
func (v *StreamingView[T]) SelectedItem() (item T, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.buffer) == 0 {
		var zero T
		return zero, false
	}
	return v.buffer[v.selected], true
}

// Window returns a copy of the currently visible slice of the buffer and
// the selected index's row within it (-1 if the buffer is empty).
func (v *StreamingView[T]) Window() (items []T, selectedRow int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.buffer) == 0 {
		return nil, -1
	}
	end := v.maxVisibleIndexLocked() + 1
	if end > len(v.buffer) {
		end = len(v.buffer)
	}
	out := make([]T, end-v.windowStart)
	copy(out, v.buffer[v.windowStart:end])
	return out, v.selected - v.windowStart
}

// SelectedIndex returns the absolute selected index.
func (v *StreamingView[T]) SelectedIndex() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Len returns how many items have been materialized into the buffer so
// far. This is not the dataset's total length unless Exhausted() is true.
func (v *StreamingView[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.buffer)
}

// Exhausted reports whether the producer has signaled end-of-stream.
func (v *StreamingView[T]) Exhausted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.exhausted
}

// TotalLen returns the dataset's total length and true, but only once
// Exhausted() is true; otherwise ok is false.
func (v *StreamingView[T]) TotalLen() (n int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.exhausted {
		return 0, false
	}
	return len(v.buffer), true
}

// Tick drains whatever the producer has ready without blocking, growing
// the buffer up to the currently visible window. Called once per Tick
// event by the root component so views keep pace with a
// live-updating producer even without an explicit cursor move.
func (v *StreamingView[T]) Tick() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prefetchToLocked(v.maxVisibleIndexLocked())
}

// PumpN drains up to n items from the producer into the buffer,
// non-blocking, regardless of the currently visible window. This is what
// internal/search's Cache.Poll uses, since a cached search result
// should keep growing in the background even while a different view is on
// screen. Returns how many items were actually pulled.
func (v *StreamingView[T]) PumpN(n int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	count := 0
	for count < n {
		select {
		case item, ok := <-v.ch:
			if !ok {
				v.exhausted = true
				return count
			}
			v.buffer = append(v.buffer, item)
			count++
		default:
			return count
		}
	}
	return count
}
