package tracegraph

import (
	"context"
	"log/slog"
	"time"
)

// Clock abstracts "now" so expiry is deterministic in tests. time.Now is the
// production default.
type Clock func() time.Time

// Engine owns the mutable
// working TraceGraph, the Orphanage, and the Evictor, and is the sole
// writer of the published Snapshot. Only one goroutine may call Ingest at a
// time — in production that is the ingest loop started by Run, fed by
// internal/otlpreceiver's decoded batch channel.
type Engine struct {
	working   TraceGraph
	orphanage *Orphanage
	evictor   *Evictor
	pub       *publisher

	retention time.Duration
	clock     Clock
	log       *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock overrides the engine's notion of "now", for tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger attaches a structured logger; the engine uses it to report
// expired orphans at debug level. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine constructs an Engine with the given trace retention window.
func NewEngine(retention time.Duration, opts ...Option) *Engine {
	e := &Engine{
		working:   Empty(),
		orphanage: NewOrphanage(),
		evictor:   NewEvictor(),
		pub:       newPublisher(),
		retention: retention,
		clock:     time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the most recently published Snapshot. Safe to call
// concurrently with Ingest from any number of reader goroutines.
func (e *Engine) Snapshot() *Snapshot {
	return e.pub.Load()
}

// Ingest applies every span in batch in order, then expires aged-out
// traces and orphans, then publishes a new snapshot.
// Must not be called concurrently with itself.
func (e *Engine) Ingest(batch []Span) *Snapshot {
	for _, span := range batch {
		e.addOne(span)
	}
	e.expire()
	return e.pub.publish(e.working)
}

// addOne admits a single span into the working graph. A span whose id is
// already present is ignored, so re-sent spans leave the graph unchanged.
func (e *Engine) addOne(span Span) {
	if _, exists := e.working.Spans[span.Id]; exists {
		return
	}
	if !span.HasParent() {
		g, oldStart := insertRoot(e.working, span)
		e.working = g
		newStart, _ := e.working.Traces[span.TraceId].Start()
		e.evictor.Notify(span.TraceId, oldStart, newStart)
		e.resolveOrphans(span.Id)
		return
	}

	if _, parentPresent := e.working.Subtrees[span.ParentId]; parentPresent {
		e.working = insertChild(e.working, span)
		e.resolveOrphans(span.Id)
		return
	}

	// Missing-parent: store as an orphan rather than rejecting the span.
	// It is re-attempted when its parent arrives.
	e.orphanage.Add(span.ParentId, span, e.clock())
}

// resolveOrphans attaches any children waiting on parentId, recursively.
func (e *Engine) resolveOrphans(parentId SpanId) {
	for _, child := range e.orphanage.TakeChildren(parentId) {
		e.addOne(child)
	}
}

// expire drops every trace whose earliest root start is older than the
// retention window, and every orphan that has waited longer than the
// window.
func (e *Engine) expire() {
	cutoff := e.clock().Add(-e.retention)
	for _, traceId := range e.evictor.SplitBefore(cutoff) {
		e.working = removeTrace(e.working, traceId)
	}
	if dropped := e.orphanage.DropOlderThan(cutoff); dropped > 0 && e.log != nil {
		e.log.Debug("dropped expired orphans", "count", dropped)
	}
}

// OrphanCount reports the number of spans currently waiting on a missing
// parent. Exposed for diagnostics and tests, not part of the public
// snapshot contract.
func (e *Engine) OrphanCount() int {
	return e.orphanage.Len()
}

// Run consumes batches from in until ctx is canceled or in is closed,
// calling Ingest for each and invoking onSnapshot (if non-nil) after every
// publish. It suspends only when its incoming batch channel is empty, and
// observes the root cancellation token in a select arm.
func (e *Engine) Run(ctx context.Context, in <-chan []Span, onSnapshot func(*Snapshot)) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-in:
			if !ok {
				return
			}
			snap := e.Ingest(batch)
			if onSnapshot != nil {
				onSnapshot(snap)
			}
		}
	}
}
