package tracegraph

import (
	"sort"
	"time"
)

type evictorEntry struct {
	at    time.Time
	trace TraceId
}

// Evictor tracks the start time of each live trace in a time-ordered
// structure so expire() can cheaply split off everything older than the
// retention cutoff. It is engine-only working state, mirroring the
// recentIDs ring buffer in internal/trace/manager.go generalized from
// count-based to age-based eviction.
type Evictor struct {
	// entries is kept sorted ascending by `at`; insert binary-searches for
	// the slot after every entry with an equal `at`, so ties keep insertion
	// order. At this scale a sorted slice is simpler than a balanced tree.
	entries []evictorEntry
}

// NewEvictor returns an empty Evictor.
func NewEvictor() *Evictor {
	return &Evictor{}
}

// Notify records that trace's first-root start time changed from oldStart
// (nil if the trace is new) to newStart.
func (e *Evictor) Notify(trace TraceId, oldStart *time.Time, newStart time.Time) {
	if oldStart != nil {
		e.remove(trace, *oldStart)
	}
	e.insert(trace, newStart)
}

func (e *Evictor) insert(trace TraceId, at time.Time) {
	idx := sort.Search(len(e.entries), func(i int) bool { return e.entries[i].at.After(at) })
	e.entries = append(e.entries, evictorEntry{})
	copy(e.entries[idx+1:], e.entries[idx:])
	e.entries[idx] = evictorEntry{at: at, trace: trace}
}

func (e *Evictor) remove(trace TraceId, at time.Time) {
	for i, entry := range e.entries {
		if entry.trace == trace && entry.at.Equal(at) {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

// SplitBefore removes and returns every trace whose recorded start time is
// strictly before cutoff.
func (e *Evictor) SplitBefore(cutoff time.Time) []TraceId {
	idx := sort.Search(len(e.entries), func(i int) bool { return !e.entries[i].at.Before(cutoff) })
	if idx == 0 {
		return nil
	}
	expired := make([]TraceId, idx)
	for i := 0; i < idx; i++ {
		expired[i] = e.entries[i].trace
	}
	e.entries = e.entries[idx:]
	return expired
}

// Len reports the number of traces currently tracked.
func (e *Evictor) Len() int {
	return len(e.entries)
}
