package tracegraph

import "time"

// waitingSpan is an orphan plus the time it was first observed, used by
// expire() to drop orphans that never found their parent.
type waitingSpan struct {
	span     Span
	waitedAt time.Time
}

// Orphanage holds spans whose parent has not yet arrived, keyed by the
// missing parent's SpanId. It is engine-only working state: it is never
// published as part of a TraceGraph snapshot.
type Orphanage struct {
	byParent map[SpanId][]waitingSpan
}

// NewOrphanage returns an empty Orphanage.
func NewOrphanage() *Orphanage {
	return &Orphanage{byParent: make(map[SpanId][]waitingSpan)}
}

// Add stores span as waiting on parent, observed at now.
func (o *Orphanage) Add(parent SpanId, span Span, now time.Time) {
	o.byParent[parent] = append(o.byParent[parent], waitingSpan{span: span, waitedAt: now})
}

// TakeChildren removes and returns every span waiting on parent, in the
// order they were added.
func (o *Orphanage) TakeChildren(parent SpanId) []Span {
	waiting, ok := o.byParent[parent]
	if !ok {
		return nil
	}
	delete(o.byParent, parent)
	out := make([]Span, len(waiting))
	for i, w := range waiting {
		out[i] = w.span
	}
	return out
}

// DropOlderThan removes every orphan first observed before cutoff,
// returning how many were dropped.
func (o *Orphanage) DropOlderThan(cutoff time.Time) int {
	dropped := 0
	for parent, waiting := range o.byParent {
		kept := waiting[:0:0]
		for _, w := range waiting {
			if w.waitedAt.Before(cutoff) {
				dropped++
				continue
			}
			kept = append(kept, w)
		}
		if len(kept) == 0 {
			delete(o.byParent, parent)
		} else {
			o.byParent[parent] = kept
		}
	}
	return dropped
}

// Len reports the total number of orphans currently waiting, across all
// parents. Used by tests and by the status line's diagnostic counters.
func (o *Orphanage) Len() int {
	n := 0
	for _, waiting := range o.byParent {
		n += len(waiting)
	}
	return n
}
