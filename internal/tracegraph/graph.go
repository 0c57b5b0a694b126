package tracegraph

import (
	"sort"
	"time"
)

// childEntry is one element of an ordered start-time -> SpanId multimap.
type childEntry struct {
	start time.Time
	id    SpanId
}

// childList is an append-only, insertion-ordered multimap from start time to
// SpanId. Because it is only ever grown with append, a slice header captured
// before a later append remains valid and unaffected (see the TraceGraph
// doc on the clone-on-write discipline) — this is what lets readers
// hold an older snapshot safely while the writer keeps appending.
type childList []childEntry

func (c childList) withAppended(start time.Time, id SpanId) childList {
	return append(c, childEntry{start: start, id: id})
}

// ascending returns ids ordered by start time ascending, ties broken by
// insertion order (stable sort over the insertion-ordered slice).
func (c childList) ascending() []SpanId {
	cp := make([]childEntry, len(c))
	copy(cp, c)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].start.Before(cp[j].start) })
	out := make([]SpanId, len(cp))
	for i, e := range cp {
		out[i] = e.id
	}
	return out
}

// descending returns ids ordered by start time descending ("most recent
// root first"), ties broken by insertion order.
func (c childList) descending() []SpanId {
	cp := make([]childEntry, len(c))
	copy(cp, c)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].start.After(cp[j].start) })
	out := make([]SpanId, len(cp))
	for i, e := range cp {
		out[i] = e.id
	}
	return out
}

func (c childList) firstStart() (time.Time, bool) {
	if len(c) == 0 {
		return time.Time{}, false
	}
	first := c[0].start
	for _, e := range c[1:] {
		if e.start.Before(first) {
			first = e.start
		}
	}
	return first, true
}

// Bounds is the (start, tree-end) interval of a SubTree.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// SubTree is the per-span aggregate: its own time bounds
// (widened to include every descendant's end) plus its ordered children.
type SubTree struct {
	Bounds   Bounds
	Children childList
}

// ChildIds returns the span's children in ascending-start-time order.
func (t SubTree) ChildIds() []SpanId {
	return t.Children.ascending()
}

// TraceMeta is the per-trace aggregate: the set of spans with no parent
// currently in the graph, ordered by start time.
type TraceMeta struct {
	Roots childList
}

// RootIds returns the trace's roots, most-recent-start-time first.
func (m TraceMeta) RootIds() []SpanId {
	return m.Roots.descending()
}

// Start is the first root's start time (ascending order's head).
func (m TraceMeta) Start() (time.Time, bool) {
	return m.Roots.firstStart()
}

// TraceGraph is the three mutually-consistent mappings Spans, Subtrees,
// and Traces. It is treated as an immutable value once published: every
// mutating operation in
// this package takes a TraceGraph and returns a new one, sharing whatever
// sub-structure it did not touch (see doc comment on childList, and
// engine.go for how the single writer task uses this).
type TraceGraph struct {
	Spans    map[SpanId]Span
	Subtrees map[SpanId]SubTree
	Traces   map[TraceId]TraceMeta
}

// Empty returns a TraceGraph with no spans, subtrees, or traces.
func Empty() TraceGraph {
	return TraceGraph{
		Spans:    map[SpanId]Span{},
		Subtrees: map[SpanId]SubTree{},
		Traces:   map[TraceId]TraceMeta{},
	}
}

// shallowClone copies the three top-level maps so that mutating the result
// never affects a graph value a reader might still hold. Per-entry values
// (Span, SubTree, TraceMeta) are themselves replaced wholesale wherever
// mutated rather than edited in place, so unmodified entries are shared
// between the old and new graph at no extra cost.
func (g TraceGraph) shallowClone() TraceGraph {
	next := TraceGraph{
		Spans:    make(map[SpanId]Span, len(g.Spans)),
		Subtrees: make(map[SpanId]SubTree, len(g.Subtrees)),
		Traces:   make(map[TraceId]TraceMeta, len(g.Traces)),
	}
	for k, v := range g.Spans {
		next.Spans[k] = v
	}
	for k, v := range g.Subtrees {
		next.Subtrees[k] = v
	}
	for k, v := range g.Traces {
		next.Traces[k] = v
	}
	return next
}

// HasSpan reports whether id is currently a live span.
func (g TraceGraph) HasSpan(id SpanId) bool {
	_, ok := g.Spans[id]
	return ok
}

// insertRoot admits span as a root of its trace: spans.add + fresh subtree +
// append to the trace's roots. Returns the new graph and the trace's
// previous first-root start time (if any), for Evictor notification.
func insertRoot(g TraceGraph, span Span) (TraceGraph, *time.Time) {
	next := g.shallowClone()
	next.Spans[span.Id] = span
	next.Subtrees[span.Id] = SubTree{Bounds: Bounds{Start: span.Start, End: span.End}}

	meta, existed := next.Traces[span.TraceId]
	var oldStart *time.Time
	if existed {
		if s, ok := meta.Start(); ok {
			t := s
			oldStart = &t
		}
	}
	meta.Roots = meta.Roots.withAppended(span.Start, span.Id)
	next.Traces[span.TraceId] = meta
	return next, oldStart
}

// insertChild admits span as a child of parent, which must already be
// present in next.Subtrees, then propagates the tree-end bound upward
// through every ancestor. Propagation never decreases a
// bound: at each ancestor it stops as soon as the existing bound already
// covers the new span's end.
func insertChild(g TraceGraph, span Span) TraceGraph {
	next := g.shallowClone()
	next.Spans[span.Id] = span
	next.Subtrees[span.Id] = SubTree{Bounds: Bounds{Start: span.Start, End: span.End}}

	parentTree := next.Subtrees[span.ParentId]
	parentTree.Children = parentTree.Children.withAppended(span.Start, span.Id)
	next.Subtrees[span.ParentId] = parentTree

	propagateEnd(next, span.ParentId, span.End)
	return next
}

// propagateEnd walks from start up through parent links, widening each
// ancestor's Bounds.End to at least newEnd, stopping at the first ancestor
// whose bound already covers it (or at a span with no resident parent).
func propagateEnd(g TraceGraph, start SpanId, newEnd time.Time) {
	cur := start
	for {
		tree, ok := g.Subtrees[cur]
		if !ok {
			return
		}
		if !tree.Bounds.End.Before(newEnd) {
			return
		}
		tree.Bounds.End = newEnd
		g.Subtrees[cur] = tree

		span, ok := g.Spans[cur]
		if !ok || !span.HasParent() {
			return
		}
		if _, parentPresent := g.Subtrees[span.ParentId]; !parentPresent {
			return
		}
		cur = span.ParentId
	}
}

// removeTrace deletes a trace and every span/subtree reachable from its
// roots (depth-first, start-time order), returning the new graph.
func removeTrace(g TraceGraph, trace TraceId) TraceGraph {
	meta, ok := g.Traces[trace]
	if !ok {
		return g
	}
	next := g.shallowClone()
	delete(next.Traces, trace)

	var stack []SpanId
	roots := meta.Roots.ascending()
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tree, present := next.Subtrees[id]
		delete(next.Subtrees, id)
		delete(next.Spans, id)
		if !present {
			continue
		}
		children := tree.Children.ascending()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return next
}
