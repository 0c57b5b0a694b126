package tracegraph

// TraceIter yields every SpanId of trace, depth-first, most-recent-root
// first: roots are visited in descending start-time order; within a
// subtree, children are visited in ascending start-time order, each child
// fully explored (pre-order) before its next sibling.
func TraceIter(g TraceGraph, trace TraceId) []SpanId {
	meta, ok := g.Traces[trace]
	if !ok {
		return nil
	}
	var out []SpanId
	for _, root := range meta.RootIds() {
		out = append(out, DescendentIter(g, root)...)
	}
	return out
}

// DescendentIter yields span and every descendant, pre-order, children in
// ascending start-time order. Equivalent to trace_iter seeded with a single
// span.
func DescendentIter(g TraceGraph, span SpanId) []SpanId {
	var out []SpanId
	var walk func(id SpanId)
	walk = func(id SpanId) {
		if _, ok := g.Spans[id]; !ok {
			// Invariant break: a child id referenced a span no longer (or
			// never) present. Skip the bad edge rather than crash; the skip
			// is silent, neither this function nor its callers log it.
			return
		}
		out = append(out, id)
		tree, ok := g.Subtrees[id]
		if !ok {
			return
		}
		for _, child := range tree.ChildIds() {
			walk(child)
		}
	}
	walk(span)
	return out
}

// AncestorIter yields the parent, grandparent, and so on up to the root,
// stopping at the first span whose parent is absent from the graph. It does
// not include span itself.
func AncestorIter(g TraceGraph, span SpanId) []SpanId {
	var out []SpanId
	cur, ok := g.Spans[span]
	if !ok {
		return out
	}
	seen := map[SpanId]bool{span: true}
	for cur.HasParent() {
		parent, ok := g.Spans[cur.ParentId]
		if !ok {
			break
		}
		if seen[parent.Id] {
			// A cyclic parent chain should never occur (spans only ever
			// have one owner); stop rather than loop forever.
			break
		}
		seen[parent.Id] = true
		out = append(out, parent.Id)
		cur = parent
	}
	return out
}
