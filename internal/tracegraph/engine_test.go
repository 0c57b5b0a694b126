package tracegraph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(b byte) SpanId {
	var s SpanId
	s[7] = b
	return s
}

func tid(b byte) TraceId {
	var t TraceId
	t[15] = b
	return t
}

// testClock pins "now" well after any timestamp these tests construct (all
// small offsets from the Unix epoch), so retention-based expiry never fires
// unless a test explicitly arranges for it (see TestEvictionLiveness).
func testClock() time.Time { return time.Unix(1_000_000, 0) }

func newTestEngine() *Engine {
	return NewEngine(100_000*time.Hour, WithClock(testClock))
}

func mkSpan(spanID byte, parent byte, trace byte, start, end int) Span {
	var p SpanId
	if parent != 0 {
		p = id(parent)
	}
	return Span{
		Id:       id(spanID),
		TraceId:  tid(trace),
		ParentId: p,
		Name:     "span",
		Start:    time.Unix(int64(start), 0),
		End:      time.Unix(int64(end), 0),
	}
}

// Scenario 1: depth-first order.
func TestTraceIterDepthFirstOrder(t *testing.T) {
	e := newTestEngine()
	a := mkSpan(1, 0, 9, 0, 100)  // A root
	b := mkSpan(2, 1, 9, 10, 90)  // B child of A, start 10
	c := mkSpan(3, 1, 9, 20, 95)  // C child of A, start 20
	d := mkSpan(4, 2, 9, 11, 30)  // D child of B, start 11
	eS := mkSpan(5, 2, 9, 15, 40) // E child of B, start 15
	f := mkSpan(6, 3, 9, 21, 50)  // F child of C, start 21

	snap := e.Ingest([]Span{a, b, c, d, eS, f})
	got := TraceIter(snap.Graph, tid(9))
	want := []SpanId{id(1), id(2), id(4), id(5), id(3), id(6)}
	assert.Equal(t, want, got)
}

// Scenario 2: orphan resolution, parent arrives after child.
func TestOrphanResolution(t *testing.T) {
	e := newTestEngine()
	x := mkSpan(0x10, 0x20, 5, 10, 20) // X, parent P not yet known
	p := mkSpan(0x20, 0, 5, 0, 100)    // P, root

	snap := e.Ingest([]Span{x})
	assert.Equal(t, 1, e.OrphanCount())
	assert.Empty(t, TraceIter(snap.Graph, tid(5)))

	snap = e.Ingest([]Span{p})
	assert.Equal(t, 0, e.OrphanCount())
	got := TraceIter(snap.Graph, tid(5))
	assert.Equal(t, []SpanId{id(0x20), id(0x10)}, got)
}

// Scenario 3: end-time propagation never decreases and widens
// ancestors.
func TestEndTimePropagation(t *testing.T) {
	e := newTestEngine()
	r := mkSpan(1, 0, 1, 0, 100)
	c := mkSpan(2, 1, 1, 5, 200)

	snap := e.Ingest([]Span{r, c})
	assert.Equal(t, time.Unix(200, 0), snap.Graph.Subtrees[id(1)].Bounds.End)
	assert.Equal(t, time.Unix(200, 0), snap.Graph.Subtrees[id(2)].Bounds.End)

	// A later, shorter-ending grandchild must never shrink R's bound.
	gc := mkSpan(3, 2, 1, 6, 50)
	snap = e.Ingest([]Span{gc})
	assert.Equal(t, time.Unix(200, 0), snap.Graph.Subtrees[id(1)].Bounds.End)
}

// Scenario 4: eviction liveness.
func TestEvictionLiveness(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	clock := func() time.Time { return now }
	e := NewEngine(10*time.Second, WithClock(clock))

	t1 := mkSpan(1, 0, 1, 0, 0)
	t1.Start = now.Add(-20 * time.Second)
	t1.End = t1.Start

	t2 := mkSpan(2, 0, 2, 0, 0)
	t2.Start = now.Add(-1 * time.Second)
	t2.End = t2.Start

	snap := e.Ingest([]Span{t1, t2})
	_, t1Present := snap.Graph.Traces[tid(1)]
	_, t2Present := snap.Graph.Traces[tid(2)]
	assert.False(t, t1Present, "trace older than retention must be evicted")
	assert.True(t, t2Present, "trace within retention must remain")
}

func TestIngestIsIdempotent(t *testing.T) {
	e := newTestEngine()
	r := mkSpan(1, 0, 1, 0, 100)
	c := mkSpan(2, 1, 1, 5, 50)

	snap1 := e.Ingest([]Span{r, c})
	snap2 := e.Ingest([]Span{r, c})

	assert.Equal(t, snap1.Graph.Spans, snap2.Graph.Spans)
	assert.Equal(t, snap1.Graph.Subtrees, snap2.Graph.Subtrees)
	assert.Equal(t, snap1.Graph.Traces, snap2.Graph.Traces)
}

func TestAncestorIterStopsAtRoot(t *testing.T) {
	e := newTestEngine()
	a := mkSpan(1, 0, 1, 0, 100)
	b := mkSpan(2, 1, 1, 10, 50)
	c := mkSpan(3, 2, 1, 20, 40)

	snap := e.Ingest([]Span{a, b, c})
	got := AncestorIter(snap.Graph, id(3))
	assert.Equal(t, []SpanId{id(2), id(1)}, got)
	assert.Empty(t, AncestorIter(snap.Graph, id(1)))
}

func TestUniversalInvariantsHoldAfterBatch(t *testing.T) {
	e := newTestEngine()
	a := mkSpan(1, 0, 1, 0, 100)
	b := mkSpan(2, 1, 1, 10, 50)
	orphan := mkSpan(3, 0x99, 1, 5, 6) // parent never arrives

	snap := e.Ingest([]Span{a, b, orphan})
	g := snap.Graph

	for spanID := range g.Subtrees {
		_, ok := g.Spans[spanID]
		require.True(t, ok, "every subtree key must be a span")
	}
	for spanID := range g.Spans {
		_, ok := g.Subtrees[spanID]
		require.True(t, ok, "every span must have a subtree")
	}
	for parentID, tree := range g.Subtrees {
		for _, childID := range tree.ChildIds() {
			child, ok := g.Spans[childID]
			require.True(t, ok)
			assert.Equal(t, parentID, child.ParentId)
		}
	}
	for traceID, meta := range g.Traces {
		ids := meta.RootIds()
		require.NotEmpty(t, ids, "trace %v must have at least one root", traceID)
		for _, rootID := range ids {
			root, ok := g.Spans[rootID]
			require.True(t, ok)
			assert.False(t, root.HasParent())
		}
	}
	// The orphan never got attached (its parent never arrived).
	_, orphanPresent := g.Spans[id(3)]
	assert.False(t, orphanPresent)
	assert.Equal(t, 1, e.OrphanCount())
}
