package appui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/amaru-doctor/doctor/internal/appui/textutil"
	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// FlameGraph renders one trace's spans as a bar-per-span chart: each span
// gets a row whose bar is offset and sized proportionally to its
// SubTree.Bounds within the trace's overall span, in the same depth-first,
// ascending-child-start order TraceSpanView walks for its indented tree.
// Grounded on components/flame_graph.rs and view/flame_graph.rs's
// bounds-proportional bar layout, redrawn with lipgloss-styled block
// characters in place of a custom terminal canvas.
type FlameGraph struct {
	snapshot SnapshotSource
	trace    tracegraph.TraceId
	hasTrace bool

	viewport viewport.Model
	width    int
	height   int
}

var _ layout.Component = (*FlameGraph)(nil)

func NewFlameGraph(snapshot SnapshotSource) *FlameGraph {
	vp := viewport.New(60, 10)
	return &FlameGraph{snapshot: snapshot, viewport: vp, width: 60, height: 10}
}

func (f *FlameGraph) ID() layout.ComponentID {
	return layout.ComponentID("flamegraph")
}

// Focus points the graph at a specific trace, mirroring
// TraceSpanView.Focus so both views can be kept in sync by a single caller.
func (f *FlameGraph) Focus(id tracegraph.TraceId) {
	f.trace = id
	f.hasTrace = true
}

func (f *FlameGraph) SetSize(w, h int) {
	f.width, f.height = w, h
	f.viewport.Width = w
	f.viewport.Height = h
}

func (f *FlameGraph) HandleKey(ev layout.KeyEvent) []layout.Action {
	switch ev.Key {
	case "j", "down":
		f.viewport.LineDown(1)
	case "k", "up":
		f.viewport.LineUp(1)
	case "ctrl+d", "pgdown":
		f.viewport.PageDown()
	case "ctrl+u", "pgup":
		f.viewport.PageUp()
	case "g", "home":
		f.viewport.GotoTop()
	case "G", "end":
		f.viewport.GotoBottom()
	}
	return nil
}

func (f *FlameGraph) HandleMouse(ev layout.MouseEvent) []layout.Action {
	switch ev.Action {
	case "wheeldown":
		f.viewport.LineDown(1)
	case "wheelup":
		f.viewport.LineUp(1)
	}
	return nil
}

// Render walks the current snapshot's graph depth-first from the focused
// trace's roots, one two-line block per span: the offset/width bar on the
// first line, the truncated span name and duration on the second.
func (f *FlameGraph) Render() string {
	f.viewport.Width = f.width
	f.viewport.Height = f.height
	if !f.hasTrace || f.snapshot == nil {
		f.viewport.SetContent(Styles.Muted.Render("no trace selected"))
		return f.viewport.View()
	}
	snap := f.snapshot()
	if snap == nil {
		f.viewport.SetContent(Styles.Muted.Render("no snapshot yet"))
		return f.viewport.View()
	}
	g := snap.Graph
	meta, ok := g.Traces[f.trace]
	if !ok {
		f.viewport.SetContent(Styles.Muted.Render("trace not found"))
		return f.viewport.View()
	}
	roots := meta.RootIds()
	start, end, ok := traceBounds(g, roots)
	if !ok {
		f.viewport.SetContent(Styles.Muted.Render("no spans"))
		return f.viewport.View()
	}
	total := end.Sub(start)
	if total <= 0 {
		total = time.Nanosecond
	}

	barWidth := f.width - 2
	if barWidth < 1 {
		barWidth = 1
	}

	var b strings.Builder
	for _, root := range roots {
		renderFlameBar(&b, g, root, start, total, barWidth, 0)
	}
	f.viewport.SetContent(b.String())
	return f.viewport.View()
}

func renderFlameBar(b *strings.Builder, g tracegraph.TraceGraph, id tracegraph.SpanId, traceStart time.Time, total time.Duration, barWidth, level int) {
	span, ok := g.Spans[id]
	if !ok {
		return
	}
	tree := g.Subtrees[id]

	offset := int(int64(span.Start.Sub(traceStart)) * int64(barWidth) / int64(total))
	width := int(int64(span.Duration()) * int64(barWidth) / int64(total))
	if offset < 0 {
		offset = 0
	}
	if offset > barWidth-1 {
		offset = barWidth - 1
	}
	if width < 1 {
		width = 1
	}
	if offset+width > barWidth {
		width = barWidth - offset
	}

	style := Styles.Normal
	if span.Status == tracegraph.StatusCodeError {
		style = Styles.StatusError
	}

	b.WriteString(strings.Repeat(" ", offset))
	b.WriteString(style.Render(strings.Repeat("▇", width)))
	b.WriteByte('\n')

	indent := strings.Repeat("  ", level)
	name := textutil.Truncate(span.Name, barWidth-len(indent)-12)
	b.WriteString(Styles.Muted.Render(indent + name + " " + span.Duration().String()))
	b.WriteByte('\n')

	for _, child := range tree.ChildIds() {
		renderFlameBar(b, g, child, traceStart, total, barWidth, level+1)
	}
}

// traceBounds is the widest (start, end) interval covering every root's
// SubTree.Bounds, the denominator every bar's offset/width is computed
// against.
func traceBounds(g tracegraph.TraceGraph, roots []tracegraph.SpanId) (time.Time, time.Time, bool) {
	var start, end time.Time
	found := false
	for _, r := range roots {
		tree, ok := g.Subtrees[r]
		if !ok {
			continue
		}
		if !found || tree.Bounds.Start.Before(start) {
			start = tree.Bounds.Start
		}
		if !found || tree.Bounds.End.After(end) {
			end = tree.Bounds.End
		}
		found = true
	}
	return start, end, found
}
