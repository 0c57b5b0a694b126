package appui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/amaru-doctor/doctor/internal/appui/textutil"
	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// SnapshotSource gives TraceSpanView read access to the engine's latest
// published snapshot without coupling this view to *tracegraph.Engine
// directly (it only ever needs the current value, never Ingest).
type SnapshotSource func() *tracegraph.Snapshot

// TraceSpanView renders one trace's span tree as an indented list,
// grounded on TraceView (internal/ui/trace_view.go) — same
// bubbles/viewport scroll handling, with content rebuilt on every Render,
// but walking the trace's RootIds and SubTree.ChildIds instead of an
// ASCII parse-tree.
type TraceSpanView struct {
	snapshot SnapshotSource
	trace    tracegraph.TraceId
	hasTrace bool

	viewport viewport.Model
	width    int
	height   int
}

var _ layout.Component = (*TraceSpanView)(nil)

func NewTraceSpanView(snapshot SnapshotSource) *TraceSpanView {
	vp := viewport.New(60, 20)
	return &TraceSpanView{snapshot: snapshot, viewport: vp, width: 60, height: 20}
}

func (t *TraceSpanView) ID() layout.ComponentID {
	return layout.ComponentID("trace")
}

// Focus points the view at a specific trace, e.g. once the user selects an
// entity whose value embeds a trace id worth inspecting.
func (t *TraceSpanView) Focus(id tracegraph.TraceId) {
	t.trace = id
	t.hasTrace = true
}

func (t *TraceSpanView) SetSize(w, h int) {
	t.width, t.height = w, h
	t.viewport.Width = w
	t.viewport.Height = h
}

func (t *TraceSpanView) HandleKey(ev layout.KeyEvent) []layout.Action {
	switch ev.Key {
	case "j", "down":
		t.viewport.LineDown(1)
	case "k", "up":
		t.viewport.LineUp(1)
	case "ctrl+d", "pgdown":
		t.viewport.PageDown()
	case "ctrl+u", "pgup":
		t.viewport.PageUp()
	case "g", "home":
		t.viewport.GotoTop()
	case "G", "end":
		t.viewport.GotoBottom()
	}
	return nil
}

func (t *TraceSpanView) HandleMouse(ev layout.MouseEvent) []layout.Action {
	switch ev.Action {
	case "wheeldown":
		t.viewport.LineDown(1)
	case "wheelup":
		t.viewport.LineUp(1)
	}
	return nil
}

// Render walks the current snapshot's graph depth-first, roots in RootIds
// order (most recent first) and children via SubTree.ChildIds, one line
// per span indented by ancestor depth.
func (t *TraceSpanView) Render() string {
	t.viewport.Width = t.width
	t.viewport.Height = t.height
	if !t.hasTrace || t.snapshot == nil {
		t.viewport.SetContent(Styles.Muted.Render("no trace selected"))
		return t.viewport.View()
	}
	snap := t.snapshot()
	if snap == nil {
		t.viewport.SetContent(Styles.Muted.Render("no snapshot yet"))
		return t.viewport.View()
	}
	g := snap.Graph
	var b strings.Builder
	t.renderTrace(&b, g)
	t.viewport.SetContent(b.String())
	return t.viewport.View()
}

func (t *TraceSpanView) renderTrace(b *strings.Builder, g tracegraph.TraceGraph) {
	for _, root := range g.Traces[t.trace].RootIds() {
		t.renderSubtree(b, g, root, 0)
	}
}

func (t *TraceSpanView) renderSubtree(b *strings.Builder, g tracegraph.TraceGraph, id tracegraph.SpanId, level int) {
	span, ok := g.Spans[id]
	if !ok {
		return
	}
	indent := strings.Repeat("  ", level)
	// Truncate the name (arbitrary OTLP attribute text may be wide or
	// long) so the duration suffix always stays within the viewport.
	nameWidth := t.width - len(indent) - len(" ") - 12
	name := textutil.Truncate(span.Name, nameWidth)
	line := fmt.Sprintf("%s%s %s", indent, name, span.Duration())
	style := Styles.Normal
	if span.Status == tracegraph.StatusCodeError {
		style = Styles.StatusError
	}
	b.WriteString(style.Render(line))
	b.WriteByte('\n')
	for _, child := range g.Subtrees[id].ChildIds() {
		t.renderSubtree(b, g, child, level+1)
	}
}

// borderedTitle renders a titled, focus-colored box around content — the
// shared frame every panel uses, grounded on Styles usage in
// trace_view.go (a RoundedBorder styled via ColorHighlight when active).
func borderedTitle(title, content string, focused bool, width, height int) string {
	style := Styles.UnfocusedBox
	if focused {
		style = Styles.FocusedBox
	}
	return style.Width(width).Height(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, Styles.Title.Render(title), content),
	)
}
