package appui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/promscrape"
)

// MetricsSource gives MetricsView read access to the latest collected
// metric samples without coupling this view to *promscrape.Store directly
// — it only ever needs the current snapshot, never Record.
type MetricsSource func() []promscrape.Sample

// MetricsView renders the latest known value of every metric series
// collected by either ingestion path (the outbound scrape poller and the
// inbound OTLP metrics receiver share one promscrape.Store), one row per
// series sorted by name. Grounded on EntityListView's
// bubbles/viewport-backed scrollable render, narrowed to a read-only list
// since a metric sample has no detail to drill further into.
type MetricsView struct {
	source   MetricsSource
	viewport viewport.Model
	width    int
	height   int
}

var _ layout.Component = (*MetricsView)(nil)

func NewMetricsView(source MetricsSource) *MetricsView {
	vp := viewport.New(40, 10)
	return &MetricsView{source: source, viewport: vp, width: 40, height: 10}
}

func (m *MetricsView) ID() layout.ComponentID {
	return layout.ComponentID("metrics")
}

func (m *MetricsView) SetSize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = w
	m.viewport.Height = h
}

func (m *MetricsView) HandleKey(ev layout.KeyEvent) []layout.Action {
	switch ev.Key {
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d", "pgdown":
		m.viewport.PageDown()
	case "ctrl+u", "pgup":
		m.viewport.PageUp()
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	}
	return nil
}

func (m *MetricsView) HandleMouse(ev layout.MouseEvent) []layout.Action {
	switch ev.Action {
	case "wheeldown":
		m.viewport.LineDown(1)
	case "wheelup":
		m.viewport.LineUp(1)
	}
	return nil
}

func (m *MetricsView) Render() string {
	m.viewport.Width = m.width
	m.viewport.Height = m.height
	if m.source == nil {
		m.viewport.SetContent(Styles.Muted.Render("no metrics source"))
		return m.viewport.View()
	}
	samples := m.source()
	if len(samples) == 0 {
		m.viewport.SetContent(Styles.Muted.Render("no metrics collected yet"))
		return m.viewport.View()
	}
	var b strings.Builder
	for _, s := range samples {
		line := fmt.Sprintf("%-32s %14.4g  %-6s %s", s.Name, s.Value, s.Source, s.At.Format("15:04:05"))
		b.WriteString(Styles.Normal.Render(line))
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())
	return m.viewport.View()
}
