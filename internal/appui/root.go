package appui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amaru-doctor/doctor/internal/config"
	"github.com/amaru-doctor/doctor/internal/eventloop"
	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/search"
	"github.com/amaru-doctor/doctor/internal/store"
	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// ScrapeStatus reports whether the most recent Prometheus scrape attempt
// succeeded, decoupling Root from *promscrape.Scraper directly — it only
// ever needs the latest outcome, never to drive the poller itself.
type ScrapeStatus func() bool

var allKinds = []store.Kind{
	store.KindAccount,
	store.KindDRep,
	store.KindPool,
	store.KindProposal,
	store.KindBlockIssuer,
	store.KindUtxo,
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Root is the program's tea.Model. Grounded on appModelAdapter
// (internal/ui/app.go): a single root model that owns
// every sub-view, translates tea.Msg into this program's own event/action
// vocabulary (internal/eventloop, internal/layout), and dispatches the
// resulting actions through one FIFO cascade rather than a giant type
// switch per message kind.
type Root struct {
	cfg    config.Config
	engine *tracegraph.Engine
	es     store.EntityStore
	search *search.Cache
	log    *slog.Logger

	tabs        *Tabs
	lists       map[store.Kind]*EntityListView
	traceView   *TraceSpanView
	flameGraph  *FlameGraph
	metricsView *MetricsView
	searchBar   *SearchBar
	showMetrics bool

	layoutSpec *layout.Node
	focus      *layout.FocusController
	router     *layout.Router

	width, height int
	searchActive  bool

	lastScrapeOK ScrapeStatus
	lastErr      string

	keybinds *KeybindRegistry
	quitting bool
}

// NewRoot wires every core package into one running program. es is the
// entity store to read from (store.NewSimulatorStore for --backend
// simulator and local development; a real store is out of scope here —
// see internal/store's package doc). metrics gives the metrics page read
// access to the combined scrape/OTLP sample store, and lastScrapeOK
// reports the scrape poller's most recent outcome for the status bar;
// both may be nil, in which case the metrics page stays empty and the
// status bar always reports scrape:down.
func NewRoot(cfg config.Config, engine *tracegraph.Engine, es store.EntityStore, metrics MetricsSource, lastScrapeOK ScrapeStatus, log *slog.Logger) *Root {
	r := &Root{
		cfg:          cfg,
		engine:       engine,
		es:           es,
		lastScrapeOK: lastScrapeOK,
		log:          log,
		lists:        make(map[store.Kind]*EntityListView),
	}

	// The finder streams every entry of q.Kind; it does not filter by q.Text.
	finder := func(ctx context.Context, q search.Query) store.Producer[store.Entry] {
		return es.Iterate(ctx, q.Kind)
	}
	r.search = search.NewCache(finder, cfg.ListHeight, log)

	r.tabs = NewTabs(allKinds)
	for _, k := range allKinds {
		producer := es.Iterate(context.Background(), k)
		view := store.NewStreamingView[store.Entry](context.Background(), producer, cfg.ListHeight)
		r.lists[k] = NewEntityListView(k, view)
	}
	r.traceView = NewTraceSpanView(engine.Snapshot)
	r.flameGraph = NewFlameGraph(engine.Snapshot)
	r.metricsView = NewMetricsView(metrics)
	r.searchBar = NewSearchBar()
	r.searchBar.SetKind(r.tabs.Active())

	r.layoutSpec = layout.Split(layout.Vertical, layout.FillWeight(1),
		layout.Leaf("tabs", layout.Fixed(1)),
		layout.Split(layout.Horizontal, layout.FillWeight(1),
			layout.Leaf("list", layout.Percent(40)),
			layout.Split(layout.Vertical, layout.FillWeight(1),
				layout.Leaf("trace", layout.FillWeight(1)),
				layout.Leaf("flamegraph", layout.Percent(35)),
			),
		),
		layout.Leaf("search", layout.Fixed(1)),
		layout.Leaf("status", layout.Fixed(1)),
	)

	order := []layout.ComponentID{"tabs", "list", "trace", "flamegraph", "search"}
	r.focus = layout.NewFocusController(order)
	r.syncRouterComponents()

	r.keybinds = NewKeybindRegistry()
	r.keybinds.BindWithDesc("q", "quit", tea.Quit)
	r.keybinds.BindWithDesc("ctrl+c", "quit", tea.Quit)

	return r
}

func (r *Root) activeList() *EntityListView {
	return r.lists[r.tabs.Active()]
}

// listSlotComponent returns whichever Component currently occupies the
// "list" layout slot: the metrics page when its tab is active, otherwise
// the active entity kind's list view.
func (r *Root) listSlotComponent() layout.Component {
	if r.showMetrics {
		return r.metricsView
	}
	return r.activeList()
}

func (r *Root) Init() tea.Cmd {
	return tickCmd()
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		r.resize(m.Width, m.Height)
		return r, nil
	case tickMsg:
		r.onTick()
		return r, tickCmd()
	case tea.KeyMsg:
		return r.onKey(m)
	case tea.MouseMsg:
		return r.onMouse(m)
	}
	return r, nil
}

func (r *Root) resize(w, h int) {
	r.width, r.height = w, h
	rects := layout.Evaluate(r.layoutSpec, layout.Rect{Width: w, Height: h})
	if rect, ok := rects["list"]; ok {
		if r.showMetrics {
			r.metricsView.SetSize(rect.Width, rect.Height)
		} else {
			r.activeList().SetSize(rect.Width, rect.Height)
		}
	}
	if rect, ok := rects["trace"]; ok {
		r.traceView.SetSize(rect.Width, rect.Height)
	}
	if rect, ok := rects["flamegraph"]; ok {
		r.flameGraph.SetSize(rect.Width, rect.Height)
	}
}

func (r *Root) onTick() {
	for _, l := range r.lists {
		l.Tick()
	}
	r.search.Poll()
}

func (r *Root) onKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.String()
	if cmd := r.keybinds.Lookup(k); cmd != nil {
		return r, cmd
	}
	if k == "tab" && r.focus.Current() != "search" {
		r.focus.Next()
		return r, nil
	}
	actions := r.router.RouteKey(layout.KeyEvent{Key: k})
	eventloop.Dispatch(actions, r.handleAction, r.log)
	return r, nil
}

func (r *Root) onMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	rects := layout.Evaluate(r.layoutSpec, layout.Rect{Width: r.width, Height: r.height})
	action := "press"
	switch m.Type {
	case tea.MouseWheelUp:
		action = "wheelup"
	case tea.MouseWheelDown:
		action = "wheeldown"
	}
	actions := r.router.RouteMouse(rects, layout.MouseEvent{X: m.X, Y: m.Y, Action: action})
	eventloop.Dispatch(actions, r.handleAction, r.log)
	return r, nil
}

// handleAction is the Handler passed to eventloop.Dispatch: it mutates
// root state for each action kind layout.Component implementations emit,
// and may itself return follow-up actions to cascade.
func (r *Root) handleAction(a layout.Action) []layout.Action {
	switch act := a.(type) {
	case SwitchTabAction:
		r.showMetrics = false
		r.searchBar.SetKind(act.Kind)
		r.syncRouterComponents()
	case SwitchMetricsTabAction:
		r.showMetrics = true
		r.syncRouterComponents()
	case SubmitSearchAction:
		if err := r.search.Submit(act.Kind, act.Text); err != nil {
			r.lastErr = err.Error()
			return nil
		}
		r.lastErr = ""
		if view, ok := r.search.Active(); ok && !r.showMetrics {
			r.activeList().SetOverride(view)
		}
	case ClearSearchAction:
		r.search.ClearActive()
		if !r.showMetrics {
			r.activeList().ClearOverride()
		}
	}
	return nil
}

// syncRouterComponents rebuilds the router's component set after the
// active tab changes, since each tab's list view (or the metrics page) is
// a distinct Component registered under the same "list" focus slot.
func (r *Root) syncRouterComponents() {
	r.router = layout.NewRouter(r.focus, []layout.Component{
		r.tabs,
		&listSlotComponent{Component: r.listSlotComponent()},
		r.traceView,
		r.flameGraph,
		r.searchBar,
	})
}

// listSlotComponent re-exports whichever Component currently occupies the
// "list" slot under a fixed ID, since EntityListView.ID() varies per
// entity kind and MetricsView.ID() is its own distinct "metrics" id.
type listSlotComponent struct {
	layout.Component
}

func (p *listSlotComponent) ID() layout.ComponentID { return "list" }

func (r *Root) View() string {
	if r.quitting {
		return ""
	}
	rects := layout.Evaluate(r.layoutSpec, layout.Rect{Width: r.width, Height: r.height})

	tabsRect := rects["tabs"]
	listRect := rects["list"]
	traceRect := rects["trace"]
	flameRect := rects["flamegraph"]

	var listContent string
	if r.showMetrics {
		r.metricsView.SetSize(listRect.Width-2, listRect.Height-2)
		listContent = r.metricsView.Render()
	} else {
		list := r.activeList()
		list.SetSize(listRect.Width-2, listRect.Height-2)
		listContent = list.Render()
	}
	r.traceView.SetSize(traceRect.Width-2, traceRect.Height-2)
	r.flameGraph.SetSize(flameRect.Width-2, flameRect.Height-2)

	listPanel := borderedTitle(r.tabs.ActiveLabel(), listContent, r.focus.Current() == "list", listRect.Width, listRect.Height)
	tracePanel := borderedTitle("trace", r.traceView.Render(), r.focus.Current() == "trace", traceRect.Width, traceRect.Height)
	flamePanel := borderedTitle("flamegraph", r.flameGraph.Render(), r.focus.Current() == "flamegraph", flameRect.Width, flameRect.Height)

	rightColumn := lipgloss.JoinVertical(lipgloss.Left, tracePanel, flamePanel)
	body := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, rightColumn)

	lastScrapeOK := false
	if r.lastScrapeOK != nil {
		lastScrapeOK = r.lastScrapeOK()
	}
	status := StatusInfoFromSnapshot(r.cfg.Network, r.engine.Snapshot(), r.engine.OrphanCount(), r.search.Len(), lastScrapeOK, r.lastErr)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(tabsRect.Width).Render(r.tabs.Render()),
		body,
		r.searchBar.Render(r.focus.Current() == "search"),
		status.Render(),
	)
}
