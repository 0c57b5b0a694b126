package appui

import (
	"strings"

	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/store"
)

// SwitchTabAction asks the root model to make kind the active entity kind,
// switching which list view is shown and which kind the search bar targets.
type SwitchTabAction struct {
	Kind store.Kind
}

// SwitchMetricsTabAction asks the root model to show the metrics page in
// the list slot instead of an entity kind's list — the one tab position
// with no backing store.Kind.
type SwitchMetricsTabAction struct{}

// tabEntry is one position in the tab strip: either a real entity kind or
// the trailing metrics page, distinguished by an empty Kind.
type tabEntry struct {
	kind  store.Kind
	label string
}

// Tabs cycles through the recognized entity kinds plus a trailing metrics
// page with h/l or left/right, grounded on
// modal_project_switcher.go list-cycling keymap, narrowed to a single-row
// tab strip instead of a modal list.
type Tabs struct {
	entries []tabEntry
	active  int
}

var _ layout.Component = (*Tabs)(nil)

func NewTabs(kinds []store.Kind) *Tabs {
	entries := make([]tabEntry, 0, len(kinds)+1)
	for _, k := range kinds {
		entries = append(entries, tabEntry{kind: k, label: string(k)})
	}
	entries = append(entries, tabEntry{label: "metrics"})
	return &Tabs{entries: entries}
}

func (t *Tabs) ID() layout.ComponentID {
	return layout.ComponentID("tabs")
}

// Active returns the active tab's entity kind, or "" when the metrics tab
// is active — callers that need to distinguish the two should use
// IsMetrics.
func (t *Tabs) Active() store.Kind {
	if len(t.entries) == 0 {
		return ""
	}
	return t.entries[t.active].kind
}

// ActiveLabel returns the active tab's display label, the one difference
// between the metrics tab and an entity tab that Active alone can't convey.
func (t *Tabs) ActiveLabel() string {
	if len(t.entries) == 0 {
		return ""
	}
	return t.entries[t.active].label
}

// IsMetrics reports whether the metrics tab is the one currently active.
func (t *Tabs) IsMetrics() bool {
	return len(t.entries) > 0 && t.entries[t.active].kind == ""
}

func (t *Tabs) HandleKey(ev layout.KeyEvent) []layout.Action {
	switch ev.Key {
	case "l", "right":
		t.active = (t.active + 1) % len(t.entries)
	case "h", "left":
		t.active = (t.active - 1 + len(t.entries)) % len(t.entries)
	default:
		return nil
	}
	if t.IsMetrics() {
		return []layout.Action{SwitchMetricsTabAction{}}
	}
	return []layout.Action{SwitchTabAction{Kind: t.Active()}}
}

func (t *Tabs) HandleMouse(layout.MouseEvent) []layout.Action {
	return nil
}

func (t *Tabs) Render() string {
	var b strings.Builder
	for i, e := range t.entries {
		style := Styles.TabInactive
		if i == t.active {
			style = Styles.TabActive
		}
		b.WriteString(style.Render(" " + e.label + " "))
	}
	return b.String()
}
