package appui

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/store"
)

// EntityListView renders one entity kind's StreamingView as a scrollable
// row list. Grounded on TraceView (internal/ui/trace_view.go):
// a bubbles/viewport-backed View that refreshes its content string from a
// mutable backing model rather than owning the model itself.
type EntityListView struct {
	kind     store.Kind
	view     *store.StreamingView[store.Entry] // the plain entity-kind iterator
	override *store.StreamingView[store.Entry] // a search result, when one is active
	viewport viewport.Model
	width    int
	height   int
}

var _ layout.Component = (*EntityListView)(nil)

func NewEntityListView(kind store.Kind, view *store.StreamingView[store.Entry]) *EntityListView {
	vp := viewport.New(40, 10)
	return &EntityListView{kind: kind, view: view, viewport: vp, width: 40, height: 10}
}

func (l *EntityListView) ID() layout.ComponentID {
	return layout.ComponentID("list:" + string(l.kind))
}

// SetOverride displays a search result in place of the plain entity
// iterator; ClearOverride reverts to it without discarding either view.
func (l *EntityListView) SetOverride(v *store.StreamingView[store.Entry]) {
	l.override = v
}

func (l *EntityListView) ClearOverride() {
	l.override = nil
}

// active returns whichever view is currently on screen: the search
// override if one is set, otherwise the plain entity iterator.
func (l *EntityListView) active() *store.StreamingView[store.Entry] {
	if l.override != nil {
		return l.override
	}
	return l.view
}

func (l *EntityListView) SetSize(w, h int) {
	l.width, l.height = w, h
	l.viewport.Width = w
	l.viewport.Height = h
	if v := l.active(); v != nil {
		v.SetHeight(h)
	}
}

// HandleKey implements layout.Component: j/k (or arrows) move the
// selection, ctrl+d/ctrl+u page the window.
func (l *EntityListView) HandleKey(ev layout.KeyEvent) []layout.Action {
	v := l.active()
	if v == nil {
		return nil
	}
	switch ev.Key {
	case "j", "down":
		v.CursorNext()
	case "k", "up":
		v.CursorBack()
	case "ctrl+d", "pgdown":
		for i := 0; i < l.height; i++ {
			v.CursorNext()
		}
	case "ctrl+u", "pgup":
		for i := 0; i < l.height; i++ {
			v.CursorBack()
		}
	}
	return nil
}

func (l *EntityListView) HandleMouse(ev layout.MouseEvent) []layout.Action {
	v := l.active()
	if v == nil {
		return nil
	}
	switch ev.Action {
	case "wheeldown":
		v.CursorNext()
	case "wheelup":
		v.CursorBack()
	}
	return nil
}

// Tick refreshes the buffer up to the visible window:
// the root component calls Tick on every view once per tick event.
func (l *EntityListView) Tick() {
	if v := l.active(); v != nil {
		v.Tick()
	}
}

// Render returns the view's current text, focused controlling border
// color via the caller (Styles.FocusedBox/UnfocusedBox).
func (l *EntityListView) Render() string {
	v := l.active()
	if v == nil {
		return ""
	}
	items, selectedRow := v.Window()
	var b strings.Builder
	for i, e := range items {
		line := formatEntry(e)
		if i == selectedRow {
			line = Styles.Selected.Render("> " + line)
		} else {
			line = Styles.Normal.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	l.viewport.Width = l.width
	l.viewport.Height = l.height
	l.viewport.SetContent(b.String())
	return l.viewport.View()
}

func formatEntry(e store.Entry) string {
	key := hex.EncodeToString(e.Key)
	if len(key) > 16 {
		key = key[:16] + "…"
	}
	val := hex.EncodeToString(e.Value)
	if len(val) > 32 {
		val = val[:32] + "…"
	}
	return fmt.Sprintf("%s  %s", key, val)
}

