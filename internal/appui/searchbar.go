package appui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaru-doctor/doctor/internal/layout"
	"github.com/amaru-doctor/doctor/internal/store"
)

// SubmitSearchAction asks the root model to run text against kind through
// the search cache. ClearSearchAction asks
// it to deselect the active cached result without dropping it.
type SubmitSearchAction struct {
	Kind store.Kind
	Text string
}

type ClearSearchAction struct{}

// SearchBar is a single-line text entry bound to whichever entity kind is
// currently active, grounded on shell_view.go command-input
// line (a bubbles/textinput wrapped by a View), generalized here to emit
// a typed search action on Enter instead of a shell command string.
type SearchBar struct {
	input textinput.Model
	kind  store.Kind
}

var _ layout.Component = (*SearchBar)(nil)

func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 128
	return &SearchBar{input: ti}
}

func (s *SearchBar) ID() layout.ComponentID {
	return layout.ComponentID("search")
}

// SetKind tells the bar which entity kind a submitted query targets —
// kept in sync with the active tab by the root model.
func (s *SearchBar) SetKind(k store.Kind) {
	s.kind = k
}

func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

func (s *SearchBar) Blur() {
	s.input.Blur()
}

func (s *SearchBar) HandleKey(ev layout.KeyEvent) []layout.Action {
	switch ev.Key {
	case "enter":
		text := s.input.Value()
		if text == "" {
			return nil
		}
		return []layout.Action{SubmitSearchAction{Kind: s.kind, Text: text}}
	case "esc":
		s.input.SetValue("")
		return []layout.Action{ClearSearchAction{}}
	}
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(ev.Key)}
	if special, ok := specialKeys[ev.Key]; ok {
		msg = tea.KeyMsg{Type: special}
	}
	s.input, _ = s.input.Update(msg)
	return nil
}

var specialKeys = map[string]tea.KeyType{
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
}

func (s *SearchBar) HandleMouse(layout.MouseEvent) []layout.Action {
	return nil
}

// UpdateMsg forwards a raw tea.Msg (e.g. the blink tick) to the underlying
// textinput, returning its follow-up command.
func (s *SearchBar) UpdateMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *SearchBar) Render(focused bool) string {
	prefix := Styles.Muted.Render(string(s.kind) + " › ")
	return prefix + s.input.View()
}
