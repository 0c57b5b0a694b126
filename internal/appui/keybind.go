package appui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps a single key string (as tea.KeyMsg.String() renders
// it: "j", "esc", "ctrl+c", "tab", ...) to a global command. Grounded on
// internal/ui/keybind.go KeybindRegistry, trimmed from its
// spacemacs-style leader-key sequences (amaru-doctor has no
// coding-agent-style command palette to justify them) down to direct
// single-key global bindings; per-component keys (list navigation,
// search text entry) are still routed through internal/layout.Router,
// not through this registry.
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	order        []string
}

func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
	}
}

// BindWithDesc registers key to cmd, recording desc for the help view.
func (r *KeybindRegistry) BindWithDesc(key, desc string, cmd tea.Cmd) {
	if _, exists := r.bindings[key]; !exists {
		r.order = append(r.order, key)
	}
	r.bindings[key] = cmd
	r.descriptions[key] = desc
}

// Lookup returns the command bound to key, or nil.
func (r *KeybindRegistry) Lookup(k string) tea.Cmd {
	return r.bindings[k]
}

// Help renders a one-line help bar, grounded on RenderKeybindHelp's use
// of bubbles/help's key.Binding shape.
func (r *KeybindRegistry) Help() string {
	keys := append([]string(nil), r.order...)
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, r.descriptions[k]),
		))
	}
	h := help.New()
	h.ShowAll = false
	return h.ShortHelpView(bindings)
}

func normalizeKey(s string) string {
	return strings.TrimSpace(s)
}
