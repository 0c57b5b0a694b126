package appui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeybindRegistryLookupReturnsBoundCommand(t *testing.T) {
	r := NewKeybindRegistry()
	called := false
	r.BindWithDesc("q", "quit", func() tea.Msg { called = true; return nil })

	cmd := r.Lookup("q")
	require.NotNil(t, cmd)
	cmd()
	assert.True(t, called)
}

func TestKeybindRegistryLookupMissReturnsNil(t *testing.T) {
	r := NewKeybindRegistry()
	assert.Nil(t, r.Lookup("z"))
}

func TestKeybindRegistryHelpListsEveryBinding(t *testing.T) {
	r := NewKeybindRegistry()
	r.BindWithDesc("q", "quit", tea.Quit)
	r.BindWithDesc("j", "down", nil)

	help := r.Help()
	assert.Contains(t, help, "q")
	assert.Contains(t, help, "j")
}
