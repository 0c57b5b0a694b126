package appui

import "github.com/charmbracelet/lipgloss"

// Theme colors, adapted from internal/ui/styles.go's palette.
const (
	ColorAccent    = "86"  // Cyan/green — titles, active tab
	ColorHighlight = "205" // Magenta — focused border, selection
	ColorDanger    = "196" // Red — span errors, failed searches
	ColorMuted     = "241" // Gray — dimmed text, inactive tabs
	ColorText      = "252" // Light gray — normal text
	ColorWarning   = "208" // Orange — status-line warnings
)

// Styles mirrors internal/ui/styles.go's shared-style-struct idiom: one
// package value holding every lipgloss.Style used across views, so every
// view renders with the same palette instead of redeclaring styles locally.
var Styles = struct {
	Title        lipgloss.Style
	FocusedBox   lipgloss.Style
	UnfocusedBox lipgloss.Style
	Selected     lipgloss.Style
	Muted        lipgloss.Style
	Normal       lipgloss.Style
	StatusOK     lipgloss.Style
	StatusError  lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	FocusedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)),
	UnfocusedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	StatusOK: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
