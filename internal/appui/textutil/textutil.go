// Package textutil provides unicode-aware text utilities for rendering
// span names and entity rows at a fixed terminal width, since span
// attributes and OTLP names are arbitrary user-supplied strings that may
// contain wide or zero-width runes.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the visual width of s, accounting for wide runes.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled returns the visual width of a lipgloss-styled string,
// accounting for both ANSI escape codes and wide runes.
func VisualWidthStyled(s string) int {
	return lipgloss.Width(s)
}

// Truncate truncates s to fit within maxWidth visual columns, appending
// an ellipsis if truncation was needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}

	availableWidth := maxWidth - VisualWidth(TruncateEllipsis)
	if availableWidth < 0 {
		return TruncateEllipsis
	}

	runes := []rune(s)
	result := make([]rune, 0, len(runes))
	currentWidth := 0
	for _, r := range runes {
		w := runewidth.RuneWidth(r)
		if currentWidth+w > availableWidth {
			break
		}
		result = append(result, r)
		currentWidth += w
	}
	return string(result) + TruncateEllipsis
}

// PadRightVisual pads s with trailing spaces to reach targetWidth visual
// columns, truncating instead if s is already wider.
func PadRightVisual(s string, targetWidth int) string {
	currentWidth := VisualWidth(s)
	if currentWidth >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-currentWidth)
}
