package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncateByDisplayWidth cuts text to maxWidth display cells, ending with
// "..." when anything was removed.
func truncateByDisplayWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return ansi.Truncate(text, maxWidth, "")
	}
	return ansi.Truncate(text, maxWidth, "...")
}

// padLineToWidth pads a single line with spaces so it reaches the provided width.
func padLineToWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	lineWidth := lipgloss.Width(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
