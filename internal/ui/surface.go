package ui

import (
	"github.com/charmbracelet/lipgloss"

	"optionfield/internal/ui/theme"
)

// Surface wraps a Canvas filled with a theme background so overlay glyphs
// never show the terminal default between styled segments.
type Surface struct {
	Canvas *Canvas
}

// NewPrimarySurface returns a Surface using the main theme background.
func NewPrimarySurface(width, height int) Surface {
	return newSurface(width, height, theme.Current().Background())
}

// NewSecondarySurface returns a Surface backed by the secondary background
// (overlay panels, dialogs).
func NewSecondarySurface(width, height int) Surface {
	return newSurface(width, height, theme.Current().BackgroundSecondary())
}

func newSurface(width, height int, bg lipgloss.TerminalColor) Surface {
	canvas := NewCanvas(width, height)
	canvas.Fill(bg)
	return Surface{Canvas: canvas}
}

// Draw writes the provided block starting at x,y.
func (s Surface) Draw(x, y int, block string) {
	if s.Canvas == nil {
		return
	}
	s.Canvas.DrawStringAt(x, y, block)
}

// Render flushes the surface to a string (ANSI frame).
func (s Surface) Render() string {
	if s.Canvas == nil {
		return ""
	}
	return s.Canvas.Render()
}
