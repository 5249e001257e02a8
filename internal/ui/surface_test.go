package ui

import (
	"strings"
	"testing"
)

func TestNewSecondarySurfaceAllocatesCanvas(t *testing.T) {
	surface := NewSecondarySurface(10, 3)
	if surface.Canvas == nil {
		t.Fatal("expected canvas to be initialized")
	}
	if got := surface.Canvas.Size(); got != (Size{Width: 10, Height: 3}) {
		t.Fatalf("expected 10x3 canvas, got %+v", got)
	}
}

func TestSurfaceDrawWritesContent(t *testing.T) {
	surface := NewPrimarySurface(8, 4)
	surface.Draw(0, 1, styleOverlayTitle().Render("HI"))

	lines := strings.Split(plain(surface.Render()), "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "HI") {
		t.Fatalf("expected drawn content on second line, got %q", lines)
	}
}

func TestCanvasClampsSize(t *testing.T) {
	c := NewCanvas(0, -3)
	if got := c.Size(); got != (Size{Width: 1, Height: 1}) {
		t.Fatalf("expected 1x1 canvas, got %+v", got)
	}
	var nilCanvas *Canvas
	nilCanvas.DrawStringAt(0, 0, "x")
	if nilCanvas.Render() != "" {
		t.Fatal("nil canvas renders nothing")
	}
}

func TestCanvasDrawMultiline(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawStringAt(3, 1, "ab\ncd")
	lines := strings.Split(plain(c.Render()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[1], "   ab") || !strings.HasPrefix(lines[2], "   cd") {
		t.Fatalf("expected both lines to start at column 3, got %q", lines)
	}
}
