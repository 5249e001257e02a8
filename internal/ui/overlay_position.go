package ui

// Size is a width/height pair in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a positioned Size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// OverlayPositioner decides where a floating panel of the given size lands
// relative to its anchor inside the viewport.
type OverlayPositioner interface {
	Place(anchor Rect, content Size, viewport Size) Rect
}

// BelowAnchor places content directly under the anchor, left-aligned with it.
// When the panel would run past the bottom of the viewport and fits above the
// anchor, it flips above. Horizontally it is shifted left to stay inside the
// viewport.
type BelowAnchor struct {
	// Gap is the number of blank rows between anchor and panel.
	Gap int
}

// Place implements OverlayPositioner.
func (b BelowAnchor) Place(anchor Rect, content Size, viewport Size) Rect {
	gap := b.Gap
	if gap < 0 {
		gap = 0
	}
	out := Rect{Width: content.Width, Height: content.Height}

	out.X = anchor.X
	if viewport.Width > 0 && out.X+content.Width > viewport.Width {
		out.X = viewport.Width - content.Width
	}
	if out.X < 0 {
		out.X = 0
	}

	below := anchor.Y + anchor.Height + gap
	above := anchor.Y - gap - content.Height
	out.Y = below
	if viewport.Height > 0 && below+content.Height > viewport.Height && above >= 0 {
		out.Y = above
	}
	return out
}
