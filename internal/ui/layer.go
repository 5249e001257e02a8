package ui

import "strings"

// Layer represents an overlay that can render itself into a positioned canvas.
// A nil canvas means there is nothing to draw.
type Layer interface {
	Render() *Canvas
}

// LayerFunc is an adapter to allow ordinary functions to act as layers.
type LayerFunc func() *Canvas

// Render implements Layer for LayerFunc.
func (f LayerFunc) Render() *Canvas {
	return f()
}

// blockLayer draws content on the secondary surface at rect.
func blockLayer(content string, rect Rect) Layer {
	return LayerFunc(func() *Canvas {
		if strings.TrimSpace(content) == "" || rect.Width <= 0 || rect.Height <= 0 {
			return nil
		}
		surface := NewSecondarySurface(rect.Width, rect.Height)
		surface.Draw(0, 0, content)
		surface.Canvas.SetOffset(rect.X, rect.Y)
		return surface.Canvas
	})
}

// CenteredLayer positions content in the middle of the viewport, keeping the
// top and bottom margins clear.
func CenteredLayer(content string, viewport Size, topMargin, bottomMargin int) Layer {
	size := blockDimensions(content)
	x, y := centeredOffsets(viewport.Width, viewport.Height, size.Width, size.Height, topMargin, bottomMargin)
	return blockLayer(content, Rect{X: x, Y: y, Width: size.Width, Height: size.Height})
}

// ComposeLayers paints the layers, in order, over the base frame and returns
// the composed frame sized to the viewport.
func ComposeLayers(base string, viewport Size, layers ...Layer) string {
	canvas := NewCanvas(viewport.Width, viewport.Height)
	canvas.DrawStringAt(0, 0, base)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		lc := layer.Render()
		if lc == nil {
			continue
		}
		x, y := lc.Offset()
		canvas.DrawStringAt(x, y, lc.Render())
	}
	return canvas.Render()
}

func centeredOffsets(containerWidth, containerHeight, contentWidth, contentHeight, topMargin, bottomMargin int) (int, int) {
	if topMargin < 0 {
		topMargin = 0
	}
	if bottomMargin < 0 {
		bottomMargin = 0
	}

	usableHeight := containerHeight - topMargin - bottomMargin
	if usableHeight < contentHeight {
		usableHeight = contentHeight
	}

	y := topMargin
	if usableHeight > contentHeight {
		y = topMargin + (usableHeight-contentHeight)/2
	}
	if maxY := containerHeight - bottomMargin - contentHeight; y > maxY {
		y = maxY
	}
	if y < topMargin {
		y = topMargin
	}
	if y < 0 {
		y = 0
	}

	x := (containerWidth - contentWidth) / 2
	if x < 0 {
		x = 0
	}
	return x, y
}
