package input

import "github.com/opd-ai/vecpad/pkg/geometry"

// Layout places the on-canvas controls, screen space
type Layout struct {
	AddVector   geometry.Rect
	AddTyped    geometry.Rect
	TypingBox   geometry.Rect
	Readout     geometry.Vector2D
	ReadoutStep float64
}

// DefaultLayout returns the stock control positions for a canvas of the
// given size. The readout and typing box follow the right and bottom edges.
func DefaultLayout(width, height float64) Layout {
	return Layout{
		AddVector:   geometry.Rect{X: 20, Y: 20, Width: 160, Height: 40},
		AddTyped:    geometry.Rect{X: 200, Y: 20, Width: 200, Height: 40},
		TypingBox:   geometry.Rect{X: 20, Y: height - 60, Width: 400, Height: 40},
		Readout:     geometry.Vector2D{X: width - 260, Y: 20},
		ReadoutStep: 28,
	}
}
