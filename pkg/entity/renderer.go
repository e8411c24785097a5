package entity

import (
	"image/color"

	"github.com/opd-ai/vecpad/pkg/geometry"
)

// BorderWidth is the stroke width of an unfilled DrawRect
const BorderWidth = 2.0

// Surface is the drawable 2D target every backend provides. Positions are
// screen-space pixels with the origin at the top-left, y increasing downward.
// DrawText anchors the top-left corner of the text at pos.
type Surface interface {
	DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64)
	FillPolygon(points []geometry.Vector2D, c color.RGBA)
	DrawRect(rect geometry.Rect, c color.RGBA, fill bool)
	DrawText(text string, pos geometry.Vector2D, c color.RGBA)
}
