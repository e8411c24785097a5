package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/logging"
)

// NullSurface is an entity.Surface that draws nothing and debug-logs every
// call.
type NullSurface struct {
	logger *logging.Logger
}

// NewNullSurface creates a NullSurface. A nil logger uses logging.NewLogger.
func NewNullSurface(logger *logging.Logger) *NullSurface {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullSurface{logger: logger}
}

// DrawLine implements entity.Surface.
func (n *NullSurface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	n.logger.Debug(context.Background(), "DrawLine called",
		"from_x", from.X, "from_y", from.Y,
		"to_x", to.X, "to_y", to.Y,
		"width", width,
	)
}

// FillPolygon implements entity.Surface.
func (n *NullSurface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	n.logger.Debug(context.Background(), "FillPolygon called", "points", len(points))
}

// DrawRect implements entity.Surface.
func (n *NullSurface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	n.logger.Debug(context.Background(), "DrawRect called",
		"x", rect.X, "y", rect.Y,
		"width", rect.Width, "height", rect.Height,
		"fill", fill,
	)
}

// DrawText implements entity.Surface.
func (n *NullSurface) DrawText(text string, pos geometry.Vector2D, c color.RGBA) {
	n.logger.Debug(context.Background(), "DrawText called", "text", text, "x", pos.X, "y", pos.Y)
}

var _ entity.Surface = (*NullSurface)(nil)
