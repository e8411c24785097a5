// pkg/entity/entity.go
package entity

import (
	"fmt"
	"image/color"

	"github.com/opd-ai/vecpad/pkg/geometry"
)

// ID is a scene-unique identifier for a vector
type ID uint64

// DragState tells which part of a vector, if any, is following the pointer
type DragState int

const (
	DragNone DragState = iota
	DragBody
	DragTip
)

// String implements fmt.Stringer
func (d DragState) String() string {
	switch d {
	case DragNone:
		return "none"
	case DragBody:
		return "body"
	case DragTip:
		return "tip"
	default:
		return fmt.Sprintf("DragState(%d)", int(d))
	}
}

// Hit thresholds in screen pixels. The tip is the easier target.
const (
	DefaultBodyThreshold = 8.0
	DefaultTipThreshold  = 16.0
)

// ArrowStyle controls how a vector is drawn
type ArrowStyle struct {
	LineWidth float64
	HeadSize  float64
	// HeadAngle is the wing angle in degrees on each side of the shaft
	HeadAngle float64
}

// DefaultArrowStyle matches the stock tool: 4px shaft, 12px head, 30° wings
var DefaultArrowStyle = ArrowStyle{LineWidth: 4, HeadSize: 12, HeadAngle: 30}

// VectorObject is one arrow on the canvas.
type VectorObject struct {
	ID ID
	// Origin is the tail of the arrow, screen space.
	Origin geometry.Vector2D
	// Direction is the arrow's delta in math space (y-up), in pixel units.
	Direction geometry.Vector2D
	Color     color.RGBA
	Drag      DragState
	// GrabOffset is pointer minus origin when a body drag began, screen space.
	GrabOffset geometry.Vector2D
}

// NewVectorObject creates a vector anchored at origin
func NewVectorObject(id ID, origin, direction geometry.Vector2D, c color.RGBA) *VectorObject {
	return &VectorObject{
		ID:        id,
		Origin:    origin,
		Direction: direction,
		Color:     c,
	}
}

// ScreenEndpoint returns the arrow tip in screen space
func (v *VectorObject) ScreenEndpoint() geometry.Vector2D {
	return geometry.ToScreen(v.Origin, v.Direction)
}

// HitTestBody reports whether point is within threshold of the shaft. Points
// whose projection falls outside the shaft never hit, and neither does a
// zero-length vector.
func (v *VectorObject) HitTestBody(point geometry.Vector2D, threshold float64) bool {
	dist, ok := geometry.PointSegmentDistance(point, v.Origin, v.ScreenEndpoint())
	return ok && dist < threshold
}

// HitTestTip reports whether point is within threshold of the arrow tip
func (v *VectorObject) HitTestTip(point geometry.Vector2D, threshold float64) bool {
	return geometry.Circle{Center: v.ScreenEndpoint(), Radius: threshold}.Contains(point)
}

// BeginBodyDrag records where the pointer grabbed the shaft so the arrow
// does not jump to the pointer.
func (v *VectorObject) BeginBodyDrag(pointer geometry.Vector2D) {
	v.GrabOffset = pointer.Sub(v.Origin)
	v.Drag = DragBody
}

// BeginTipDrag marks the tip as following the pointer
func (v *VectorObject) BeginTipDrag() {
	v.Drag = DragTip
}

// EndDrag clears both drag flags and the grab offset
func (v *VectorObject) EndDrag() {
	v.Drag = DragNone
	v.GrabOffset = geometry.Vector2D{}
}

// ApplyBodyDrag moves the origin, keeping the direction
func (v *VectorObject) ApplyBodyDrag(pointer geometry.Vector2D) {
	v.Origin = pointer.Sub(v.GrabOffset)
}

// ApplyTipDrag keeps the origin and moves the tip onto pointer
func (v *VectorObject) ApplyTipDrag(pointer geometry.Vector2D) {
	v.Direction = geometry.ToMath(v.Origin, pointer)
}

// ApplyDrag dispatches on the current drag state; it is a no-op when idle.
func (v *VectorObject) ApplyDrag(pointer geometry.Vector2D) {
	switch v.Drag {
	case DragBody:
		v.ApplyBodyDrag(pointer)
	case DragTip:
		v.ApplyTipDrag(pointer)
	}
}

// ArrowHead returns the filled triangle at the tip: the tip itself followed by
// the two back corners. ok is false when the arrow has no length.
func (v *VectorObject) ArrowHead(style ArrowStyle) (points []geometry.Vector2D, ok bool) {
	end := v.ScreenEndpoint()
	unit, err := end.Sub(v.Origin).Normalize()
	if err != nil {
		return nil, false
	}
	left := unit.Rotate(style.HeadAngle).Scale(style.HeadSize)
	right := unit.Rotate(-style.HeadAngle).Scale(style.HeadSize)
	return []geometry.Vector2D{end, end.Sub(left), end.Sub(right)}, true
}

// Render draws the shaft and, when the arrow has a direction, its head.
func (v *VectorObject) Render(s Surface, style ArrowStyle, c color.RGBA) {
	s.DrawLine(v.Origin, v.ScreenEndpoint(), c, style.LineWidth)
	if head, ok := v.ArrowHead(style); ok {
		s.FillPolygon(head, c)
	}
}
