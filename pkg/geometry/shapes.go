// pkg/geometry/shapes.go
package geometry

// Circle represents a circular hit area in screen space
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether point lies strictly inside the circle
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) < c.Radius
}

// Rect represents an axis-aligned rectangle in screen space,
// anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Contains reports whether point lies inside the rectangle. The right and
// bottom edges are exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.X &&
		point.X < r.X+r.Width &&
		point.Y >= r.Y &&
		point.Y < r.Y+r.Height
}

// Min returns the top-left corner
func (r Rect) Min() Vector2D {
	return Vector2D{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner
func (r Rect) Max() Vector2D {
	return Vector2D{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Bounds returns the smallest rectangle containing all points.
func Bounds(points []Vector2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
