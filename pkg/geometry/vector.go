// pkg/geometry/vector.go
package geometry

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when a zero-length vector is normalized.
var ErrDegenerateVector = errors.New("degenerate vector: zero length")

// Vector2D represents a 2D vector with x and y components.
// The coordinate space (screen y-down or math y-up) is decided by the caller.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the Euclidean norm of the vector. Zero is a valid result.
// Hypot keeps very long vectors from overflowing to +Inf.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// It fails with ErrDegenerateVector for the zero vector; callers guard
// against that case before drawing or hit testing.
func (v Vector2D) Normalize() (Vector2D, error) {
	length := v.Length()
	if length == 0 {
		return Vector2D{}, ErrDegenerateVector
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}, nil
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector by angle (in degrees) using the standard
// rotation matrix in the vector's own coordinates.
func (v Vector2D) Rotate(angleDegrees float64) Vector2D {
	rad := angleDegrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsFinite reports whether both components are finite numbers.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// PointSegmentDistance returns the distance from point to the segment
// segStart-segEnd, all in screen space. The second result is false when the
// segment has zero length or when the projection of point falls outside
// [0, segmentLength]; there is no clamping to the nearest endpoint.
func PointSegmentDistance(point, segStart, segEnd Vector2D) (float64, bool) {
	line := segEnd.Sub(segStart)
	unit, err := line.Normalize()
	if err != nil {
		return 0, false
	}

	proj := point.Sub(segStart).Dot(unit)
	if proj < 0 || proj > line.Length() {
		return 0, false
	}

	closest := segStart.Add(unit.Scale(proj))
	return point.Distance(closest), true
}

// ToScreen converts a math-space (y-up) direction anchored at a screen-space
// origin into the screen-space (y-down) endpoint.
func ToScreen(origin, direction Vector2D) Vector2D {
	return Vector2D{
		X: origin.X + direction.X,
		Y: origin.Y - direction.Y,
	}
}

// ToMath is the inverse of ToScreen: it returns the math-space direction that
// places the endpoint of a vector anchored at origin on screenPoint.
func ToMath(origin, screenPoint Vector2D) Vector2D {
	return Vector2D{
		X: screenPoint.X - origin.X,
		Y: origin.Y - screenPoint.Y,
	}
}
