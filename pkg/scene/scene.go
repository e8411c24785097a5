// Package scene holds the ordered set of vectors on the canvas and the
// factories that create them.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
)

// ErrParse is matched by every ParseError via errors.Is
var ErrParse = errors.New("malformed numeric entry")

// ParseError reports a typed entry that could not become a vector
type ParseError struct {
	Input string
	Err   error
}

// Error implements error
func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse %q: %v", e.Input, ErrParse)
	}
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

// Unwrap exposes the underlying strconv error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// HitKind tells which part of a vector a pointer landed on
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitTip
)

// String implements fmt.Stringer
func (h HitKind) String() string {
	switch h {
	case HitBody:
		return "body"
	case HitTip:
		return "tip"
	default:
		return "none"
	}
}

// DefaultPalette is the stock six-color cycle
var DefaultPalette = []color.RGBA{
	{R: 0, G: 200, B: 255, A: 255},
	{R: 255, G: 120, B: 120, A: 255},
	{R: 120, G: 255, B: 120, A: 255},
	{R: 255, G: 255, B: 120, A: 255},
	{R: 255, G: 150, B: 255, A: 255},
	{R: 255, G: 180, B: 80, A: 255},
}

// Options configures a Scene. Zero fields fall back to the stock values.
type Options struct {
	Width  float64
	Height float64
	// DisplayFactor converts user-facing units into pixel units
	DisplayFactor float64
	// DefaultDirection is the math-space direction of AddDefault, pixel units
	DefaultDirection geometry.Vector2D
	Palette          []color.RGBA
	BodyThreshold    float64
	TipThreshold     float64
}

// DefaultOptions returns the stock 900x650 canvas settings
func DefaultOptions() Options {
	return Options{
		Width:            900,
		Height:           650,
		DisplayFactor:    10,
		DefaultDirection: geometry.Vector2D{X: 150, Y: 80},
		Palette:          DefaultPalette,
		BodyThreshold:    entity.DefaultBodyThreshold,
		TipThreshold:     entity.DefaultTipThreshold,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DisplayFactor <= 0 {
		o.DisplayFactor = d.DisplayFactor
	}
	if o.DefaultDirection.LengthSquared() == 0 || !o.DefaultDirection.IsFinite() {
		o.DefaultDirection = d.DefaultDirection
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if o.BodyThreshold <= 0 {
		o.BodyThreshold = d.BodyThreshold
	}
	if o.TipThreshold <= 0 {
		o.TipThreshold = d.TipThreshold
	}
	return o
}

// Scene is the ordered registry of vectors. Insertion order is draw order;
// hit testing walks it backwards so the newest vector wins.
type Scene struct {
	opts      Options
	vectors   []*entity.VectorObject
	nextColor int
	nextID    entity.ID
}

// New creates an empty scene
func New(opts Options) *Scene {
	return &Scene{
		opts:   opts.withDefaults(),
		nextID: 1,
	}
}

// Options returns the effective settings
func (s *Scene) Options() Options {
	return s.opts
}

// Center returns the canvas center, screen space
func (s *Scene) Center() geometry.Vector2D {
	return geometry.Vector2D{X: math.Floor(s.opts.Width / 2), Y: math.Floor(s.opts.Height / 2)}
}

// Vectors returns the vectors in insertion order. The slice is a copy; the
// pointers are live.
func (s *Scene) Vectors() []*entity.VectorObject {
	out := make([]*entity.VectorObject, len(s.vectors))
	copy(out, s.vectors)
	return out
}

// Len returns the number of vectors
func (s *Scene) Len() int {
	return len(s.vectors)
}

// ColorIndex returns how many colors have been handed out so far
func (s *Scene) ColorIndex() int {
	return s.nextColor
}

// AddDefault appends a vector at the canvas center with the default direction
func (s *Scene) AddDefault() *entity.VectorObject {
	return s.add(s.opts.DefaultDirection)
}

// AddFromTyped parses two user-facing numbers, scales them by the display
// factor and appends a vector with that direction. Nothing is added and no
// color is consumed when either value is malformed.
func (s *Scene) AddFromTyped(xText, yText string) (*entity.VectorObject, error) {
	x, err := parseComponent(xText)
	if err != nil {
		return nil, err
	}
	y, err := parseComponent(yText)
	if err != nil {
		return nil, err
	}
	direction := geometry.Vector2D{X: x, Y: y}.Scale(s.opts.DisplayFactor)
	if !direction.IsFinite() {
		return nil, &ParseError{Input: xText + "," + yText, Err: fmt.Errorf("out of range: %w", ErrParse)}
	}
	return s.add(direction), nil
}

// ParseTyped splits an "x,y" entry on its comma and calls AddFromTyped
func (s *Scene) ParseTyped(entry string) (*entity.VectorObject, error) {
	parts := strings.Split(entry, ",")
	if len(parts) != 2 {
		return nil, &ParseError{Input: entry, Err: fmt.Errorf("expected x,y: %w", ErrParse)}
	}
	return s.AddFromTyped(parts[0], parts[1])
}

func parseComponent(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &ParseError{Input: text, Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &ParseError{Input: text, Err: fmt.Errorf("not a finite number: %w", ErrParse)}
	}
	return value, nil
}

func (s *Scene) add(direction geometry.Vector2D) *entity.VectorObject {
	c := s.opts.Palette[s.nextColor%len(s.opts.Palette)]
	s.nextColor++

	v := entity.NewVectorObject(s.nextID, s.Center(), direction, c)
	s.nextID++
	s.vectors = append(s.vectors, v)
	return v
}

// HitTestTopmost finds the vector under point, newest first. For each vector
// the tip is tested before the shaft, then the scan moves to the next older
// vector.
func (s *Scene) HitTestTopmost(point geometry.Vector2D) (*entity.VectorObject, HitKind) {
	for i := len(s.vectors) - 1; i >= 0; i-- {
		v := s.vectors[i]
		if v.HitTestTip(point, s.opts.TipThreshold) {
			return v, HitTip
		}
		if v.HitTestBody(point, s.opts.BodyThreshold) {
			return v, HitBody
		}
	}
	return nil, HitNone
}

// ClearDrags resets the drag state of every vector
func (s *Scene) ClearDrags() {
	for _, v := range s.vectors {
		v.EndDrag()
	}
}

// Dragging returns every vector whose drag state is not DragNone
func (s *Scene) Dragging() []*entity.VectorObject {
	var out []*entity.VectorObject
	for _, v := range s.vectors {
		if v.Drag != entity.DragNone {
			out = append(out, v)
		}
	}
	return out
}

// ReadoutLine is one row of the live readout, in user-facing units
type ReadoutLine struct {
	ID        entity.ID
	X         float64
	Y         float64
	Magnitude float64
	Color     color.RGBA
}

// String formats the row the way the readout panel shows it
func (r ReadoutLine) String() string {
	return fmt.Sprintf("(%.1f, %.1f) | %.1f", r.X, r.Y, r.Magnitude)
}

// Readout lists every vector in insertion order, scaled back down by the
// display factor.
func (s *Scene) Readout() []ReadoutLine {
	lines := make([]ReadoutLine, 0, len(s.vectors))
	for _, v := range s.vectors {
		d := v.Direction.Scale(1 / s.opts.DisplayFactor)
		lines = append(lines, ReadoutLine{
			ID:        v.ID,
			X:         d.X,
			Y:         d.Y,
			Magnitude: v.Direction.Length() / s.opts.DisplayFactor,
			Color:     v.Color,
		})
	}
	return lines
}
