package render

import (
	"image/color"
	"sync"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
)

// OpKind names a recorded drawing call
type OpKind string

const (
	OpLine    OpKind = "line"
	OpPolygon OpKind = "polygon"
	OpRect    OpKind = "rect"
	OpText    OpKind = "text"
)

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Points []geometry.Vector2D
	Rect   geometry.Rect
	Text   string
	Color  color.RGBA
	Width  float64
	Fill   bool
}

// RecordingSurface remembers every call in order. It is the reference
// surface for frame assertions.
type RecordingSurface struct {
	mu  sync.Mutex
	ops []Op
}

// NewRecordingSurface creates an empty recording
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

func (r *RecordingSurface) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// DrawLine implements entity.Surface.
func (r *RecordingSurface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	r.record(Op{Kind: OpLine, Points: []geometry.Vector2D{from, to}, Color: c, Width: width})
}

// FillPolygon implements entity.Surface.
func (r *RecordingSurface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	pts := make([]geometry.Vector2D, len(points))
	copy(pts, points)
	r.record(Op{Kind: OpPolygon, Points: pts, Color: c, Fill: true})
}

// DrawRect implements entity.Surface.
func (r *RecordingSurface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	r.record(Op{Kind: OpRect, Rect: rect, Color: c, Fill: fill})
}

// DrawText implements entity.Surface.
func (r *RecordingSurface) DrawText(text string, pos geometry.Vector2D, c color.RGBA) {
	r.record(Op{Kind: OpText, Points: []geometry.Vector2D{pos}, Text: text, Color: c})
}

// Ops returns a copy of the recorded calls
func (r *RecordingSurface) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// OpsOf returns the recorded calls of one kind
func (r *RecordingSurface) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops() {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every drawn string in order
func (r *RecordingSurface) Texts() []string {
	var out []string
	for _, op := range r.OpsOf(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Reset discards the recording
func (r *RecordingSurface) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

var _ entity.Surface = (*RecordingSurface)(nil)
