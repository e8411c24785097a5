package render

import (
	"bufio"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
)

// Terminal glyphs
const (
	glyphLine   = '*'
	glyphHead   = '#'
	glyphCorner = '+'
	glyphHoriz  = '-'
	glyphVert   = '|'
)

// TerminalSurface rasterizes drawing calls onto a grid of runes. Each cell
// covers a fixed block of canvas pixels; colors are dropped.
type TerminalSurface struct {
	cols   int
	rows   int
	buffer [][]rune
	cellW  float64
	cellH  float64
}

// NewTerminalSurface creates a cols x rows grid that maps a canvas of
// canvasW x canvasH pixels.
func NewTerminalSurface(cols, rows int, canvasW, canvasH float64) *TerminalSurface {
	buffer := make([][]rune, rows)
	for i := range buffer {
		buffer[i] = make([]rune, cols)
	}

	t := &TerminalSurface{
		cols:   cols,
		rows:   rows,
		buffer: buffer,
		cellW:  canvasW / float64(cols),
		cellH:  canvasH / float64(rows),
	}
	t.Clear()
	return t
}

// cell converts a canvas point to grid coordinates
func (t *TerminalSurface) cell(p geometry.Vector2D) (int, int) {
	return int(math.Floor(p.X / t.cellW)), int(math.Floor(p.Y / t.cellH))
}

// bounds is the canvas area the grid covers
func (t *TerminalSurface) bounds() geometry.Rect {
	return geometry.Rect{Width: float64(t.cols) * t.cellW, Height: float64(t.rows) * t.cellH}
}

func (t *TerminalSurface) set(x, y int, r rune) {
	if x >= 0 && x < t.cols && y >= 0 && y < t.rows {
		t.buffer[y][x] = r
	}
}

// Clear blanks the grid
func (t *TerminalSurface) Clear() {
	for y := range t.buffer {
		for x := range t.buffer[y] {
			t.buffer[y][x] = ' '
		}
	}
}

// DrawLine implements entity.Surface with Bresenham's algorithm
func (t *TerminalSurface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	t.line(from, to, glyphLine)
}

func (t *TerminalSurface) line(from, to geometry.Vector2D, r rune) {
	from, to, ok := geometry.ClipSegment(from, to, t.bounds())
	if !ok {
		return
	}
	x0, y0 := t.cell(from)
	x1, y1 := t.cell(to)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		t.set(x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillPolygon implements entity.Surface. Cells whose centers fall inside the
// polygon are filled, and the outline is traced so thin heads stay visible.
func (t *TerminalSurface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	if len(points) < 3 {
		return
	}

	clipped := geometry.ClipPolygon(points, t.bounds())
	if len(clipped) < 3 {
		return
	}
	b := geometry.Bounds(clipped)
	x0, y0 := t.cell(b.Min())
	x1, y1 := t.cell(b.Max())
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, t.cols-1), min(y1, t.rows-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			center := geometry.Vector2D{X: (float64(x) + 0.5) * t.cellW, Y: (float64(y) + 0.5) * t.cellH}
			if pointInPolygon(center, clipped) {
				t.set(x, y, glyphHead)
			}
		}
	}

	for i := range points {
		t.line(points[i], points[(i+1)%len(points)], glyphHead)
	}
}

// DrawRect implements entity.Surface. A filled rect blanks its cells so later
// text reads cleanly; an outline uses box glyphs.
func (t *TerminalSurface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	x0, y0 := t.cell(rect.Min())
	x1, y1 := t.cell(rect.Max().Sub(geometry.Vector2D{X: 1e-9, Y: 1e-9}))

	if fill {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.set(x, y, ' ')
			}
		}
		return
	}

	for x := x0; x <= x1; x++ {
		t.set(x, y0, glyphHoriz)
		t.set(x, y1, glyphHoriz)
	}
	for y := y0; y <= y1; y++ {
		t.set(x0, y, glyphVert)
		t.set(x1, y, glyphVert)
	}
	t.set(x0, y0, glyphCorner)
	t.set(x1, y0, glyphCorner)
	t.set(x0, y1, glyphCorner)
	t.set(x1, y1, glyphCorner)
}

// DrawText implements entity.Surface. Text starts in the cell holding pos
// and is clipped at the right edge.
func (t *TerminalSurface) DrawText(text string, pos geometry.Vector2D, c color.RGBA) {
	x, y := t.cell(pos)
	for _, r := range text {
		t.set(x, y, r)
		x++
	}
}

// Present writes the grid framed by a border
func (t *TerminalSurface) Present(w io.Writer) error {
	bw := bufio.NewWriter(w)
	border := "+" + strings.Repeat("-", t.cols) + "+\n"

	bw.WriteString(border)
	for y := range t.buffer {
		bw.WriteByte('|')
		bw.WriteString(string(t.buffer[y]))
		bw.WriteString("|\n")
	}
	bw.WriteString(border)
	return bw.Flush()
}

// String returns the grid rows joined by newlines, without a border
func (t *TerminalSurface) String() string {
	lines := make([]string, len(t.buffer))
	for y := range t.buffer {
		lines[y] = string(t.buffer[y])
	}
	return strings.Join(lines, "\n")
}

// At returns the rune in a cell, or 0 outside the grid
func (t *TerminalSurface) At(x, y int) rune {
	if x < 0 || x >= t.cols || y < 0 || y >= t.rows {
		return 0
	}
	return t.buffer[y][x]
}

// pointInPolygon is the even-odd ray casting test
func pointInPolygon(p geometry.Vector2D, poly []geometry.Vector2D) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ entity.Surface = (*TerminalSurface)(nil)
