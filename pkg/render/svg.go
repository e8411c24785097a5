package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
)

const svgHeader = `<svg width="%d" height="%d" viewBox="0 0 %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg">`

// SVGFontSize is the font size used for DrawText, in pixels
const SVGFontSize = 20

// SVGSurface collects drawing calls as SVG elements. WriteTo emits a
// standalone document.
type SVGSurface struct {
	width    int
	height   int
	elements []string
}

// NewSVGSurface creates an empty document of the given pixel size
func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(c color.RGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.3f"`, float64(c.A)/255)
}

func svgPoints(points []geometry.Vector2D) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// DrawLine implements entity.Surface.
func (s *SVGSurface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"%s />`,
		from.X, from.Y, to.X, to.Y, svgColor(c), width, svgOpacity(c)))
}

// FillPolygon implements entity.Surface.
func (s *SVGSurface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<polygon points="%s" fill="%s"%s />`, svgPoints(points), svgColor(c), svgOpacity(c)))
}

// DrawRect implements entity.Surface. Outlines are stroked inside rect.
func (s *SVGSurface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	if fill {
		s.elements = append(s.elements, fmt.Sprintf(
			`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s />`,
			rect.X, rect.Y, rect.Width, rect.Height, svgColor(c), svgOpacity(c)))
		return
	}
	half := entity.BorderWidth / 2
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s />`,
		rect.X+half, rect.Y+half, rect.Width-entity.BorderWidth, rect.Height-entity.BorderWidth,
		svgColor(c), entity.BorderWidth, svgOpacity(c)))
}

// DrawText implements entity.Surface.
func (s *SVGSurface) DrawText(text string, pos geometry.Vector2D, c color.RGBA) {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))
	s.elements = append(s.elements, fmt.Sprintf(
		`<text x="%.2f" y="%.2f" fill="%s" font-family="monospace" font-size="%d" dominant-baseline="hanging">%s</text>`,
		pos.X, pos.Y, svgColor(c), SVGFontSize, escaped.String()))
}

// Len returns the number of collected elements
func (s *SVGSurface) Len() int {
	return len(s.elements)
}

// Reset drops all collected elements
func (s *SVGSurface) Reset() {
	s.elements = s.elements[:0]
}

// WriteTo writes the SVG document to w
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	var werr error
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, f, args...)
	}

	wr(svgHeader, s.width, s.height, s.width, s.height)
	wr("\n")
	for _, el := range s.elements {
		wr("%s\n", el)
	}
	wr("</svg>\n")
	if werr == nil {
		werr = bw.Flush()
	}
	return cw.n, werr
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

var _ entity.Surface = (*SVGSurface)(nil)
