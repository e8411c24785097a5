//go:build ebiten

// Package ebiten hosts a session in an Ebitengine window. It is only built
// with the ebiten tag so the engo and ebiten windowing stacks never link
// into the same binary.
package ebiten

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/render"
)

// Surface draws onto an ebiten image with the vector and text packages
type Surface struct {
	dst   *ebiten.Image
	white *ebiten.Image
	face  font.Face
	path  vector.Path
	verts []ebiten.Vertex
	index []uint16
}

// NewSurface creates a surface. Target must be called before drawing.
func NewSurface() (*Surface, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    render.ImageFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  face,
	}, nil
}

// Target sets the image later calls draw on
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// canvas returns the target bounds grown by margin on every side
func (s *Surface) canvas(margin float64) geometry.Rect {
	b := s.dst.Bounds()
	return geometry.Rect{
		X:      float64(b.Min.X) - margin,
		Y:      float64(b.Min.Y) - margin,
		Width:  float64(b.Dx()) + 2*margin,
		Height: float64(b.Dy()) + 2*margin,
	}
}

// DrawLine implements entity.Surface. Segments are clipped to the target
// before the float32 conversion.
func (s *Surface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	from, to, ok := geometry.ClipSegment(from, to, s.canvas(width))
	if !ok {
		return
	}
	vector.StrokeLine(s.dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), c, true)
}

// FillPolygon implements entity.Surface.
func (s *Surface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	points = geometry.ClipPolygon(points, s.canvas(0))
	if len(points) < 3 {
		return
	}

	s.path = vector.Path{}
	s.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	s.path.Close()

	s.verts, s.index = s.path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.index[:0])
	for i := range s.verts {
		s.verts[i].SrcX = 1
		s.verts[i].SrcY = 1
		s.verts[i].ColorR = float32(c.R) / 0xff
		s.verts[i].ColorG = float32(c.G) / 0xff
		s.verts[i].ColorB = float32(c.B) / 0xff
		s.verts[i].ColorA = float32(c.A) / 0xff
	}
	s.dst.DrawTriangles(s.verts, s.index, s.white, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		FillRule:       ebiten.NonZero,
		AntiAlias:      true,
	})
}

// DrawRect implements entity.Surface. Outlines are drawn inside rect.
func (s *Surface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	if fill {
		vector.DrawFilledRect(s.dst, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), c, false)
		return
	}
	half := entity.BorderWidth / 2
	vector.StrokeRect(s.dst,
		float32(rect.X+half), float32(rect.Y+half),
		float32(rect.Width-entity.BorderWidth), float32(rect.Height-entity.BorderWidth),
		entity.BorderWidth, c, false)
}

// DrawText implements entity.Surface.
func (s *Surface) DrawText(str string, pos geometry.Vector2D, c color.RGBA) {
	ascent := s.face.Metrics().Ascent.Ceil()
	text.Draw(s.dst, str, s.face, int(math.Round(pos.X)), int(math.Round(pos.Y))+ascent, c)
}
