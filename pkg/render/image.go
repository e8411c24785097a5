package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
)

// ImageFontSize is the pixel size of ImageSurface text
const ImageFontSize = 20

var (
	fontOnce sync.Once
	goFont   *opentype.Font
	fontErr  error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// ImageSurface rasterizes drawing calls into an RGBA image. It backs the
// window backends and PNG export.
type ImageSurface struct {
	img    *image.RGBA
	face   font.Face
	raster *vector.Rasterizer
}

// NewImageSurface creates a transparent width x height surface
func NewImageSurface(width, height int) (*ImageSurface, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    ImageFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return &ImageSurface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		face:   face,
		raster: vector.NewRasterizer(width, height),
	}, nil
}

// Image returns the backing image. It is overwritten by later draws.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole surface with c
func (s *ImageSurface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// canvas returns the image bounds grown by margin on every side
func (s *ImageSurface) canvas(margin float64) geometry.Rect {
	size := s.img.Bounds().Size()
	return geometry.Rect{
		X:      -margin,
		Y:      -margin,
		Width:  float64(size.X) + 2*margin,
		Height: float64(size.Y) + 2*margin,
	}
}

// fill rasterizes points after clipping them to the image, so that far
// away vertices never reach the float32 rasterizer.
func (s *ImageSurface) fill(points []geometry.Vector2D, c color.RGBA) {
	points = geometry.ClipPolygon(points, s.canvas(0))
	if len(points) < 3 {
		return
	}
	size := s.img.Bounds().Size()
	s.raster.Reset(size.X, size.Y)
	s.raster.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		s.raster.LineTo(float32(p.X), float32(p.Y))
	}
	s.raster.ClosePath()
	s.raster.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

// DrawLine implements entity.Surface. Lines get square caps.
func (s *ImageSurface) DrawLine(from, to geometry.Vector2D, c color.RGBA, width float64) {
	from, to, ok := geometry.ClipSegment(from, to, s.canvas(width))
	if !ok {
		return
	}
	dir, err := to.Sub(from).Normalize()
	if err != nil {
		return
	}
	half := width / 2
	along := dir.Scale(half)
	across := geometry.Vector2D{X: -dir.Y, Y: dir.X}.Scale(half)

	a := from.Sub(along)
	b := to.Add(along)
	s.fill([]geometry.Vector2D{a.Add(across), b.Add(across), b.Sub(across), a.Sub(across)}, c)
}

// FillPolygon implements entity.Surface.
func (s *ImageSurface) FillPolygon(points []geometry.Vector2D, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.fill(points, c)
}

// DrawRect implements entity.Surface. Outlines are drawn inside rect.
func (s *ImageSurface) DrawRect(rect geometry.Rect, c color.RGBA, fill bool) {
	src := image.NewUniform(c)
	if fill {
		draw.Draw(s.img, pixelRect(rect), src, image.Point{}, draw.Over)
		return
	}

	w := entity.BorderWidth
	edges := []geometry.Rect{
		{X: rect.X, Y: rect.Y, Width: rect.Width, Height: w},
		{X: rect.X, Y: rect.Y + rect.Height - w, Width: rect.Width, Height: w},
		{X: rect.X, Y: rect.Y + w, Width: w, Height: rect.Height - 2*w},
		{X: rect.X + rect.Width - w, Y: rect.Y + w, Width: w, Height: rect.Height - 2*w},
	}
	for _, e := range edges {
		draw.Draw(s.img, pixelRect(e), src, image.Point{}, draw.Over)
	}
}

// DrawText implements entity.Surface.
func (s *ImageSurface) DrawText(text string, pos geometry.Vector2D, c color.RGBA) {
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: s.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(pos.X))),
			Y: fixed.I(int(math.Round(pos.Y))) + s.face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

// WritePNG encodes the surface as PNG
func (s *ImageSurface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

func pixelRect(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
}
