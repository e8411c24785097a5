// pkg/render/renderer.go
package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/input"
	"github.com/opd-ai/vecpad/pkg/scene"
)

// Button labels
const (
	AddVectorLabel = "Add Vector"
	AddTypedLabel  = "Add Typed Vector"
	PromptLabel    = "Enter x,y: "
)

// Theme holds the fixed interface colors
type Theme struct {
	Background   color.RGBA
	ButtonFill   color.RGBA
	ButtonBorder color.RGBA
	Label        color.RGBA
	TypingFill   color.RGBA
	// HighlightLift is added to HSL lightness for vectors being dragged
	HighlightLift float64
}

// DefaultTheme returns the stock dark theme
func DefaultTheme() Theme {
	return Theme{
		Background:    color.RGBA{R: 30, G: 30, B: 30, A: 255},
		ButtonFill:    color.RGBA{R: 80, G: 80, B: 80, A: 255},
		ButtonBorder:  color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Label:         color.RGBA{R: 255, G: 255, B: 255, A: 255},
		TypingFill:    color.RGBA{R: 50, G: 50, B: 50, A: 255},
		HighlightLift: 0.15,
	}
}

// Renderer draws one frame of the editor onto any entity.Surface
type Renderer struct {
	theme Theme
	style entity.ArrowStyle
}

// NewRenderer creates a renderer
func NewRenderer(style entity.ArrowStyle, theme Theme) *Renderer {
	return &Renderer{theme: theme, style: style}
}

// Draw paints background, buttons, vectors, readout and, while typing, the
// entry box, in that order. A nil controller draws the idle layout.
func (r *Renderer) Draw(s entity.Surface, sc *scene.Scene, c *input.Controller) {
	opts := sc.Options()
	layout := input.DefaultLayout(opts.Width, opts.Height)
	if c != nil {
		layout = c.Layout()
	}

	s.DrawRect(geometry.Rect{Width: opts.Width, Height: opts.Height}, r.theme.Background, true)

	r.drawButton(s, layout.AddVector, AddVectorLabel, 20)
	r.drawButton(s, layout.AddTyped, AddTypedLabel, 10)

	for _, v := range sc.Vectors() {
		col := v.Color
		if v.Drag != entity.DragNone {
			col = Highlight(col, r.theme.HighlightLift)
		}
		v.Render(s, r.style, col)
	}

	pos := layout.Readout
	for _, line := range sc.Readout() {
		s.DrawText(line.String(), pos, line.Color)
		pos.Y += layout.ReadoutStep
	}

	if c != nil && c.Mode() == input.ModeTyping {
		box := layout.TypingBox
		s.DrawRect(box, r.theme.TypingFill, true)
		s.DrawRect(box, r.theme.ButtonBorder, false)
		s.DrawText(PromptLabel+c.Buffer(), geometry.Vector2D{X: box.X + 10, Y: box.Y + 8}, r.theme.Label)
	}
}

func (r *Renderer) drawButton(s entity.Surface, rect geometry.Rect, label string, inset float64) {
	s.DrawRect(rect, r.theme.ButtonFill, true)
	s.DrawRect(rect, r.theme.ButtonBorder, false)
	s.DrawText(label, geometry.Vector2D{X: rect.X + inset, Y: rect.Y + 8}, r.theme.Label)
}

// Highlight returns c with its HSL lightness raised by lift, clamped to the
// RGB gamut. Alpha is kept.
func Highlight(c color.RGBA, lift float64) color.RGBA {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	h, sat, l := cf.Hsl()
	lighter := colorful.Hsl(h, sat, math.Min(l+lift, 1)).Clamped()
	red, green, blue := lighter.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: c.A}
}
