// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/render"
)

// FrameSystem ticks the session once per engo frame onto an offscreen
// image and shows it as a single full-window sprite.
type FrameSystem struct {
	session *engine.Session
	surface *render.ImageSurface

	basic   ecs.BasicEntity
	render  common.RenderComponent
	space   common.SpaceComponent
	texture *common.Texture
}

// NewFrameSystem creates the offscreen surface sized to the session canvas
func NewFrameSystem(session *engine.Session) (*FrameSystem, error) {
	width, height := session.Size()
	surface, err := render.NewImageSurface(int(width), int(height))
	if err != nil {
		return nil, err
	}

	return &FrameSystem{
		session: session,
		surface: surface,
		basic:   ecs.NewBasic(),
		render:  common.RenderComponent{Color: color.White},
		space: common.SpaceComponent{
			Position: engo.Point{X: 0, Y: 0},
			Width:    float32(width),
			Height:   float32(height),
		},
	}, nil
}

// Attach adds the frame sprite to the render system
func (fs *FrameSystem) Attach(rs *common.RenderSystem) {
	rs.Add(&fs.basic, &fs.render, &fs.space)
}

// Priority runs after input and before the render system
func (fs *FrameSystem) Priority() int {
	return 0
}

// Remove satisfies the ecs.System interface
func (fs *FrameSystem) Remove(basic ecs.BasicEntity) {}

// Update processes queued input, redraws and swaps in the new texture
func (fs *FrameSystem) Update(dt float32) {
	fs.session.Tick(fs.surface)

	texture := newFrameTexture(fs.surface.Image())
	fs.render.Drawable = texture
	if fs.texture != nil {
		fs.texture.Close()
	}
	fs.texture = &texture
}
