// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// toNRGBA converts a rendered frame to the non-premultiplied layout
// common.NewImageObject expects
func toNRGBA(img *image.RGBA) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}

// newFrameTexture uploads a rendered frame. Requires a GL context.
func newFrameTexture(img *image.RGBA) common.Texture {
	return common.NewTextureSingle(common.NewImageObject(toNRGBA(img)))
}
