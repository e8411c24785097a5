package engo

import (
	"image"
	"image/color"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/input"
)

func TestTranslateMouse(t *testing.T) {
	tests := []struct {
		name   string
		action engo.Action
		button engo.MouseButton
		want   input.Event
		ok     bool
	}{
		{name: "left press", action: engo.Press, button: engo.MouseButtonLeft, want: input.Press(12, 34), ok: true},
		{name: "left release", action: engo.Release, button: engo.MouseButtonLeft, want: input.Release(12, 34), ok: true},
		{name: "move", action: engo.Move, button: engo.MouseButtonRight, want: input.Move(12, 34), ok: true},
		{name: "right press", action: engo.Press, button: engo.MouseButtonRight},
		{name: "neutral", action: engo.Neutral, button: engo.MouseButtonLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateMouse(tt.action, tt.button, 12, 34)
			if ok != tt.ok {
				t.Fatalf("translateMouse ok = %v, expected %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("translateMouse = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestInputSystem_HandleText(t *testing.T) {
	session := engine.NewSession(engine.Options{})
	is := NewInputSystem(session)

	session.Enqueue(input.Press(300, 40))
	for _, r := range "3,4" {
		is.HandleText(engo.TextMessage{Char: r})
	}

	if got := session.Pending(); got != 4 {
		t.Fatalf("Pending() = %d, expected 4", got)
	}
	session.Process()
	if got := session.Snapshot().Buffer; got != "3,4" {
		t.Errorf("Buffer = %q, expected %q", got, "3,4")
	}
}

func TestKeyBindings(t *testing.T) {
	seen := map[input.Key]bool{}
	for _, b := range keyBindings {
		if b.name == "" {
			t.Error("binding without a button name")
		}
		seen[b.key] = true
	}
	for _, k := range []input.Key{input.KeyEnter, input.KeyBackspace, input.KeyEscape} {
		if !seen[k] {
			t.Errorf("no binding for %v", k)
		}
	}
}

func TestToNRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 128, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 64, A: 128})

	out := toNRGBA(img)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := out.NRGBAAt(1, 0); got.A != 128 || got.R < 126 || got.R > 128 {
		t.Errorf("translucent pixel = %v, expected un-premultiplied red near 127", got)
	}
}

func TestNewFrameSystem(t *testing.T) {
	session := engine.NewSession(engine.Options{})
	fs, err := NewFrameSystem(session)
	if err != nil {
		t.Fatalf("NewFrameSystem() error = %v", err)
	}

	if fs.space.Width != 900 || fs.space.Height != 650 {
		t.Errorf("sprite size = %vx%v, expected 900x650", fs.space.Width, fs.space.Height)
	}
	if b := fs.surface.Image().Bounds(); b.Dx() != 900 || b.Dy() != 650 {
		t.Errorf("surface size = %v", b)
	}
	if fs.Priority() >= NewInputSystem(session).Priority() {
		t.Error("frame system must run after input")
	}
}

func TestVectorScene_Type(t *testing.T) {
	scene := NewVectorScene(engine.NewSession(engine.Options{}), nil)
	if scene.Type() != SceneType {
		t.Errorf("Type() = %q, expected %q", scene.Type(), SceneType)
	}
}
