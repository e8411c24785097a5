// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/input"
)

// textMessageType is the mailbox topic engo publishes typed characters on
const textMessageType = "TextMessage"

// keyBinding ties a registered engo button to a controller key
type keyBinding struct {
	name string
	code engo.Key
	key  input.Key
}

var keyBindings = []keyBinding{
	{name: "enter", code: engo.KeyEnter, key: input.KeyEnter},
	{name: "backspace", code: engo.KeyBackspace, key: input.KeyBackspace},
	{name: "escape", code: engo.KeyEscape, key: input.KeyEscape},
}

// SetupInputBindings registers the named buttons the input system polls
func SetupInputBindings() {
	for _, b := range keyBindings {
		engo.Input.RegisterButton(b.name, b.code)
	}
}

// InputSystem forwards engo mouse, key and text input to a session queue
type InputSystem struct {
	session *engine.Session
}

// NewInputSystem creates a new input system
func NewInputSystem(session *engine.Session) *InputSystem {
	return &InputSystem{session: session}
}

// Priority runs input ahead of the frame system
func (is *InputSystem) Priority() int {
	return 10
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update queues this frame's pointer action and key presses
func (is *InputSystem) Update(dt float32) {
	m := engo.Input.Mouse
	if ev, ok := translateMouse(m.Action, m.Button, m.X, m.Y); ok {
		is.session.Enqueue(ev)
	}

	for _, b := range keyBindings {
		if engo.Input.Button(b.name).JustPressed() {
			is.session.Enqueue(input.KeyPress(b.key))
		}
	}
}

// HandleText is registered on the mailbox for typed characters
func (is *InputSystem) HandleText(msg engo.Message) {
	if text, ok := msg.(engo.TextMessage); ok {
		is.session.Enqueue(input.Char(text.Char))
	}
}

// translateMouse maps an engo mouse action to a pointer event. Only the
// left button presses and releases.
func translateMouse(action engo.Action, button engo.MouseButton, x, y float32) (input.Event, bool) {
	px, py := float64(x), float64(y)
	switch {
	case action == engo.Move:
		return input.Move(px, py), true
	case action == engo.Press && button == engo.MouseButtonLeft:
		return input.Press(px, py), true
	case action == engo.Release && button == engo.MouseButtonLeft:
		return input.Release(px, py), true
	default:
		return input.Event{}, false
	}
}
