package input

import (
	"context"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/event"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/scene"
	"github.com/opd-ai/vecpad/pkg/validation"
)

// Mode is the coarse controller mode
type Mode int

const (
	ModeIdle Mode = iota
	ModeTyping
)

// String implements fmt.Stringer
func (m Mode) String() string {
	if m == ModeTyping {
		return "typing"
	}
	return "idle"
}

// State is the controller mode combined with the active drag, if any
type State int

const (
	StateIdle State = iota
	StateDraggingBody
	StateDraggingTip
	StateTyping
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateDraggingBody:
		return "dragging_body"
	case StateDraggingTip:
		return "dragging_tip"
	case StateTyping:
		return "typing"
	default:
		return "idle"
	}
}

// Controller is the input state machine. It owns no vectors; every mutation
// goes through the Scene it was built with. Not safe for concurrent use,
// engine.Session serializes access.
type Controller struct {
	ctx    context.Context
	scene  *scene.Scene
	layout Layout
	bus    *event.Bus
	logger *logging.Logger

	mode   Mode
	target *entity.VectorObject
	buffer string
}

// NewController creates an idle controller. ctx carries the correlation ID
// for its log lines. A nil bus or logger is replaced with a private bus or a
// discarding logger.
func NewController(ctx context.Context, sc *scene.Scene, layout Layout, bus *event.Bus, logger *logging.Logger) *Controller {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Controller{
		ctx:    ctx,
		scene:  sc,
		layout: layout,
		bus:    bus,
		logger: logger,
	}
}

// Mode returns the current mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// State returns the current tagged state
func (c *Controller) State() State {
	if c.mode == ModeTyping {
		return StateTyping
	}
	if c.target == nil {
		return StateIdle
	}
	switch c.target.Drag {
	case entity.DragBody:
		return StateDraggingBody
	case entity.DragTip:
		return StateDraggingTip
	default:
		return StateIdle
	}
}

// Target returns the vector being dragged, or nil
func (c *Controller) Target() *entity.VectorObject {
	return c.target
}

// Buffer returns the characters typed so far
func (c *Controller) Buffer() string {
	return c.buffer
}

// Layout returns the control positions
func (c *Controller) Layout() Layout {
	return c.layout
}

// Scene returns the scene the controller mutates
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Handle applies one event
func (c *Controller) Handle(ev Event) {
	if c.mode == ModeTyping {
		c.handleTyping(ev)
		return
	}

	switch ev.Kind {
	case PointerDown:
		c.pointerDown(ev.Pos)
	case PointerMove:
		if c.target != nil {
			c.target.ApplyDrag(ev.Pos)
		}
	case PointerUp:
		c.endDrag()
	}
}

func (c *Controller) pointerDown(pos geometry.Vector2D) {
	// A press while dragging means the release was lost.
	if c.target != nil {
		c.endDrag()
	}

	switch {
	case c.layout.AddVector.Contains(pos):
		v := c.scene.AddDefault()
		c.logger.Debug(c.ctx, "vector added", "vector_id", uint64(v.ID), "source", "button")
		c.bus.Publish(event.NewVectorEvent(event.VectorAdded, c, uint64(v.ID), ""))
		return
	case c.layout.AddTyped.Contains(pos):
		c.mode = ModeTyping
		c.buffer = ""
		c.logger.Debug(c.ctx, "typing started")
		c.bus.Publish(&event.BaseEvent{EventType: event.TypingStarted, Source: c})
		return
	}

	v, kind := c.scene.HitTestTopmost(pos)
	switch kind {
	case scene.HitTip:
		v.BeginTipDrag()
	case scene.HitBody:
		v.BeginBodyDrag(pos)
	default:
		return
	}
	c.target = v
	c.logger.Debug(c.ctx, "drag started", "vector_id", uint64(v.ID), "part", kind.String())
	c.bus.Publish(event.NewVectorEvent(event.DragStarted, c, uint64(v.ID), kind.String()))
}

// endDrag clears drag state on every vector, not just the target
func (c *Controller) endDrag() {
	target := c.target
	c.target = nil
	c.scene.ClearDrags()

	if target != nil {
		c.logger.Debug(c.ctx, "drag ended", "vector_id", uint64(target.ID))
		c.bus.Publish(event.NewVectorEvent(event.DragEnded, c, uint64(target.ID), ""))
	}
}

func (c *Controller) handleTyping(ev Event) {
	if ev.Kind != KeyDown {
		return
	}

	switch ev.Key {
	case KeyEnter:
		c.submit()
	case KeyBackspace:
		c.buffer = validation.TrimLastRune(c.buffer)
	case KeyNone:
		buf, err := validation.AppendEntryRune(c.buffer, ev.Char)
		if err != nil {
			c.logger.Debug(c.ctx, "character dropped", "reason", err.Error())
			return
		}
		c.buffer = buf
	}
}

func (c *Controller) submit() {
	entry := c.buffer
	c.buffer = ""
	c.mode = ModeIdle

	v, err := c.scene.ParseTyped(entry)
	if err != nil {
		c.logger.Debug(c.ctx, "entry rejected", "entry", entry, "reason", err.Error())
		c.bus.Publish(event.NewEntryEvent(event.EntryRejected, c, entry, err))
		return
	}

	c.logger.Debug(c.ctx, "vector added", "vector_id", uint64(v.ID), "source", "typed")
	c.bus.Publish(event.NewEntryEvent(event.EntrySubmitted, c, entry, nil))
	c.bus.Publish(event.NewVectorEvent(event.VectorAdded, c, uint64(v.ID), ""))
}
