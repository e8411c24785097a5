package input

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/event"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/scene"
)

func newTestController() (*Controller, *scene.Scene, *event.Bus) {
	sc := scene.New(scene.DefaultOptions())
	bus := event.NewEventBus()
	c := NewController(context.Background(), sc, DefaultLayout(900, 650), bus, nil)
	return c, sc, bus
}

func handleAll(c *Controller, events ...Event) {
	for _, ev := range events {
		c.Handle(ev)
	}
}

func TestController_LogsWithCallerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, slog.LevelDebug)
	ctx := logging.WithCorrelationID(context.Background(), "session-42")
	c := NewController(ctx, scene.New(scene.DefaultOptions()), DefaultLayout(900, 650), nil, logger)

	handleAll(c, Press(100, 40), Release(100, 40))

	out := buf.String()
	if !strings.Contains(out, "vector added") {
		t.Fatalf("expected a vector added log line, got %q", out)
	}
	if !strings.Contains(out, `"correlation_id":"session-42"`) {
		t.Errorf("log line lacks the caller's correlation ID: %q", out)
	}
}

func TestController_AddVectorButton(t *testing.T) {
	c, sc, bus := newTestController()
	added := 0
	bus.Subscribe(event.VectorAdded, func(event.Event) { added++ })

	handleAll(c, Press(100, 40), Release(100, 40))

	if sc.Len() != 1 {
		t.Fatalf("scene has %d vectors, expected 1", sc.Len())
	}
	if c.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", c.State())
	}
	if added != 1 {
		t.Errorf("VectorAdded published %d times, expected 1", added)
	}
}

func TestController_TypedEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		added    bool
		expected geometry.Vector2D
	}{
		{name: "integers", entry: "12,-5", added: true, expected: geometry.Vector2D{X: 120, Y: -50}},
		{name: "spaces", entry: " 1.5 , 2 ", added: true, expected: geometry.Vector2D{X: 15, Y: 20}},
		{name: "letters", entry: "abc"},
		{name: "empty", entry: ""},
		{name: "three_parts", entry: "1,2,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sc, bus := newTestController()
			var rejected error
			bus.Subscribe(event.EntryRejected, func(e event.Event) {
				rejected = e.(*event.EntryEvent).Err
			})

			c.Handle(Press(300, 40))
			if c.State() != StateTyping {
				t.Fatalf("State() = %v after Add Typed, expected typing", c.State())
			}
			handleAll(c, Text(tt.entry)...)
			if c.Buffer() != tt.entry {
				t.Errorf("Buffer() = %q, expected %q", c.Buffer(), tt.entry)
			}
			c.Handle(KeyPress(KeyEnter))

			if c.State() != StateIdle || c.Buffer() != "" {
				t.Errorf("after Enter: State() = %v, Buffer() = %q", c.State(), c.Buffer())
			}

			if !tt.added {
				if sc.Len() != 0 {
					t.Errorf("malformed entry added %d vectors", sc.Len())
				}
				if !errors.Is(rejected, scene.ErrParse) {
					t.Errorf("EntryRejected error = %v, expected ErrParse", rejected)
				}
				return
			}

			if sc.Len() != 1 {
				t.Fatalf("scene has %d vectors, expected 1", sc.Len())
			}
			if d := sc.Vectors()[0].Direction; d != tt.expected {
				t.Errorf("Direction = %v, expected %v", d, tt.expected)
			}
		})
	}
}

func TestController_TypingBuffer(t *testing.T) {
	c, _, _ := newTestController()
	c.Handle(Press(300, 40))

	handleAll(c, Text("12x")...)
	c.Handle(KeyPress(KeyBackspace))
	if c.Buffer() != "12" {
		t.Errorf("Buffer() = %q after backspace, expected %q", c.Buffer(), "12")
	}

	handleAll(c, KeyPress(KeyBackspace), KeyPress(KeyBackspace), KeyPress(KeyBackspace))
	if c.Buffer() != "" {
		t.Errorf("Buffer() = %q, expected empty", c.Buffer())
	}

	c.Handle(Char('\x07'))
	if c.Buffer() != "" {
		t.Errorf("control character accepted: %q", c.Buffer())
	}
}

func TestController_TypingIgnoresOtherEvents(t *testing.T) {
	c, sc, _ := newTestController()
	sc.AddDefault()
	c.Handle(Press(300, 40))
	c.Handle(Char('4'))

	handleAll(c,
		Press(100, 40),
		Press(600, 245),
		Move(10, 10),
		Release(10, 10),
		KeyPress(KeyEscape),
		KeyPress(KeyOther),
	)

	if c.State() != StateTyping {
		t.Errorf("State() = %v, expected typing", c.State())
	}
	if c.Buffer() != "4" {
		t.Errorf("Buffer() = %q, expected %q", c.Buffer(), "4")
	}
	if sc.Len() != 1 {
		t.Errorf("scene has %d vectors, expected 1", sc.Len())
	}
	if len(sc.Dragging()) != 0 {
		t.Error("pointer press started a drag while typing")
	}
}

func TestController_TipDrag(t *testing.T) {
	c, sc, _ := newTestController()
	v := sc.AddDefault()

	c.Handle(Press(600, 245))
	if c.State() != StateDraggingTip || c.Target() != v {
		t.Fatalf("State() = %v, Target() = %v, expected tip drag", c.State(), c.Target())
	}

	c.Handle(Move(400, 400))
	if v.Direction != (geometry.Vector2D{X: -50, Y: -75}) {
		t.Errorf("Direction = %v, expected (-50, -75)", v.Direction)
	}

	c.Handle(Release(400, 400))
	if c.State() != StateIdle || c.Target() != nil {
		t.Errorf("State() = %v after release", c.State())
	}
	if v.Drag != entity.DragNone {
		t.Errorf("Drag = %v after release", v.Drag)
	}
}

func TestController_BodyDrag(t *testing.T) {
	c, sc, bus := newTestController()
	v := sc.AddDefault()
	var parts []string
	bus.Subscribe(event.DragStarted, func(e event.Event) {
		parts = append(parts, e.(*event.VectorEvent).Part)
	})

	c.Handle(Press(525, 285))
	if c.State() != StateDraggingBody {
		t.Fatalf("State() = %v, expected body drag", c.State())
	}

	c.Handle(Move(535, 300))
	if v.Origin != (geometry.Vector2D{X: 460, Y: 340}) {
		t.Errorf("Origin = %v, expected (460, 340)", v.Origin)
	}
	if v.Direction != (geometry.Vector2D{X: 150, Y: 80}) {
		t.Errorf("Direction changed to %v", v.Direction)
	}

	c.Handle(Release(535, 300))
	if len(parts) != 1 || parts[0] != "body" {
		t.Errorf("DragStarted parts = %v", parts)
	}
}

func TestController_PressOnEmptyCanvas(t *testing.T) {
	c, sc, _ := newTestController()
	sc.AddDefault()

	handleAll(c, Press(10, 600), Move(20, 610))

	if c.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", c.State())
	}
}

func TestController_MissedRelease(t *testing.T) {
	c, sc, bus := newTestController()
	a := sc.AddDefault()
	b, err := sc.AddFromTyped("-15", "8")
	if err != nil {
		t.Fatal(err)
	}
	ended := 0
	bus.Subscribe(event.DragEnded, func(event.Event) { ended++ })

	c.Handle(Press(600, 245))
	if c.Target() != a {
		t.Fatalf("Target() = %v, expected first vector", c.Target())
	}

	// B's tip, without releasing A first
	c.Handle(Press(300, 245))

	if c.Target() != b || c.State() != StateDraggingTip {
		t.Errorf("Target() = %v, State() = %v, expected B tip drag", c.Target(), c.State())
	}
	if a.Drag != entity.DragNone {
		t.Errorf("previous target still dragging: %v", a.Drag)
	}
	if ended != 1 {
		t.Errorf("DragEnded published %d times, expected 1", ended)
	}

	c.Handle(Move(310, 250))
	if a.Direction != (geometry.Vector2D{X: 150, Y: 80}) {
		t.Errorf("stale target moved: %v", a.Direction)
	}
}

func TestController_PressOnButtonEndsDrag(t *testing.T) {
	c, sc, _ := newTestController()
	sc.AddDefault()

	handleAll(c, Press(600, 245), Press(100, 40))

	if c.State() != StateIdle || len(sc.Dragging()) != 0 {
		t.Errorf("State() = %v, dragging %d", c.State(), len(sc.Dragging()))
	}
	if sc.Len() != 2 {
		t.Errorf("scene has %d vectors, expected 2", sc.Len())
	}
}

func TestController_DragExclusivity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		c, sc, _ := newTestController()
		sc.AddDefault()
		if _, err := sc.AddFromTyped("-15", "8"); err != nil {
			t.Fatal(err)
		}

		// Bias positions towards the vectors so drags actually start.
		hotspots := []geometry.Vector2D{
			{X: 600, Y: 245}, {X: 525, Y: 285}, {X: 300, Y: 245}, {X: 375, Y: 285}, {X: 450, Y: 325},
		}

		for step := 0; step < 200; step++ {
			pos := hotspots[rng.IntN(len(hotspots))]
			pos = pos.Add(geometry.Vector2D{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10})

			var ev Event
			switch rng.IntN(4) {
			case 0:
				ev = Event{Kind: PointerDown, Pos: pos}
			case 1:
				ev = Event{Kind: PointerMove, Pos: pos}
			case 2:
				ev = Event{Kind: PointerUp, Pos: pos}
			default:
				ev = Char('1')
			}
			c.Handle(ev)

			dragging := sc.Dragging()
			if len(dragging) > 1 {
				t.Fatalf("run %d step %d: %d vectors dragging", run, step, len(dragging))
			}
			switch c.State() {
			case StateDraggingBody, StateDraggingTip:
				if len(dragging) != 1 || dragging[0] != c.Target() {
					t.Fatalf("run %d step %d: state %v but dragging %v", run, step, c.State(), dragging)
				}
			default:
				if len(dragging) != 0 {
					t.Fatalf("run %d step %d: state %v with %d dragging", run, step, c.State(), len(dragging))
				}
			}
		}
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateIdle:         "idle",
		StateDraggingBody: "dragging_body",
		StateDraggingTip:  "dragging_tip",
		StateTyping:       "typing",
	}
	for state, expected := range tests {
		if state.String() != expected {
			t.Errorf("String() = %q, want %q", state.String(), expected)
		}
	}
}
