// pkg/engine/session.go
package engine

import (
	"context"
	"image/color"
	"sync"
	"time"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/event"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/input"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/render"
	"github.com/opd-ai/vecpad/pkg/scene"
)

// Options configures a Session. Zero values fall back to the stock settings.
type Options struct {
	Scene scene.Options
	// Layout overrides the control positions derived from the canvas size
	Layout *input.Layout
	Style  entity.ArrowStyle
	Theme  *render.Theme
	// InitialVectors are added with AddDefault before the first frame
	InitialVectors int
	Logger         *logging.Logger
	Bus            *event.Bus
}

// Session owns one editor: scene, controller and renderer. Backends feed
// it events from any goroutine with Enqueue and call Tick once per frame;
// all scene access happens under the session lock.
type Session struct {
	ID string

	mu         sync.Mutex
	queue      []input.Event
	scene      *scene.Scene
	controller *input.Controller
	renderer   *render.Renderer
	bus        *event.Bus
	logger     *logging.Logger
	ctx        context.Context

	frame     uint64
	added     int
	rejected  int
	startTime time.Time
}

// NewSession creates a session and adds the initial vectors
func NewSession(opts Options) *Session {
	ctx := logging.WithCorrelationID(context.Background(), "")

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewEventBus()
	}
	style := opts.Style
	if style == (entity.ArrowStyle{}) {
		style = entity.DefaultArrowStyle
	}
	theme := render.DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	sc := scene.New(opts.Scene)
	sopts := sc.Options()
	layout := input.DefaultLayout(sopts.Width, sopts.Height)
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	s := &Session{
		ID:         logging.GetCorrelationID(ctx),
		scene:      sc,
		controller: input.NewController(ctx, sc, layout, bus, logger),
		renderer:   render.NewRenderer(style, theme),
		bus:        bus,
		logger:     logger,
		ctx:        ctx,
		startTime:  time.Now(),
	}
	s.registerEventHandlers()

	for i := 0; i < opts.InitialVectors; i++ {
		v := sc.AddDefault()
		s.bus.Publish(event.NewVectorEvent(event.VectorAdded, s, uint64(v.ID), ""))
	}

	logger.Info(ctx, "session started",
		"width", sopts.Width,
		"height", sopts.Height,
		"initial_vectors", opts.InitialVectors,
	)
	return s
}

// registerEventHandlers keeps the session counters current
func (s *Session) registerEventHandlers() {
	s.bus.Subscribe(event.VectorAdded, func(event.Event) { s.added++ })
	s.bus.Subscribe(event.EntryRejected, s.handleEntryRejected)
}

func (s *Session) handleEntryRejected(e event.Event) {
	ev, ok := e.(*event.EntryEvent)
	if !ok {
		return
	}
	s.rejected++
	s.logger.Info(s.ctx, "typed entry discarded", "entry", ev.Input, "reason", ev.Err.Error())
}

// Context returns the session context, carrying its correlation ID
func (s *Session) Context() context.Context {
	return s.ctx
}

// Bus returns the event bus notifications are published on. Handlers run
// with the session lock held and must not call back into the Session.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Enqueue queues events for the next Process. Safe for concurrent use.
func (s *Session) Enqueue(events ...input.Event) {
	s.mu.Lock()
	s.queue = append(s.queue, events...)
	s.mu.Unlock()
}

// Pending returns the number of queued events
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Process drains the queue into the controller in arrival order and returns
// how many events were handled.
func (s *Session) Process() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.queue
	s.queue = nil
	for _, ev := range events {
		s.controller.Handle(ev)
	}
	return len(events)
}

// Render draws the current state onto surface
func (s *Session) Render(surface entity.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderer.Draw(surface, s.scene, s.controller)
	s.frame++
}

// Tick processes pending events, then redraws
func (s *Session) Tick(surface entity.Surface) {
	s.Process()
	s.Render(surface)
}

// Run ticks at the given rate until ctx is done. Backends that own their
// own loop call Tick directly instead.
func (s *Session) Run(ctx context.Context, surface entity.Surface, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(s.ctx, "session stopped", "frames", s.Frame(), "uptime", time.Since(s.startTime).String())
			return ctx.Err()
		case <-ticker.C:
			s.Tick(surface)
		}
	}
}

// Size returns the canvas dimensions
func (s *Session) Size() (width, height float64) {
	opts := s.scene.Options()
	return opts.Width, opts.Height
}

// Frame returns the number of rendered frames
func (s *Session) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// VectorState is a copy of one vector's observable state
type VectorState struct {
	ID        entity.ID         `json:"id" yaml:"id"`
	Origin    geometry.Vector2D `json:"origin" yaml:"origin"`
	Direction geometry.Vector2D `json:"direction" yaml:"direction"`
	Color     color.RGBA        `json:"-" yaml:"-"`
	Drag      entity.DragState  `json:"-" yaml:"-"`
	Readout   string            `json:"readout" yaml:"readout"`
}

// Snapshot is a consistent copy of the session state
type Snapshot struct {
	Frame    uint64        `json:"frame" yaml:"frame"`
	State    input.State   `json:"-" yaml:"-"`
	Mode     string        `json:"state" yaml:"state"`
	Buffer   string        `json:"buffer" yaml:"buffer"`
	Added    int           `json:"added" yaml:"added"`
	Rejected int           `json:"rejected" yaml:"rejected"`
	Vectors  []VectorState `json:"vectors" yaml:"vectors"`
}

// Snapshot copies the current state under the session lock
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	readout := s.scene.Readout()
	vectors := s.scene.Vectors()
	states := make([]VectorState, len(vectors))
	for i, v := range vectors {
		states[i] = VectorState{
			ID:        v.ID,
			Origin:    v.Origin,
			Direction: v.Direction,
			Color:     v.Color,
			Drag:      v.Drag,
			Readout:   readout[i].String(),
		}
	}

	return Snapshot{
		Frame:    s.frame,
		State:    s.controller.State(),
		Mode:     s.controller.State().String(),
		Buffer:   s.controller.Buffer(),
		Added:    s.added,
		Rejected: s.rejected,
		Vectors:  states,
	}
}
