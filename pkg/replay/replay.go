// Package replay drives a Session from a YAML input script without a window.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/input"
	"github.com/opd-ai/vecpad/pkg/logging"
)

var (
	// ErrBadStep is wrapped when a script step is empty, ambiguous or names an unknown key
	ErrBadStep = errors.New("invalid replay step")
	// ErrExpectation is wrapped when the final state differs from Script.Expect
	ErrExpectation = errors.New("replay expectation not met")
)

// Script is a named sequence of input steps with optional expectations
// about the state after the last one.
type Script struct {
	Name string `yaml:"name"`
	// InitialVectors overrides the session's start-up vector count
	InitialVectors *int         `yaml:"initialVectors,omitempty"`
	Steps          []Step       `yaml:"steps"`
	Expect         *Expectation `yaml:"expect,omitempty"`
}

// Drag moves the pointer from From to To in Steps equal moves while pressed
type Drag struct {
	From  geometry.Vector2D `yaml:"from"`
	To    geometry.Vector2D `yaml:"to"`
	Steps int               `yaml:"steps,omitempty"`
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Press   *geometry.Vector2D `yaml:"press,omitempty"`
	Move    *geometry.Vector2D `yaml:"move,omitempty"`
	Release *geometry.Vector2D `yaml:"release,omitempty"`
	Click   *geometry.Vector2D `yaml:"click,omitempty"`
	Drag    *Drag              `yaml:"drag,omitempty"`
	Type    *string            `yaml:"type,omitempty"`
	Key     string             `yaml:"key,omitempty"`
}

// Expectation describes the state a script should end in. Unset fields are
// not checked.
type Expectation struct {
	State    string   `yaml:"state,omitempty"`
	Vectors  *int     `yaml:"vectors,omitempty"`
	Rejected *int     `yaml:"rejected,omitempty"`
	Buffer   *string  `yaml:"buffer,omitempty"`
	Readout  []string `yaml:"readout,omitempty"`
}

// Result summarizes a finished replay
type Result struct {
	Name     string
	Steps    int
	Events   int
	Snapshot engine.Snapshot
}

// ParseKey maps a key name to an input.Key
func ParseKey(name string) (input.Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "enter", "return":
		return input.KeyEnter, nil
	case "backspace":
		return input.KeyBackspace, nil
	case "escape", "esc":
		return input.KeyEscape, nil
	default:
		return input.KeyOther, fmt.Errorf("%w: unknown key %q", ErrBadStep, name)
	}
}

// Events expands the step into input events
func (s Step) Events() ([]input.Event, error) {
	set := 0
	for _, ok := range []bool{
		s.Press != nil, s.Move != nil, s.Release != nil, s.Click != nil,
		s.Drag != nil, s.Type != nil, s.Key != "",
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: step sets %d actions, want 1", ErrBadStep, set)
	}

	switch {
	case s.Press != nil:
		return []input.Event{input.Press(s.Press.X, s.Press.Y)}, nil
	case s.Move != nil:
		return []input.Event{input.Move(s.Move.X, s.Move.Y)}, nil
	case s.Release != nil:
		return []input.Event{input.Release(s.Release.X, s.Release.Y)}, nil
	case s.Click != nil:
		return []input.Event{input.Press(s.Click.X, s.Click.Y), input.Release(s.Click.X, s.Click.Y)}, nil
	case s.Drag != nil:
		return s.Drag.events()
	case s.Type != nil:
		return input.Text(*s.Type), nil
	default:
		key, err := ParseKey(s.Key)
		if err != nil {
			return nil, err
		}
		return []input.Event{input.KeyPress(key)}, nil
	}
}

func (d *Drag) events() ([]input.Event, error) {
	steps := d.Steps
	if steps == 0 {
		steps = 1
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: drag steps %d must be positive", ErrBadStep, d.Steps)
	}

	events := make([]input.Event, 0, steps+2)
	events = append(events, input.Press(d.From.X, d.From.Y))
	delta := d.To.Sub(d.From)
	for i := 1; i <= steps; i++ {
		p := d.From.Add(delta.Scale(float64(i) / float64(steps)))
		events = append(events, input.Move(p.X, p.Y))
	}
	events = append(events, input.Release(d.To.X, d.To.Y))
	return events, nil
}

// Parse reads a YAML script
func Parse(r io.Reader) (*Script, error) {
	var script Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, logging.WrapError(err, "failed to parse replay script")
	}
	for i, step := range script.Steps {
		if _, err := step.Events(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &script, nil
}

// Load reads a YAML script from path
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, logging.WrapError(err, "failed to open replay script")
	}
	defer f.Close()
	return Parse(f)
}

// SessionOptions applies the script's overrides to base
func (s *Script) SessionOptions(base engine.Options) engine.Options {
	if s.InitialVectors != nil {
		base.InitialVectors = *s.InitialVectors
	}
	return base
}

// Runner replays scripts against sessions
type Runner struct {
	logger *logging.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{logger: logger}
}

// Run feeds each step through the session queue and processes it before
// the next, then checks the expectation. The returned result is valid even
// when the expectation fails.
func (r *Runner) Run(ctx context.Context, script *Script, session *engine.Session) (*Result, error) {
	result := &Result{Name: script.Name}
	ctx = logging.WithCorrelationID(ctx, session.ID)

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		events, err := step.Events()
		if err != nil {
			return result, fmt.Errorf("step %d: %w", i+1, err)
		}
		session.Enqueue(events...)
		result.Events += session.Process()
		result.Steps++
		r.logger.Debug(ctx, "replay step applied", "step", i+1, "events", len(events))
	}

	result.Snapshot = session.Snapshot()
	r.logger.Info(ctx, "replay finished",
		"script", script.Name,
		"steps", result.Steps,
		"events", result.Events,
		"vectors", len(result.Snapshot.Vectors),
	)

	if script.Expect != nil {
		if err := script.Expect.check(result.Snapshot); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (e *Expectation) check(snap engine.Snapshot) error {
	var problems []string
	if e.State != "" && e.State != snap.Mode {
		problems = append(problems, fmt.Sprintf("state %q, want %q", snap.Mode, e.State))
	}
	if e.Vectors != nil && *e.Vectors != len(snap.Vectors) {
		problems = append(problems, fmt.Sprintf("%d vectors, want %d", len(snap.Vectors), *e.Vectors))
	}
	if e.Rejected != nil && *e.Rejected != snap.Rejected {
		problems = append(problems, fmt.Sprintf("%d rejected entries, want %d", snap.Rejected, *e.Rejected))
	}
	if e.Buffer != nil && *e.Buffer != snap.Buffer {
		problems = append(problems, fmt.Sprintf("buffer %q, want %q", snap.Buffer, *e.Buffer))
	}
	if e.Readout != nil {
		got := make([]string, len(snap.Vectors))
		for i, v := range snap.Vectors {
			got[i] = v.Readout
		}
		if !slices.Equal(got, e.Readout) {
			problems = append(problems, fmt.Sprintf("readout %q, want %q", got, e.Readout))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrExpectation, strings.Join(problems, "; "))
	}
	return nil
}
