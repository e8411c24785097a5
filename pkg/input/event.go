// Package input turns pointer and keyboard events into scene mutations.
package input

import (
	"fmt"

	"github.com/opd-ai/vecpad/pkg/geometry"
)

// Kind identifies an input event
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	KeyDown
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer_down"
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	case KeyDown:
		return "key_down"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key names the non-character keys the controller cares about. KeyNone
// means the event carries a character in Event.Char.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyOther
)

// String implements fmt.Stringer
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	default:
		return "other"
	}
}

// Event is a backend-neutral input event. Pos is in screen space and only
// meaningful for pointer kinds.
type Event struct {
	Kind Kind
	Pos  geometry.Vector2D
	Key  Key
	Char rune
}

// Press builds a pointer-down event
func Press(x, y float64) Event {
	return Event{Kind: PointerDown, Pos: geometry.Vector2D{X: x, Y: y}}
}

// Move builds a pointer-move event
func Move(x, y float64) Event {
	return Event{Kind: PointerMove, Pos: geometry.Vector2D{X: x, Y: y}}
}

// Release builds a pointer-up event
func Release(x, y float64) Event {
	return Event{Kind: PointerUp, Pos: geometry.Vector2D{X: x, Y: y}}
}

// KeyPress builds a key-down event for a named key
func KeyPress(k Key) Event {
	return Event{Kind: KeyDown, Key: k}
}

// Char builds a key-down event carrying a typed character
func Char(r rune) Event {
	return Event{Kind: KeyDown, Key: KeyNone, Char: r}
}

// Text expands s into one Char event per rune
func Text(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}
	return events
}
