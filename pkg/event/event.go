// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Editor event types
const (
	VectorAdded    Type = "vector_added"
	DragStarted    Type = "drag_started"
	DragEnded      Type = "drag_ended"
	TypingStarted  Type = "typing_started"
	EntrySubmitted Type = "entry_submitted"
	EntryRejected  Type = "entry_rejected"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run
// synchronously on the caller's goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// VectorEvent carries the vector an interaction touched
type VectorEvent struct {
	BaseEvent
	VectorID uint64
	// Part is "body" or "tip" for drag events, empty otherwise
	Part string
}

// NewVectorEvent creates a new vector event
func NewVectorEvent(eventType Type, source interface{}, vectorID uint64, part string) *VectorEvent {
	return &VectorEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VectorID: vectorID,
		Part:     part,
	}
}

// EntryEvent carries a typed entry and, for rejections, the reason
type EntryEvent struct {
	BaseEvent
	Input string
	Err   error
}

// NewEntryEvent creates a new entry event
func NewEntryEvent(eventType Type, source interface{}, input string, err error) *EntryEvent {
	return &EntryEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Input: input,
		Err:   err,
	}
}
