// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	WorldGenerated    Type = "world_generated"
	GenerationRetried Type = "generation_retried"
	AsteroidDrilled   Type = "asteroid_drilled"
	AsteroidPushed    Type = "asteroid_pushed"
	JointCreated      Type = "joint_created"
	JointSnapped      Type = "joint_snapped"
	ToolSelected      Type = "tool_selected"
	PlayerWon         Type = "player_won"
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

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscription struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
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
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. A nil bus drops the
// event.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// WorldEvent describes a generation attempt.
type WorldEvent struct {
	BaseEvent
	Attempt   int
	Asteroids int
	HomeID    uint64
	Reason    string
}

// NewWorldEvent creates a WorldGenerated or GenerationRetried event.
func NewWorldEvent(eventType Type, source interface{}, attempt, asteroids int, homeID uint64, reason string) *WorldEvent {
	return &WorldEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Attempt:   attempt,
		Asteroids: asteroids,
		HomeID:    homeID,
		Reason:    reason,
	}
}

// AsteroidEvent contains information about a tool acting on an asteroid
type AsteroidEvent struct {
	BaseEvent
	AsteroidID uint64
	Resource   string
}

// NewAsteroidEvent creates a new asteroid event
func NewAsteroidEvent(eventType Type, source interface{}, asteroidID uint64, resource string) *AsteroidEvent {
	return &AsteroidEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		AsteroidID: asteroidID,
		Resource:   resource,
	}
}

// JointEvent contains information about joints being made or breaking
type JointEvent struct {
	BaseEvent
	JointID   uint64
	Kind      string
	AsteroidA uint64
	AsteroidB uint64
}

// NewJointEvent creates a new joint event
func NewJointEvent(eventType Type, source interface{}, jointID uint64, kind string, asteroidA, asteroidB uint64) *JointEvent {
	return &JointEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		JointID:   jointID,
		Kind:      kind,
		AsteroidA: asteroidA,
		AsteroidB: asteroidB,
	}
}

// ToolEvent is published when the active tool changes. Tool is empty when
// the tool is put away.
type ToolEvent struct {
	BaseEvent
	Tool string
}

// NewToolEvent creates a new tool event
func NewToolEvent(source interface{}, tool string) *ToolEvent {
	return &ToolEvent{
		BaseEvent: BaseEvent{
			EventType: ToolSelected,
			Source:    source,
		},
		Tool: tool,
	}
}
