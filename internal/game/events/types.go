package events

import (
	"time"
)

// Event is something that happened in one game
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
	// Turn is the number of choices applied when the event fired. Events
	// about a choice carry that choice's turn.
	Turn() int
}

// BaseEvent carries the fields every game event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
	Ply       int       `json:"turn"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }
func (e BaseEvent) Turn() int            { return e.Ply }

// EventHandler receives events of the type it was registered for
type EventHandler func(Event)

// Subscriber receives every event it declares interest in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the side of the bus the engine and state machine see
type Publisher interface {
	Publish(Event)
}

// Bus is the side of the bus callers see. Unsubscribe accepts both
// subscriber IDs and the handler IDs returned by SubscribeFunc.
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(id string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
