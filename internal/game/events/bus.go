package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

type funcHandler struct {
	id      string
	handler EventHandler
}

// EventBus delivers events synchronously, subscribers first and then
// function handlers, each group in registration order. Handlers may
// subscribe or unsubscribe while an event is being delivered; the change
// takes effect from the next Publish.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers map[string][]funcHandler
	funcSeq      map[string]int
	logger       zerolog.Logger
}

// NewEventBus creates an empty bus that logs through logger
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]funcHandler),
		funcSeq:      make(map[string]int),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds subscriber, replacing any subscriber with the same ID
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := subscriber.ID()
	replaced := false
	for i, existing := range eb.subscribers {
		if existing.ID() == id {
			eb.subscribers[i] = subscriber
			replaced = true
			break
		}
	}
	if !replaced {
		eb.subscribers = append(eb.subscribers, subscriber)
	}

	eb.logger.Debug().
		Str("subscriber_id", id).
		Bool("replaced", replaced).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes the subscriber or function handler registered under id
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, subscriber := range eb.subscribers {
		if subscriber.ID() == id {
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed from event bus")
			return
		}
	}

	for eventType, handlers := range eb.funcHandlers {
		for i, h := range handlers {
			if h.id == id {
				eb.funcHandlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
				eb.logger.Debug().Str("handler_id", id).Msg("Function handler removed from event bus")
				return
			}
		}
	}
}

// SubscribeFunc registers handler for one event type and returns its ID.
// IDs are never reused on the same bus.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcSeq[eventType]++
	handlerID := eventType + "_func_" + strconv.Itoa(eb.funcSeq[eventType])
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: handlerID, handler: handler})

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// Publish delivers event to everything registered when it was called. A
// panicking handler is logged and does not stop delivery to the rest.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subscribers := append([]Subscriber(nil), eb.subscribers...)
	handlers := append([]funcHandler(nil), eb.funcHandlers[eventType]...)
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Msg("Publishing event")

	for _, subscriber := range subscribers {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(subscriber.ID(), event, subscriber.HandleEvent)
	}
	for _, h := range handlers {
		eb.deliver(h.id, event, h.handler)
	}
}

func (eb *EventBus) deliver(id string, event Event, handle EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", id).
				Str("event_type", event.Type()).
				Int("turn", event.Turn()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	handle(event)
}

// GetSubscriberCount returns the number of subscribers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for eventType
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
