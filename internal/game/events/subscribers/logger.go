package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("first_player", e.FirstPlayer).
			Int("bag_size", e.BagSize).
			Int("starting_tiles", e.StartingTiles)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Str("reason", e.Reason).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("choices", e.Choices)

	case *events.TurnEndedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Dur("process_time", e.ProcessedTime)

	case *events.ChoiceSubmittedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Stringer("choice_type", e.Choice.GetType()).
			Str("choice", e.Choice.Describe())

	case *events.ChoiceAppliedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Stringer("choice_type", e.Choice.GetType()).
			Str("choice", e.Choice.Describe()).
			Bool("captured", e.Captured)

	case *events.ChoiceRejectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("choice", e.Choice.Describe()).
			Str("reason", e.Reason)

	case *events.TilePlacedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("troop", string(e.Troop)).
			Str("site", e.Site.Notation())

	case *events.TileCapturedEvent:
		logEvent.
			Int("captured_by", e.CapturedBy).
			Int("owner", e.Owner).
			Str("troop", string(e.Troop)).
			Str("square", e.Position.Notation())

	case *events.DukeCheckedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("duke", e.Duke.Notation())

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
