package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events/subscribers"
)

func base(eventType string) events.BaseEvent {
	return events.BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      "test-game-1",
	}
}

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())

	// interested in everything by default
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	move := &core.MoveChoice{PlayerID: 0, Source: core.NewPosition(2, 1), Destination: core.NewPosition(2, 2)}

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name: "GameStartedEvent",
			event: &events.GameStartedEvent{
				BaseEvent:     base(events.TypeGameStarted),
				FirstPlayer:   0,
				BagSize:       16,
				StartingTiles: 3,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["first_player"])
				assert.Equal(t, float64(16), logLine["bag_size"])
				assert.Equal(t, float64(3), logLine["starting_tiles"])
			},
		},
		{
			name: "TurnStartedEvent",
			event: &events.TurnStartedEvent{
				BaseEvent: events.BaseEvent{
					EventType: events.TypeTurnStarted,
					Time:      time.Now(),
					Game:      "test-game-1",
					Ply:       5,
				},
				PlayerID: 1,
				Choices:  9,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, float64(1), logLine["player_id"])
				assert.Equal(t, float64(9), logLine["choices"])
			},
		},
		{
			name: "ChoiceAppliedEvent",
			event: &events.ChoiceAppliedEvent{
				BaseEvent: base(events.TypeChoiceApplied),
				PlayerID:  0,
				Choice:    move,
				Captured:  true,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "move", logLine["choice_type"])
				assert.Equal(t, move.Describe(), logLine["choice"])
				assert.Equal(t, true, logLine["captured"])
			},
		},
		{
			name: "TileCapturedEvent",
			event: &events.TileCapturedEvent{
				BaseEvent:  base(events.TypeTileCaptured),
				CapturedBy: 0,
				Owner:      1,
				Troop:      core.Footman,
				Position:   core.NewPosition(2, 2),
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["captured_by"])
				assert.Equal(t, float64(1), logLine["owner"])
				assert.Equal(t, "Footman", logLine["troop"])
				assert.Equal(t, "C3", logLine["square"])
			},
		},
		{
			name: "DukeCheckedEvent",
			event: &events.DukeCheckedEvent{
				BaseEvent: base(events.TypeDukeChecked),
				PlayerID:  1,
				Duke:      core.NewPosition(3, 5),
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["player_id"])
				assert.Equal(t, "D6", logLine["duke"])
			},
		},
		{
			name: "GameEndedEvent",
			event: &events.GameEndedEvent{
				BaseEvent: base(events.TypeGameEnded),
				Winner:    0,
				Reason:    "checkmate",
				Duration:  time.Minute * 5,
			},
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["winner"])
				assert.Equal(t, "checkmate", logLine["reason"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			err := json.Unmarshal([]byte(logOutput), &logLine)
			require.NoError(t, err, "Should be able to parse log output as JSON")

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("filtered-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.False(t, logSub.InterestedIn(events.TypeChoiceApplied))

	bus := events.NewEventBus(zerolog.Nop())
	bus.Subscribe(logSub)

	bus.Publish(events.NewTurnStartedEvent("game1", 1, 0, 3))
	assert.Empty(t, buf.String())

	bus.Publish(events.NewGameStartedEvent("game1", 0, 16, 3))
	assert.NotEmpty(t, buf.String())

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewGameStartedEvent("game1", 0, 16, 3))

			require.NotZero(t, buf.Len())
			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.InfoLevel)
	logSub.SetDevMode(true)

	event := events.NewTilePlacedEvent("dev-game", 0, "Knight", core.NewPosition(1, 0), 3)
	logSub.HandleEvent(event)

	logOutput := buf.String()
	require.NotEmpty(t, logOutput)
	assert.Contains(t, logOutput, "event_data")

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	eventDataStr := string(eventDataBytes)

	assert.Contains(t, eventDataStr, "tile.placed")
	assert.Contains(t, eventDataStr, "Knight")
}
