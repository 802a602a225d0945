package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// CurrentPlayer is the player to move
	CurrentPlayer int

	// Turn counts applied choices, starting at 1 for the first one
	Turn int

	// StartTime is when the first choice was awaited
	StartTime time.Time

	// Winner is the player ID of the winner, -1 for none or a draw
	Winner int

	// Reason is set once the game is decided
	Reason core.EndReason

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: -1,
	}
}

// SetOutcome records the final result
func (gc *GameContext) SetOutcome(info core.GameOverInfo) {
	gc.Winner = info.Winner
	gc.Reason = info.Reason
}

// Outcome returns the recorded result, or nil while the game is undecided
func (gc *GameContext) Outcome() *core.GameOverInfo {
	if gc.Reason == core.ReasonNone {
		return nil
	}
	return &core.GameOverInfo{Winner: gc.Winner, Reason: gc.Reason}
}

// GetElapsedTime returns the time elapsed since the first turn started
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}
