package states

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// SetupState covers board and bag preparation
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Game setup complete")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// AwaitingChoiceState waits for the player to move
type AwaitingChoiceState struct{}

func NewAwaitingChoiceState() State {
	return &AwaitingChoiceState{}
}

func (s *AwaitingChoiceState) Phase() GamePhase {
	return PhaseAwaitingChoice
}

func (s *AwaitingChoiceState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().
			Time("start_time", ctx.StartTime).
			Msg("Game started")
	}
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("player", ctx.CurrentPlayer).
		Msg("Awaiting choice")
	return nil
}

func (s *AwaitingChoiceState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AwaitingChoiceState) Validate(ctx *GameContext) error {
	if !core.IsValidPlayer(ctx.CurrentPlayer) {
		return fmt.Errorf("player to move %d: %w", ctx.CurrentPlayer, core.ErrInvalidPlayer)
	}
	return nil
}

// ValidatingState checks a submitted choice
type ValidatingState struct{}

func NewValidatingState() State {
	return &ValidatingState{}
}

func (s *ValidatingState) Phase() GamePhase {
	return PhaseValidating
}

func (s *ValidatingState) Enter(ctx *GameContext) error {
	return nil
}

func (s *ValidatingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ValidatingState) Validate(ctx *GameContext) error {
	return nil
}

// ApplyingState mutates the authoritative board
type ApplyingState struct{}

func NewApplyingState() State {
	return &ApplyingState{}
}

func (s *ApplyingState) Phase() GamePhase {
	return PhaseApplying
}

func (s *ApplyingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Int("player", ctx.CurrentPlayer).
		Msg("Applying choice")
	return nil
}

func (s *ApplyingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ApplyingState) Validate(ctx *GameContext) error {
	return nil
}

// RecomputingState rebuilds choice sets after a board change
type RecomputingState struct{}

func NewRecomputingState() State {
	return &RecomputingState{}
}

func (s *RecomputingState) Phase() GamePhase {
	return PhaseRecomputing
}

func (s *RecomputingState) Enter(ctx *GameContext) error {
	return nil
}

func (s *RecomputingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *RecomputingState) Validate(ctx *GameContext) error {
	return nil
}

// GameOverState represents a decided game
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() GamePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Str("reason", ctx.Reason.String()).
		Int("final_turn", ctx.Turn).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *GameOverState) Exit(ctx *GameContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *GameContext) error {
	if ctx.Reason == core.ReasonNone {
		return fmt.Errorf("game over state requires an end reason")
	}
	if ctx.Reason == core.ReasonDukeCaptured || ctx.Reason == core.ReasonCheckmate {
		if !core.IsValidPlayer(ctx.Winner) {
			return fmt.Errorf("%s requires a winner, got %d", ctx.Reason, ctx.Winner)
		}
	}
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Int("turn", ctx.Turn).
		Msg("Game entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
