package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/states"
)

// TurnProcessor handles the orchestration of a single turn. Its methods
// expect the engine lock to be held.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessChoice runs one choice through Validating, Applying and
// Recomputing. Cancellation is honoured until the board is touched.
func (tp *TurnProcessor) ProcessChoice(ctx context.Context, choice core.Choice) (*TurnResult, error) {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return nil, err
	}

	if err := tp.validateGameState(); err != nil {
		return nil, err
	}

	if choice == nil {
		return nil, core.WrapGameStateError(tp.engine.gs.Turn, states.PhaseAwaitingChoice.String(), core.WrapChoiceError(nil, core.ErrInvalidChoice))
	}

	gs := tp.engine.gs
	turn := gs.Turn + 1
	turnLogger := tp.logger.With().Int("turn", turn).Int("player_id", choice.GetPlayerID()).Logger()
	turnLogger.Debug().Str("choice", choice.Describe()).Msg("Processing choice")

	tp.engine.eventBus.Publish(events.NewChoiceSubmittedEvent(tp.engine.gameID, choice, turn))

	if err := tp.transition(states.PhaseValidating, "choice submitted"); err != nil {
		return nil, err
	}

	if err := tp.validateChoice(choice, turnLogger); err != nil {
		return nil, err
	}

	if err := tp.checkContext(ctx, "before applying"); err != nil {
		if terr := tp.transition(states.PhaseAwaitingChoice, "cancelled"); terr != nil {
			return nil, terr
		}
		return nil, core.WrapGameStateError(gs.Turn, states.PhaseValidating.String(), fmt.Errorf("context cancelled: %w", err))
	}

	turnStartTime := time.Now()
	tp.publishTurnStarted(turn, choice.GetPlayerID())

	if err := tp.transition(states.PhaseApplying, "choice valid"); err != nil {
		return nil, err
	}

	result, over, err := tp.applyChoice(choice, turn, turnLogger)
	if err != nil {
		return nil, tp.fail(turn, choice.GetPlayerID(), "apply choice", err)
	}

	if err := tp.transition(states.PhaseRecomputing, "board updated"); err != nil {
		return nil, err
	}

	if err := tp.recomputePhase(result, over, turnLogger); err != nil {
		return nil, tp.fail(turn, choice.GetPlayerID(), "recompute", err)
	}

	tp.publishTurnEnded(turn, result.Choice.GetPlayerID(), turnStartTime)
	turnLogger.Debug().Msg("Choice processed")
	return result, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.Turn).
			Str("phase", phase).
			Msg("Choice processing cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive a choice
func (tp *TurnProcessor) validateGameState() error {
	currentPhase := tp.engine.stateMachine.CurrentPhase()
	if currentPhase == states.PhaseGameOver {
		tp.logger.Warn().
			Int("turn", tp.engine.gs.Turn).
			Msg("Attempted to submit a choice to a game that is already over")
		return core.WrapGameStateError(tp.engine.gs.Turn, currentPhase.String(), core.ErrGameOver)
	}

	if !currentPhase.CanReceiveActions() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Int("turn", tp.engine.gs.Turn).
			Msg("Attempted to submit a choice in phase that cannot receive actions")
		return fmt.Errorf("game is in %s phase and cannot receive choices", currentPhase)
	}
	return nil
}

// validateChoice checks the choice against the mover's current set. A
// rejection returns the machine to AwaitingChoice.
func (tp *TurnProcessor) validateChoice(choice core.Choice, turnLogger zerolog.Logger) error {
	gs := tp.engine.gs
	err := choice.Validate(gs.Choices[gs.CurrentPlayer])
	if err == nil {
		return nil
	}

	wrapped := core.WrapChoiceError(choice, err)
	turnLogger.Debug().Err(wrapped).Msg("Choice rejected")
	tp.engine.eventBus.Publish(events.NewChoiceRejectedEvent(tp.engine.gameID, choice, err.Error(), gs.Turn+1))

	if terr := tp.transition(states.PhaseAwaitingChoice, "choice rejected"); terr != nil {
		return terr
	}
	return wrapped
}

// applyChoice draws for placements, applies the choice to a copy of the
// board and commits it
func (tp *TurnProcessor) applyChoice(choice core.Choice, turn int, turnLogger zerolog.Logger) (*TurnResult, *core.GameOverInfo, error) {
	e := tp.engine
	gs := e.gs
	playerID := choice.GetPlayerID()

	applied := choice
	if place, ok := choice.(*core.PlaceChoice); ok {
		troop, err := e.tiles.Draw(playerID)
		if err != nil {
			return nil, nil, core.WrapPlayerError(playerID, "draw", err)
		}
		applied = &core.PlaceChoice{PlayerID: playerID, Site: place.Site, Troop: troop}
	}

	next, capture, over, err := e.calc.ApplyChoice(gs.Board, applied)
	if err != nil {
		return nil, nil, err
	}

	gs.Board = next
	gs.Turn = turn
	e.stateMachine.GetContext().Turn = turn
	gs.History = append(gs.History, Ply{Turn: turn, PlayerID: playerID, Choice: applied, Capture: capture})

	_, placed := applied.(*core.PlaceChoice)
	if placed || capture != nil {
		gs.QuietPlies = 0
	} else {
		gs.QuietPlies++
	}

	if place, ok := applied.(*core.PlaceChoice); ok {
		e.eventBus.Publish(events.NewTilePlacedEvent(e.gameID, playerID, place.Troop, place.Site, turn))
	}
	if capture != nil {
		gs.Captured[playerID] = append(gs.Captured[playerID], capture.Tile)
		e.eventBus.Publish(events.NewTileCapturedEvent(e.gameID, *capture, turn))
		turnLogger.Info().
			Str("troop", string(capture.Tile.Type)).
			Str("square", capture.Position.Notation()).
			Msg("Tile captured")
	}
	e.eventBus.Publish(events.NewChoiceAppliedEvent(e.gameID, applied, capture != nil, turn))

	return &TurnResult{
		Turn:       turn,
		Choice:     applied,
		Capture:    capture,
		NextPlayer: core.Opponent(playerID),
	}, over, nil
}

// recomputePhase rebuilds choice sets and either hands the turn over or ends
// the game
func (tp *TurnProcessor) recomputePhase(result *TurnResult, over *core.GameOverInfo, turnLogger zerolog.Logger) error {
	e := tp.engine
	gs := e.gs
	mover := result.Choice.GetPlayerID()
	next := core.Opponent(mover)

	if over == nil {
		if err := e.recompute(); err != nil {
			return err
		}
		result.Check = gs.InCheck[next]
		if result.Check {
			duke, _ := gs.Board.DukeOf(next)
			e.eventBus.Publish(events.NewDukeCheckedEvent(e.gameID, next, duke, result.Turn))
			turnLogger.Debug().Int("checked_player", next).Msg("Duke in check")
		}
		over = e.checkGameOver(mover)
	}

	if over != nil {
		result.GameOver = over
		result.NextPlayer = -1
		gameContext := e.stateMachine.GetContext()
		gameContext.SetOutcome(*over)
		if err := tp.transition(states.PhaseGameOver, over.String()); err != nil {
			return err
		}
		e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, *over, gameContext.GetElapsedTime(), result.Turn))
		return nil
	}

	gs.CurrentPlayer = next
	e.stateMachine.GetContext().CurrentPlayer = next
	return tp.transition(states.PhaseAwaitingChoice, "next player")
}

// transition moves the state machine and wraps failures with turn context
func (tp *TurnProcessor) transition(phase states.GamePhase, reason string) error {
	from := tp.engine.stateMachine.CurrentPhase()
	if err := tp.engine.stateMachine.TransitionTo(phase, reason); err != nil {
		return core.WrapGameStateError(tp.engine.gs.Turn, from.String(), err)
	}
	return nil
}

// fail parks the machine in PhaseError after a broken invariant. The
// returned error unwraps to a *core.GameError naming the failed operation.
func (tp *TurnProcessor) fail(turn, playerID int, operation string, err error) error {
	phase := tp.engine.stateMachine.CurrentPhase()
	gameErr := core.NewGameError(turn, playerID, operation, err)
	wrapped := core.WrapGameStateError(tp.engine.gs.Turn, phase.String(), gameErr)

	tp.logger.Error().
		Err(err).
		Int("turn", turn).
		Int("player_id", playerID).
		Str("operation", operation).
		Str("phase", phase.String()).
		Msg("Choice processing failed, game halted")

	if ferr := tp.engine.stateMachine.Fail(wrapped); ferr != nil {
		tp.logger.Error().Err(ferr).Msg("Could not enter error state")
	}
	return wrapped
}

func (tp *TurnProcessor) publishTurnStarted(turn, playerID int) {
	choices := 0
	if cs := tp.engine.gs.Choices[playerID]; cs != nil {
		choices = cs.Count()
	}
	tp.engine.eventBus.Publish(events.NewTurnStartedEvent(tp.engine.gameID, turn, playerID, choices))
}

func (tp *TurnProcessor) publishTurnEnded(turn, playerID int, startTime time.Time) {
	tp.engine.eventBus.Publish(events.NewTurnEndedEvent(
		tp.engine.gameID,
		turn,
		playerID,
		time.Since(startTime),
	))
}
