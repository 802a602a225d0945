package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/rules"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/states"
)

// GameConfig holds everything needed to start a game. Zero values pick the
// defaults: the built-in catalog, a seeded bag built from it, the standard
// setup and a random game ID.
type GameConfig struct {
	Logger     zerolog.Logger
	Catalog    *catalog.Catalog
	TileSource TileSource
	// Board replaces the standard setup. It is cloned, never retained.
	Board       *core.Board
	FirstPlayer int
	GameID      string
	// Seed drives the default bag. Zero picks one from the clock.
	Seed uint64

	DrawPlyLimit      int
	DeadPositionCheck bool
	FlipOnPlace       bool
	PullSafety        bool

	// EventBus lets callers subscribe before the game.started event fires
	EventBus *events.EventBus
	// LogEvents attaches a logger subscriber to the event bus
	LogEvents bool
	// ColorRender turns on ANSI colours in Render
	ColorRender bool
}

// TurnResult describes one applied choice
type TurnResult struct {
	Turn       int
	Choice     core.Choice
	Capture    *core.CaptureInfo
	Check      bool
	GameOver   *core.GameOverInfo
	NextPlayer int
}

// Engine drives a two-player game on an authoritative board. Only one
// choice is processed at a time; reads may run concurrently.
type Engine struct {
	mu sync.RWMutex

	gs           *GameState
	calc         *rules.ChoiceCalculator
	winCondition *rules.WinConditionChecker
	tiles        TileSource
	eventBus     *events.EventBus
	stateMachine *states.StateMachine
	gameID       string
	colorRender  bool

	logger        zerolog.Logger
	turnProcessor *TurnProcessor
}

// NewEngine creates a game ready for the first player's choice
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Submit validates and applies a choice for the player to move. A rejected
// choice leaves the game untouched and returns an error wrapping
// core.ErrInvalidChoice.
func (e *Engine) Submit(ctx context.Context, choice core.Choice) (*TurnResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turnProcessor.ProcessChoice(ctx, choice)
}

// Board returns a snapshot of the authoritative board
func (e *Engine) Board() *core.Board {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.Board.Clone()
}

// CurrentPlayer is the player whose choice is awaited
func (e *Engine) CurrentPlayer() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.CurrentPlayer
}

// Turn is the number of choices applied so far
func (e *Engine) Turn() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.Turn
}

// GameID identifies this game in logs and events
func (e *Engine) GameID() string { return e.gameID }

// Events exposes the bus so callers can subscribe. Handlers run
// synchronously while a choice is being processed and must not call back
// into the Engine.
func (e *Engine) Events() events.Bus { return e.eventBus }

// Choices returns the current choice set of playerID. The set is shared
// with the engine and must not be modified.
func (e *Engine) Choices(playerID int) (*core.ChoiceSet, error) {
	if !core.IsValidPlayer(playerID) {
		return nil, core.WrapPlayerError(playerID, "choices", core.ErrInvalidPlayer)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stateMachine.CurrentPhase() == states.PhaseGameOver {
		return nil, core.WrapGameStateError(e.gs.Turn, states.PhaseGameOver.String(), core.ErrGameOver)
	}
	return e.gs.Choices[playerID], nil
}

// InCheck reports whether playerID's Duke is attacked on the current board
func (e *Engine) InCheck(playerID int) bool {
	if !core.IsValidPlayer(playerID) {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.InCheck[playerID]
}

// Captured lists the tiles playerID has taken, in capture order
func (e *Engine) Captured(playerID int) []core.Tile {
	if !core.IsValidPlayer(playerID) {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]core.Tile(nil), e.gs.Captured[playerID]...)
}

// History lists every applied choice in order
func (e *Engine) History() []Ply {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Ply(nil), e.gs.History...)
}

// Remaining is how many tiles playerID still has in the bag
func (e *Engine) Remaining(playerID int) int {
	if !core.IsValidPlayer(playerID) {
		return 0
	}
	return e.tiles.Remaining(playerID)
}

// Phase is the state machine's current phase
func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

func (e *Engine) IsGameOver() bool {
	return e.stateMachine.CurrentPhase() == states.PhaseGameOver
}

// Outcome returns the result, or nil while the game goes on
func (e *Engine) Outcome() *core.GameOverInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateMachine.GetContext().Outcome()
}

// Snapshot returns a copy of the full game state
func (e *Engine) Snapshot() *GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs.Clone()
}

// recompute rebuilds both choice sets and check flags from the board.
// Callers hold e.mu.
func (e *Engine) recompute() error {
	for playerID := 0; playerID < 2; playerID++ {
		canPull := e.tiles.Remaining(playerID) > 0
		cs, err := e.calc.ComputeChoices(e.gs.Board, playerID, canPull)
		if err != nil {
			return core.WrapPlayerError(playerID, "compute choices", err)
		}
		inCheck, err := e.calc.InCheck(e.gs.Board, playerID)
		if err != nil {
			return core.WrapPlayerError(playerID, "check test", err)
		}
		e.gs.Choices[playerID] = cs
		e.gs.InCheck[playerID] = inCheck
	}
	return nil
}

// checkGameOver evaluates the terminal conditions after mover's ply
func (e *Engine) checkGameOver(mover int) *core.GameOverInfo {
	next := core.Opponent(mover)
	return e.winCondition.CheckGameOver(rules.GameSnapshot{
		Board:           e.gs.Board,
		Mover:           mover,
		OpponentChoices: e.gs.Choices[next],
		OpponentInCheck: e.gs.InCheck[next],
		QuietPlies:      e.gs.QuietPlies,
		BagRemaining:    [2]int{e.tiles.Remaining(0), e.tiles.Remaining(1)},
	})
}
