package events

import (
	"time"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTurnEnded       = "turn.ended"
	TypeChoiceSubmitted = "choice.submitted"
	TypeChoiceApplied   = "choice.applied"
	TypeChoiceRejected  = "choice.rejected"
	TypeTilePlaced      = "tile.placed"
	TypeTileCaptured    = "tile.captured"
	TypeDukeChecked     = "duke.checked"
	TypeStateTransition = "state.transition"
)

func newBase(eventType, gameID string, turn int) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
		Ply:       turn,
	}
}

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	FirstPlayer   int
	BagSize       int
	StartingTiles int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, firstPlayer, bagSize, startingTiles int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:     newBase(TypeGameStarted, gameID, 0),
		FirstPlayer:   firstPlayer,
		BagSize:       bagSize,
		StartingTiles: startingTiles,
	}
}

// GameEndedEvent is published when a game ends. Winner is -1 for a draw.
type GameEndedEvent struct {
	BaseEvent
	Winner   int
	Reason   string
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, outcome core.GameOverInfo, duration time.Duration, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, finalTurn),
		Winner:    outcome.Winner,
		Reason:    outcome.Reason.String(),
		Duration:  duration,
	}
}

// TurnStartedEvent is published at the beginning of each turn
type TurnStartedEvent struct {
	BaseEvent
	PlayerID int
	Choices  int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, playerID, choices int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID, turn),
		PlayerID:  playerID,
		Choices:   choices,
	}
}

// TurnEndedEvent is published at the end of each turn
type TurnEndedEvent struct {
	BaseEvent
	PlayerID      int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, playerID int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID, turn),
		PlayerID:      playerID,
		ProcessedTime: processedTime,
	}
}

// ChoiceSubmittedEvent is published when a player submits a choice
type ChoiceSubmittedEvent struct {
	BaseEvent
	PlayerID int
	Choice   core.Choice
}

// NewChoiceSubmittedEvent creates a new ChoiceSubmittedEvent
func NewChoiceSubmittedEvent(gameID string, choice core.Choice, turn int) *ChoiceSubmittedEvent {
	return &ChoiceSubmittedEvent{
		BaseEvent: newBase(TypeChoiceSubmitted, gameID, turn),
		PlayerID:  choice.GetPlayerID(),
		Choice:    choice,
	}
}

// ChoiceAppliedEvent is published after a choice has changed the board
type ChoiceAppliedEvent struct {
	BaseEvent
	PlayerID int
	Choice   core.Choice
	Captured bool
}

// NewChoiceAppliedEvent creates a new ChoiceAppliedEvent
func NewChoiceAppliedEvent(gameID string, choice core.Choice, captured bool, turn int) *ChoiceAppliedEvent {
	return &ChoiceAppliedEvent{
		BaseEvent: newBase(TypeChoiceApplied, gameID, turn),
		PlayerID:  choice.GetPlayerID(),
		Choice:    choice,
		Captured:  captured,
	}
}

// ChoiceRejectedEvent is published when a submitted choice fails validation
type ChoiceRejectedEvent struct {
	BaseEvent
	PlayerID int
	Choice   core.Choice
	Reason   string
}

// NewChoiceRejectedEvent creates a new ChoiceRejectedEvent
func NewChoiceRejectedEvent(gameID string, choice core.Choice, reason string, turn int) *ChoiceRejectedEvent {
	return &ChoiceRejectedEvent{
		BaseEvent: newBase(TypeChoiceRejected, gameID, turn),
		PlayerID:  choice.GetPlayerID(),
		Choice:    choice,
		Reason:    reason,
	}
}

// TilePlacedEvent is published when a tile drawn from the bag enters the board
type TilePlacedEvent struct {
	BaseEvent
	PlayerID int
	Troop    core.TroopType
	Site     core.Position
}

// NewTilePlacedEvent creates a new TilePlacedEvent
func NewTilePlacedEvent(gameID string, playerID int, troop core.TroopType, site core.Position, turn int) *TilePlacedEvent {
	return &TilePlacedEvent{
		BaseEvent: newBase(TypeTilePlaced, gameID, turn),
		PlayerID:  playerID,
		Troop:     troop,
		Site:      site,
	}
}

// TileCapturedEvent is published when a tile leaves the board
type TileCapturedEvent struct {
	BaseEvent
	CapturedBy int
	Owner      int
	Troop      core.TroopType
	Position   core.Position
}

// NewTileCapturedEvent creates a new TileCapturedEvent
func NewTileCapturedEvent(gameID string, info core.CaptureInfo, turn int) *TileCapturedEvent {
	return &TileCapturedEvent{
		BaseEvent:  newBase(TypeTileCaptured, gameID, turn),
		CapturedBy: info.CapturedBy,
		Owner:      info.Tile.Owner,
		Troop:      info.Tile.Type,
		Position:   info.Position,
	}
}

// DukeCheckedEvent is published when a choice leaves the opponent's Duke attacked
type DukeCheckedEvent struct {
	BaseEvent
	PlayerID int
	Duke     core.Position
}

// NewDukeCheckedEvent creates a new DukeCheckedEvent. playerID owns the
// threatened Duke.
func NewDukeCheckedEvent(gameID string, playerID int, duke core.Position, turn int) *DukeCheckedEvent {
	return &DukeCheckedEvent{
		BaseEvent: newBase(TypeDukeChecked, gameID, turn),
		PlayerID:  playerID,
		Duke:      duke,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string, turn int) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, turn),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
