package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidChoice      = errors.New("choice is not in the current choice set")
	ErrOccupancyViolation = errors.New("square occupancy violation")
	ErrEmptySquare        = errors.New("no tile on square")
	ErrNotOwned           = errors.New("tile not owned by player")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrBagEmpty           = errors.New("no tiles left in bag")
)

// WrapChoiceError adds the acting player and the choice to err
func WrapChoiceError(choice Choice, err error) error {
	if err == nil {
		return nil
	}
	if choice == nil {
		return fmt.Errorf("player action: %w", err)
	}
	return fmt.Errorf("player %d: %s: %w", choice.GetPlayerID(), choice.Describe(), err)
}

// WrapGameStateError adds turn and phase context to err
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds player and operation context to err
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError is a structured error carrying the turn, player and operation
// that failed.
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

// NewGameError creates a GameError. A negative playerID means no player is involved.
func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{Turn: turn, PlayerID: playerID, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.PlayerID < 0 {
		return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }
