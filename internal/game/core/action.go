package core

import "fmt"

// ChoiceType represents the kind of choice a player makes on their turn
type ChoiceType int

const (
	ChoicePlace ChoiceType = iota
	ChoiceMove
	ChoiceStrike
	ChoiceCommand
)

func (t ChoiceType) String() string {
	switch t {
	case ChoicePlace:
		return "place"
	case ChoiceMove:
		return "move"
	case ChoiceStrike:
		return "strike"
	case ChoiceCommand:
		return "command"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Choice is one thing a player does on their turn
type Choice interface {
	GetPlayerID() int
	GetType() ChoiceType
	// Validate checks that the choice is offered by cs
	Validate(cs *ChoiceSet) error
	// Describe renders the choice for logs and errors, e.g. "move from (1,1) to (1,2)"
	Describe() string
}

// PlaceChoice puts a tile drawn from the bag onto a pull site.
// Troop is filled in once the tile has been drawn.
type PlaceChoice struct {
	PlayerID int
	Site     Position
	Troop    TroopType
}

func (c *PlaceChoice) GetPlayerID() int    { return c.PlayerID }
func (c *PlaceChoice) GetType() ChoiceType { return ChoicePlace }
func (c *PlaceChoice) Describe() string    { return fmt.Sprintf("place at %s", c.Site) }

func (c *PlaceChoice) Validate(cs *ChoiceSet) error {
	if err := checkPlayer(c.PlayerID, cs); err != nil {
		return err
	}
	if !ContainsPosition(cs.Pull, c.Site) {
		return ErrInvalidChoice
	}
	return nil
}

// MoveChoice relocates a tile, capturing any enemy on the destination
type MoveChoice struct {
	PlayerID    int
	Source      Position
	Destination Position
}

func (c *MoveChoice) GetPlayerID() int    { return c.PlayerID }
func (c *MoveChoice) GetType() ChoiceType { return ChoiceMove }
func (c *MoveChoice) Describe() string {
	return fmt.Sprintf("move from %s to %s", c.Source, c.Destination)
}

func (c *MoveChoice) Validate(cs *ChoiceSet) error {
	if err := checkPlayer(c.PlayerID, cs); err != nil {
		return err
	}
	actions, ok := cs.Act[c.Source]
	if !ok || !ContainsPosition(actions.Moves, c.Destination) {
		return ErrInvalidChoice
	}
	return nil
}

// StrikeChoice captures an enemy tile without moving the striker
type StrikeChoice struct {
	PlayerID int
	Source   Position
	Target   Position
}

func (c *StrikeChoice) GetPlayerID() int    { return c.PlayerID }
func (c *StrikeChoice) GetType() ChoiceType { return ChoiceStrike }
func (c *StrikeChoice) Describe() string {
	return fmt.Sprintf("strike from %s at %s", c.Source, c.Target)
}

func (c *StrikeChoice) Validate(cs *ChoiceSet) error {
	if err := checkPlayer(c.PlayerID, cs); err != nil {
		return err
	}
	actions, ok := cs.Act[c.Source]
	if !ok || !ContainsPosition(actions.Strikes, c.Target) {
		return ErrInvalidChoice
	}
	return nil
}

// CommandChoice has the commander relocate a teammate. The commander stays put.
type CommandChoice struct {
	PlayerID    int
	Commander   Position
	Teammate    Position
	Destination Position
}

func (c *CommandChoice) GetPlayerID() int    { return c.PlayerID }
func (c *CommandChoice) GetType() ChoiceType { return ChoiceCommand }
func (c *CommandChoice) Describe() string {
	return fmt.Sprintf("command %s from %s to %s", c.Commander, c.Teammate, c.Destination)
}

func (c *CommandChoice) Validate(cs *ChoiceSet) error {
	if err := checkPlayer(c.PlayerID, cs); err != nil {
		return err
	}
	actions, ok := cs.Act[c.Commander]
	if !ok {
		return ErrInvalidChoice
	}
	dests, ok := actions.Commands[c.Teammate]
	if !ok || !ContainsPosition(dests, c.Destination) {
		return ErrInvalidChoice
	}
	return nil
}

func checkPlayer(playerID int, cs *ChoiceSet) error {
	if cs == nil {
		return ErrInvalidChoice
	}
	if playerID != cs.Player {
		return fmt.Errorf("%w: %w", ErrInvalidChoice, ErrInvalidPlayer)
	}
	return nil
}

// Opponent returns the other player's ID
func Opponent(playerID int) int {
	return 1 - playerID
}

// IsValidPlayer reports whether playerID is 0 or 1
func IsValidPlayer(playerID int) bool {
	return playerID == 0 || playerID == 1
}
