package game

import "github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"

// Ply is one applied choice. Place choices carry the troop that was drawn.
type Ply struct {
	Turn     int
	PlayerID int
	Choice   core.Choice
	Capture  *core.CaptureInfo
}

// GameState is everything the engine owns between turns
type GameState struct {
	Turn          int
	CurrentPlayer int
	Board         *core.Board
	// QuietPlies counts consecutive plies with neither a placement nor a capture
	QuietPlies int
	Captured   [2][]core.Tile
	History    []Ply
	Choices    [2]*core.ChoiceSet
	InCheck    [2]bool
}

// Clone copies the board, captured piles and history. Choice sets are shared
// since they are rebuilt rather than modified.
func (gs *GameState) Clone() *GameState {
	out := *gs
	out.Board = gs.Board.Clone()
	for p := range gs.Captured {
		out.Captured[p] = append([]core.Tile(nil), gs.Captured[p]...)
	}
	out.History = append([]Ply(nil), gs.History...)
	return &out
}
