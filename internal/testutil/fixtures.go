package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

const (
	General  core.TroopType = "General"
	Champion core.TroopType = "Champion"
)

// Piece describes one tile to put on a test board
type Piece struct {
	X, Y  int
	Type  core.TroopType
	Owner int
	Side  core.Side
}

// P is shorthand for a Piece literal
func P(x, y int, troop core.TroopType, owner int, side core.Side) Piece {
	return Piece{X: x, Y: y, Type: troop, Owner: owner, Side: side}
}

// CreateTestBoard builds a board holding exactly the given pieces
func CreateTestBoard(t testing.TB, pieces ...Piece) *core.Board {
	t.Helper()
	b := core.NewBoard()
	for _, p := range pieces {
		tile := b.NewTile(p.Type, p.Owner, p.Side)
		require.NoError(t, b.Place(core.NewPosition(p.X, p.Y), tile), "placing %s at (%d,%d)", p.Type, p.X, p.Y)
	}
	return b
}

// PinnedDukeBoard has player 0's Duke on (3,3) with the enemy Duke sliding
// along rank 4 from (0,3). Only the General's commands on (3,4) keep the
// Duke safe.
func PinnedDukeBoard(t testing.TB) *core.Board {
	return CreateTestBoard(t,
		P(3, 3, core.Duke, 0, core.Back),
		P(3, 4, General, 0, core.Front),
		P(4, 3, core.Footman, 0, core.Front),
		P(3, 2, core.Footman, 0, core.Front),
		P(0, 3, core.Duke, 1, core.Front),
		P(1, 4, core.Footman, 1, core.Front),
	)
}

// ShieldedDukeBoard has player 0's Duke on (3,0) shielded by an enemy
// Footman on (1,0) from the enemy Duke's slide along rank 1. Player 0's
// Champion on (1,1) could strike the shield.
func ShieldedDukeBoard(t testing.TB) *core.Board {
	return CreateTestBoard(t,
		P(3, 0, core.Duke, 0, core.Front),
		P(1, 1, Champion, 0, core.Back),
		P(0, 0, core.Duke, 1, core.Front),
		P(1, 0, core.Footman, 1, core.Front),
	)
}
