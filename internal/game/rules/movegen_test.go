package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/testutil"
)

func pos(x, y int) core.Position { return core.NewPosition(x, y) }

func newGenerator() *MoveGenerator {
	return NewMoveGenerator(catalog.MustDefault())
}

func TestRawActions_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		pieces  []testutil.Piece
		from    core.Position
		moves   []core.Position
		strikes []core.Position
	}{
		{
			name:   "move mirrored for player 0",
			pieces: []testutil.Piece{testutil.P(2, 2, "Pikeman", 0, core.Front)},
			from:   pos(2, 2),
			moves:  []core.Position{pos(1, 3), pos(3, 3), pos(0, 4), pos(4, 4)},
		},
		{
			name:   "move mirrored for player 1",
			pieces: []testutil.Piece{testutil.P(2, 2, "Pikeman", 1, core.Front)},
			from:   pos(2, 2),
			moves:  []core.Position{pos(0, 0), pos(4, 0), pos(1, 1), pos(3, 1)},
		},
		{
			name: "move blocked by path and teammate",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Pikeman", 0, core.Front),
				testutil.P(1, 3, core.Footman, 0, core.Front),
				testutil.P(3, 3, core.Footman, 1, core.Front),
			},
			from:  pos(2, 2),
			moves: []core.Position{pos(3, 3)},
		},
		{
			name: "jump ignores blockers",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Knight", 0, core.Front),
				testutil.P(1, 3, core.Footman, 1, core.Front),
				testutil.P(2, 3, core.Footman, 1, core.Front),
				testutil.P(3, 3, core.Footman, 1, core.Front),
				testutil.P(2, 1, core.Footman, 0, core.Front),
			},
			from:  pos(2, 2),
			moves: []core.Position{pos(1, 2), pos(3, 2), pos(1, 4), pos(3, 4)},
		},
		{
			name: "slide stops at blockers and includes enemy",
			pieces: []testutil.Piece{
				testutil.P(2, 0, core.Duke, 0, core.Front),
				testutil.P(0, 0, core.Footman, 0, core.Front),
				testutil.P(4, 0, core.Footman, 1, core.Front),
			},
			from:  pos(2, 0),
			moves: []core.Position{pos(1, 0), pos(3, 0), pos(4, 0)},
		},
		{
			name: "jump slide leaps then slides",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Assassin", 0, core.Front),
				testutil.P(2, 3, core.Footman, 0, core.Front),
				testutil.P(2, 5, core.Footman, 1, core.Front),
			},
			from:  pos(2, 2),
			moves: []core.Position{pos(0, 0), pos(4, 0), pos(2, 4), pos(2, 5)},
		},
		{
			name: "strike needs an enemy",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Longbowman", 0, core.Back),
			},
			from:  pos(2, 2),
			moves: []core.Position{pos(1, 1), pos(3, 1)},
		},
		{
			name: "strike ignores path",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Longbowman", 0, core.Back),
				testutil.P(2, 3, core.Footman, 0, core.Front),
				testutil.P(2, 4, core.Footman, 1, core.Front),
			},
			from:    pos(2, 2),
			moves:   []core.Position{pos(1, 1), pos(3, 1)},
			strikes: []core.Position{pos(2, 4)},
		},
		{
			name: "strike never hits teammate",
			pieces: []testutil.Piece{
				testutil.P(2, 2, "Longbowman", 0, core.Back),
				testutil.P(2, 4, core.Footman, 0, core.Front),
			},
			from:  pos(2, 2),
			moves: []core.Position{pos(1, 1), pos(3, 1)},
		},
	}

	gen := newGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.CreateTestBoard(t, tt.pieces...)
			a, err := gen.RawActions(b, tt.from)
			require.NoError(t, err)

			expectedMoves := tt.moves
			if expectedMoves == nil {
				expectedMoves = []core.Position{}
			}
			expectedStrikes := tt.strikes
			if expectedStrikes == nil {
				expectedStrikes = []core.Position{}
			}
			assert.Equal(t, expectedMoves, a.Moves)
			assert.Equal(t, expectedStrikes, a.Strikes)
			assert.Empty(t, a.Commands)
		})
	}
}

func TestRawActions_CommandRelativeToCommander(t *testing.T) {
	gen := newGenerator()
	b := testutil.PinnedDukeBoard(t)

	a, err := gen.RawActions(b, pos(3, 4))
	require.NoError(t, err)

	region := []core.Position{pos(2, 3), pos(2, 4), pos(4, 4)}
	assert.Equal(t, map[core.Position][]core.Position{
		pos(3, 3): region,
		pos(4, 3): region,
	}, a.Commands)
	assert.Equal(t, []core.Position{pos(1, 4), pos(5, 4), pos(3, 5)}, a.Moves)
	assert.Equal(t, []core.Position{pos(3, 3), pos(4, 3)}, a.CommandKeys())
}

func TestRawActions_CommandMirroredForPlayer1(t *testing.T) {
	gen := newGenerator()
	b := testutil.CreateTestBoard(t,
		testutil.P(2, 3, "Marshall", 1, core.Back),
		testutil.P(2, 2, core.Footman, 1, core.Front),
	)

	a, err := gen.RawActions(b, pos(2, 3))
	require.NoError(t, err)
	assert.Equal(t, map[core.Position][]core.Position{
		pos(2, 2): {pos(1, 2), pos(3, 2)},
	}, a.Commands)
}

func TestRawActions_Errors(t *testing.T) {
	gen := newGenerator()
	b := testutil.CreateTestBoard(t,
		testutil.P(0, 0, "Unicorn", 0, core.Front),
		testutil.P(1, 1, core.Placeholder, 0, core.Front),
	)

	_, err := gen.RawActions(b, pos(0, 0))
	assert.ErrorIs(t, err, catalog.ErrCatalogMissing)

	_, err = gen.RawActions(b, pos(5, 5))
	assert.ErrorIs(t, err, core.ErrEmptySquare)

	a, err := gen.RawActions(b, pos(1, 1))
	require.NoError(t, err)
	assert.True(t, a.IsEmpty(), "placeholders never act")
}

func TestAttacks(t *testing.T) {
	gen := newGenerator()
	b := testutil.PinnedDukeBoard(t)

	attacks, err := gen.Attacks(b, 1)
	require.NoError(t, err)

	expected := map[core.Position]struct{}{
		pos(1, 3): {}, pos(2, 3): {}, pos(3, 3): {},
		pos(2, 4): {}, pos(0, 4): {}, pos(1, 5): {},
	}
	assert.Equal(t, expected, attacks)
}
