package bag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/testutil"
)

func TestBag_DrawsEverythingOnce(t *testing.T) {
	contents := catalog.MustDefault().BagContents()
	b := New(contents, 42, testutil.NopLogger())

	for _, player := range []int{0, 1} {
		require.Equal(t, len(contents), b.Remaining(player))

		var drawn []core.TroopType
		for b.Remaining(player) > 0 {
			tt, err := b.Draw(player)
			require.NoError(t, err)
			drawn = append(drawn, tt)
		}
		assert.ElementsMatch(t, contents, drawn)

		_, err := b.Draw(player)
		assert.ErrorIs(t, err, core.ErrBagEmpty)
	}
}

func TestBag_PlayersAreIndependent(t *testing.T) {
	b := New([]core.TroopType{"Knight", "Seer"}, 1, testutil.NopLogger())

	_, err := b.Draw(0)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Remaining(0))
	assert.Equal(t, 2, b.Remaining(1))
	assert.Equal(t, []core.TroopType{"Knight", "Seer"}, b.Contents(1))
}

func TestBag_SeedIsDeterministic(t *testing.T) {
	contents := catalog.MustDefault().BagContents()
	a := New(contents, 7, testutil.NopLogger())
	b := New(contents, 7, testutil.NopLogger())

	for i := 0; i < len(contents); i++ {
		x, err := a.Draw(0)
		require.NoError(t, err)
		y, err := b.Draw(0)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestBag_InvalidPlayer(t *testing.T) {
	b := New([]core.TroopType{"Knight"}, 1, testutil.NopLogger())

	_, err := b.Draw(2)
	assert.ErrorIs(t, err, core.ErrInvalidPlayer)
	assert.Equal(t, 0, b.Remaining(-1))
	assert.Nil(t, b.Contents(5))
}

func TestBag_DoesNotAliasContents(t *testing.T) {
	contents := []core.TroopType{"Knight", "Seer"}
	b := New(contents, 3, testutil.NopLogger())
	_, err := b.Draw(0)
	require.NoError(t, err)
	assert.Equal(t, []core.TroopType{"Knight", "Seer"}, contents)
}
