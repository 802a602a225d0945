package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_InBounds(t *testing.T) {
	tests := []struct {
		pos   Position
		valid bool
	}{
		{NewPosition(0, 0), true},
		{NewPosition(5, 5), true},
		{NewPosition(-1, 0), false},
		{NewPosition(0, 6), false},
		{NewPosition(6, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.pos.InBounds())
		})
	}
}

func TestPosition_Arithmetic(t *testing.T) {
	p := NewPosition(2, 3)
	assert.Equal(t, NewPosition(3, 5), p.Translate(1, 2))
	assert.Equal(t, NewPosition(0, 4), p.Translate(-2, 1))
	assert.True(t, p.Equal(NewPosition(2, 3)))
	assert.Equal(t, p, FromIndex(p.Index()))
}

func TestPosition_ValidNeighbors(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected int
	}{
		{"corner", NewPosition(0, 0), 2},
		{"edge", NewPosition(0, 3), 3},
		{"centre", NewPosition(3, 3), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := tt.pos.ValidNeighbors()
			assert.Len(t, ns, tt.expected)
			for _, n := range ns {
				assert.True(t, n.IsOrthogonallyAdjacentTo(tt.pos))
			}
		})
	}
}

func TestPosition_Notation(t *testing.T) {
	assert.Equal(t, "A1", NewPosition(0, 0).Notation())
	assert.Equal(t, "C2", NewPosition(2, 1).Notation())
	assert.Equal(t, "F6", NewPosition(5, 5).Notation())

	p, err := ParsePosition("d6")
	require.NoError(t, err)
	assert.Equal(t, NewPosition(3, 5), p)

	for _, bad := range []string{"", "G1", "A7", "A0", "AA", "A10"} {
		_, err := ParsePosition(bad)
		assert.ErrorIs(t, err, ErrInvalidCoordinates, "input %q", bad)
	}
}

func TestSortPositions(t *testing.T) {
	ps := []Position{NewPosition(1, 2), NewPosition(5, 0), NewPosition(0, 2), NewPosition(3, 1)}
	SortPositions(ps)
	assert.Equal(t, []Position{NewPosition(5, 0), NewPosition(3, 1), NewPosition(0, 2), NewPosition(1, 2)}, ps)
}
