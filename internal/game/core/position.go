package core

import (
	"fmt"
	"sort"
	"strings"
)

// Size is the width and height of the board
const Size = 6

const files = "ABCDEF"

// Position represents a square on the board. (0,0) is the bottom-left square,
// file A rank 1. X grows toward file F and Y grows toward rank 6.
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// FromIndex creates a position from a board array index using row-major ordering
func FromIndex(idx int) Position {
	return Position{X: idx % Size, Y: idx / Size}
}

// InBounds checks if the position lies on the board
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Index converts the position to a board array index using row-major ordering
func (p Position) Index() int {
	return p.Y*Size + p.X
}

// Translate returns the position shifted by dx and dy
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equal checks if two positions are equal
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// IsOrthogonallyAdjacentTo checks if this position is one step away along a file or rank
func (p Position) IsOrthogonallyAdjacentTo(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

// Neighbors returns the four orthogonal neighbors of this position in
// up, right, down, left order. Some may be off the board.
func (p Position) Neighbors() []Position {
	return []Position{
		{X: p.X, Y: p.Y + 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y},
	}
}

// ValidNeighbors returns only the neighbors that are on the board
func (p Position) ValidNeighbors() []Position {
	neighbors := p.Neighbors()
	valid := make([]Position, 0, 4)
	for _, n := range neighbors {
		if n.InBounds() {
			valid = append(valid, n)
		}
	}
	return valid
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Notation returns the file/rank name of the square, e.g. "C2".
func (p Position) Notation() string {
	if !p.InBounds() {
		return p.String()
	}
	return fmt.Sprintf("%c%d", files[p.X], p.Y+1)
}

// ParsePosition converts file/rank notation such as "c2" or "C2" into a Position
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%q: %w", s, ErrInvalidCoordinates)
	}
	x := strings.IndexByte(files, strings.ToUpper(s[:1])[0])
	y := int(s[1]-'1')
	p := Position{X: x, Y: y}
	if x < 0 || !p.InBounds() {
		return Position{}, fmt.Errorf("%q: %w", s, ErrInvalidCoordinates)
	}
	return p, nil
}

// SortPositions orders positions row-major (rank first, then file)
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Index() < ps[j].Index()
	})
}

// ContainsPosition reports whether p is in ps
func ContainsPosition(ps []Position, p Position) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
