package core

import "fmt"

// TroopType names an entry in the movement catalog
type TroopType string

const (
	Duke    TroopType = "Duke"
	Footman TroopType = "Footman"

	// Placeholder occupies a square while a pull site is being evaluated
	// and the real tile has not been drawn yet. It never acts.
	Placeholder TroopType = "?"
)

// Side is the face of a tile that is currently showing.
type Side int

const (
	Front Side = 1
	Back  Side = 2
)

// Flip returns the opposite face
func (s Side) Flip() Side {
	if s == Back {
		return Front
	}
	return Back
}

func (s Side) String() string {
	return fmt.Sprintf("side %d", int(s))
}

// Tile is a single troop tile on the board.
// The zero Tile marks an empty square.
type Tile struct {
	ID    int
	Type  TroopType
	Owner int
	Side  Side
}

func (t Tile) IsEmpty() bool { return t.Type == "" }
func (t Tile) IsDuke() bool  { return t.Type == Duke }

// IsEnemyOf reports whether the tile is occupied by the other player
func (t Tile) IsEnemyOf(playerID int) bool {
	return !t.IsEmpty() && t.Owner != playerID
}

// IsFriendOf reports whether the tile is occupied by playerID
func (t Tile) IsFriendOf(playerID int) bool {
	return !t.IsEmpty() && t.Owner == playerID
}

// Flip turns the tile over
func (t *Tile) Flip() {
	t.Side = t.Side.Flip()
}

// Board is the 6x6 grid. It is a plain value so copying it yields an
// independent snapshot.
type Board struct {
	T      [Size * Size]Tile // row-major
	nextID int
}

func NewBoard() *Board {
	return &Board{nextID: 1}
}

// GetTile safely returns a tile pointer if the position is valid, nil otherwise
func (b *Board) GetTile(p Position) *Tile {
	if !p.InBounds() {
		return nil
	}
	return &b.T[p.Index()]
}

// At returns the tile at p. Off-board positions read as empty.
func (b *Board) At(p Position) Tile {
	if !p.InBounds() {
		return Tile{}
	}
	return b.T[p.Index()]
}

// IsEmpty reports whether p is on the board and unoccupied
func (b *Board) IsEmpty(p Position) bool {
	return p.InBounds() && b.T[p.Index()].IsEmpty()
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// NewTile allocates a tile with a fresh ID. It is not placed.
func (b *Board) NewTile(troop TroopType, owner int, side Side) Tile {
	if b.nextID == 0 {
		b.nextID = 1
	}
	t := Tile{ID: b.nextID, Type: troop, Owner: owner, Side: side}
	b.nextID++
	return t
}

// Place puts t on an empty square
func (b *Board) Place(p Position, t Tile) error {
	if !p.InBounds() {
		return fmt.Errorf("place at %s: %w", p, ErrInvalidCoordinates)
	}
	if !b.T[p.Index()].IsEmpty() {
		return fmt.Errorf("place at %s: %w", p, ErrOccupancyViolation)
	}
	if t.ID >= b.nextID {
		b.nextID = t.ID + 1
	}
	b.T[p.Index()] = t
	return nil
}

// Remove lifts the tile at p off the board and returns it
func (b *Board) Remove(p Position) (Tile, error) {
	if !p.InBounds() {
		return Tile{}, fmt.Errorf("remove at %s: %w", p, ErrInvalidCoordinates)
	}
	t := b.T[p.Index()]
	if t.IsEmpty() {
		return Tile{}, fmt.Errorf("remove at %s: %w", p, ErrEmptySquare)
	}
	b.T[p.Index()] = Tile{}
	return t, nil
}

// Relocate moves the tile at from onto to. If to holds an enemy tile it is
// removed and returned. Moving onto a teammate is an occupancy violation.
func (b *Board) Relocate(from, to Position) (Tile, error) {
	if !from.InBounds() || !to.InBounds() {
		return Tile{}, fmt.Errorf("relocate %s to %s: %w", from, to, ErrInvalidCoordinates)
	}
	src := b.T[from.Index()]
	if src.IsEmpty() {
		return Tile{}, fmt.Errorf("relocate %s to %s: %w", from, to, ErrEmptySquare)
	}
	dst := b.T[to.Index()]
	if from == to || dst.IsFriendOf(src.Owner) {
		return Tile{}, fmt.Errorf("relocate %s to %s: %w", from, to, ErrOccupancyViolation)
	}
	b.T[to.Index()] = src
	b.T[from.Index()] = Tile{}
	return dst, nil
}

// DukeOf returns where playerID's Duke stands
func (b *Board) DukeOf(playerID int) (Position, bool) {
	for i, t := range b.T {
		if t.IsDuke() && t.Owner == playerID {
			return FromIndex(i), true
		}
	}
	return Position{}, false
}

// TilesOf returns the positions of every tile owned by playerID in row-major order
func (b *Board) TilesOf(playerID int) []Position {
	var out []Position
	for i, t := range b.T {
		if t.IsFriendOf(playerID) {
			out = append(out, FromIndex(i))
		}
	}
	return out
}

// Occupied counts the tiles on the board
func (b *Board) Occupied() int {
	n := 0
	for _, t := range b.T {
		if !t.IsEmpty() {
			n++
		}
	}
	return n
}
