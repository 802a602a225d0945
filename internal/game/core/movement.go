package core

import "fmt"

// CaptureInfo records a tile taken off the board by a capture
type CaptureInfo struct {
	Position   Position
	Tile       Tile
	CapturedBy int
}

// ExecOptions controls side-effects of ExecuteChoice that only apply to real turns
type ExecOptions struct {
	// Flip turns the acting tile over after it acts
	Flip bool
	// FlipOnPlace also turns newly placed tiles over
	FlipOnPlace bool
}

// ExecuteChoice applies c to b in place without checking it against a
// ChoiceSet. It returns the captured tile, if any.
func ExecuteChoice(b *Board, c Choice, opts ExecOptions) (*CaptureInfo, error) {
	switch ch := c.(type) {
	case *PlaceChoice:
		if ch.Troop == "" {
			return nil, fmt.Errorf("place at %s: no troop drawn: %w", ch.Site, ErrInvalidChoice)
		}
		t := b.NewTile(ch.Troop, ch.PlayerID, Front)
		if opts.Flip && opts.FlipOnPlace {
			t.Flip()
		}
		return nil, b.Place(ch.Site, t)

	case *MoveChoice:
		if err := checkOwner(b, ch.Source, ch.PlayerID); err != nil {
			return nil, err
		}
		captured, err := b.Relocate(ch.Source, ch.Destination)
		if err != nil {
			return nil, err
		}
		if opts.Flip {
			b.GetTile(ch.Destination).Flip()
		}
		return captureInfo(ch.Destination, captured, ch.PlayerID), nil

	case *StrikeChoice:
		if err := checkOwner(b, ch.Source, ch.PlayerID); err != nil {
			return nil, err
		}
		if !b.At(ch.Target).IsEnemyOf(ch.PlayerID) {
			return nil, fmt.Errorf("strike at %s: %w", ch.Target, ErrOccupancyViolation)
		}
		captured, err := b.Remove(ch.Target)
		if err != nil {
			return nil, err
		}
		if opts.Flip {
			b.GetTile(ch.Source).Flip()
		}
		return captureInfo(ch.Target, captured, ch.PlayerID), nil

	case *CommandChoice:
		if err := checkOwner(b, ch.Commander, ch.PlayerID); err != nil {
			return nil, err
		}
		if err := checkOwner(b, ch.Teammate, ch.PlayerID); err != nil {
			return nil, err
		}
		if ch.Teammate == ch.Commander {
			return nil, fmt.Errorf("command %s: commander cannot command itself: %w", ch.Commander, ErrOccupancyViolation)
		}
		captured, err := b.Relocate(ch.Teammate, ch.Destination)
		if err != nil {
			return nil, err
		}
		if opts.Flip {
			b.GetTile(ch.Commander).Flip()
		}
		return captureInfo(ch.Destination, captured, ch.PlayerID), nil

	default:
		return nil, fmt.Errorf("unsupported choice %T: %w", c, ErrInvalidChoice)
	}
}

func checkOwner(b *Board, p Position, playerID int) error {
	if !p.InBounds() {
		return fmt.Errorf("%s: %w", p, ErrInvalidCoordinates)
	}
	t := b.At(p)
	if t.IsEmpty() {
		return fmt.Errorf("%s: %w", p, ErrEmptySquare)
	}
	if t.Owner != playerID {
		return fmt.Errorf("%s: %w", p, ErrNotOwned)
	}
	return nil
}

func captureInfo(p Position, captured Tile, by int) *CaptureInfo {
	if captured.IsEmpty() {
		return nil
	}
	return &CaptureInfo{Position: p, Tile: captured, CapturedBy: by}
}

// EndReason explains why a game finished
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonDukeCaptured
	ReasonCheckmate
	ReasonStalemate
	ReasonMoveLimit
	ReasonDeadPosition
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDukeCaptured:
		return "duke captured"
	case ReasonCheckmate:
		return "checkmate"
	case ReasonStalemate:
		return "stalemate"
	case ReasonMoveLimit:
		return "move limit"
	case ReasonDeadPosition:
		return "dead position"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// GameOverInfo describes a finished game. Winner is -1 for a draw.
type GameOverInfo struct {
	Winner int
	Reason EndReason
}

func (g GameOverInfo) IsDraw() bool { return g.Winner < 0 }

func (g GameOverInfo) String() string {
	if g.IsDraw() {
		return fmt.Sprintf("draw by %s", g.Reason)
	}
	return fmt.Sprintf("player %d wins by %s", g.Winner, g.Reason)
}
