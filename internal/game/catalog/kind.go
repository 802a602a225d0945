package catalog

import (
	"fmt"
	"strings"
)

// Kind is how a movement rule reaches its square
type Kind int

const (
	Move Kind = iota
	Jump
	Slide
	JumpSlide
	Strike
	Command
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "MOVE"
	case Jump:
		return "JUMP"
	case Slide:
		return "SLIDE"
	case JumpSlide:
		return "JUMP_SLIDE"
	case Strike:
		return "STRIKE"
	case Command:
		return "COMMAND"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// IsMovement reports whether the rule relocates the acting tile
func (k Kind) IsMovement() bool {
	return k == Move || k == Jump || k == Slide || k == JumpSlide
}

// ParseKind accepts the catalog spellings, e.g. "JUMP SLIDE" or "jump_slide"
func ParseKind(s string) (Kind, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "MOVE":
		return Move, nil
	case "JUMP":
		return Jump, nil
	case "SLIDE":
		return Slide, nil
	case "JUMP_SLIDE", "JUMPSLIDE":
		return JumpSlide, nil
	case "STRIKE":
		return Strike, nil
	case "COMMAND":
		return Command, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
}

// Offset is a displacement in the owner's forward frame. +DY is forward.
type Offset struct {
	DX, DY int
}

// Orient mirrors an authored offset into board coordinates for playerID.
// Player 0 faces up the board and uses offsets as authored; player 1 faces
// down and sees both axes negated.
func Orient(o Offset, playerID int) Offset {
	if playerID == 1 {
		return Offset{DX: -o.DX, DY: -o.DY}
	}
	return o
}

// Unit returns the single-step direction of the offset
func (o Offset) Unit() Offset {
	return Offset{DX: sign(o.DX), DY: sign(o.DY)}
}

// Steps is the number of unit steps needed to cover the offset
func (o Offset) Steps() int {
	return max(abs(o.DX), abs(o.DY))
}

// Square returns the authored file/rank name of the offset, e.g. "b3"
func (o Offset) Square() string {
	return fmt.Sprintf("%c%d", rune('c'+o.DX), o.DY+3)
}

func (o Offset) String() string {
	return fmt.Sprintf("(%+d,%+d)", o.DX, o.DY)
}

// Rule is one entry of a tile side's movement table. Only Command rules
// carry Destinations: the full set of command squares for that side.
type Rule struct {
	Offset       Offset
	Kind         Kind
	Destinations []Offset
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.Offset.Square())
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
