package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// MoveGenerator expands a tile's movement table into concrete squares on a
// board. It knows nothing about Duke safety.
type MoveGenerator struct {
	catalog *catalog.Catalog
}

// NewMoveGenerator creates a move generator backed by cat
func NewMoveGenerator(cat *catalog.Catalog) *MoveGenerator {
	return &MoveGenerator{catalog: cat}
}

// Catalog returns the movement catalog the generator reads from
func (g *MoveGenerator) Catalog() *catalog.Catalog {
	return g.catalog
}

// RawActions lists everything the tile on from could do, ignoring whether
// doing it would expose its own Duke. Lists are deduplicated and sorted.
func (g *MoveGenerator) RawActions(b *core.Board, from core.Position) (core.ActionSet, error) {
	tile := b.At(from)
	if tile.IsEmpty() {
		return core.ActionSet{}, fmt.Errorf("raw actions at %s: %w", from, core.ErrEmptySquare)
	}

	actions := core.NewActionSet()
	if tile.Type == core.Placeholder {
		return actions, nil
	}

	rules, err := g.catalog.Rules(tile.Type, tile.Side)
	if err != nil {
		return core.ActionSet{}, err
	}

	var commandDests []core.Position
	for _, r := range rules {
		off := catalog.Orient(r.Offset, tile.Owner)
		target := from.Translate(off.DX, off.DY)
		if !target.InBounds() {
			continue
		}

		switch r.Kind {
		case catalog.Move:
			if canLand(b, target, tile.Owner) && pathClear(b, target, off) {
				actions.Moves = append(actions.Moves, target)
			}
		case catalog.Jump:
			if canLand(b, target, tile.Owner) {
				actions.Moves = append(actions.Moves, target)
			}
		case catalog.Slide:
			if pathClear(b, target, off) {
				actions.Moves = append(actions.Moves, slide(b, target, off.Unit(), tile.Owner)...)
			}
		case catalog.JumpSlide:
			actions.Moves = append(actions.Moves, slide(b, target, off.Unit(), tile.Owner)...)
		case catalog.Strike:
			if b.At(target).IsEnemyOf(tile.Owner) {
				actions.Strikes = append(actions.Strikes, target)
			}
		case catalog.Command:
			if !b.At(target).IsFriendOf(tile.Owner) {
				continue
			}
			if _, ok := actions.Commands[target]; !ok {
				actions.Commands[target] = nil
			}
			if commandDests == nil {
				commandDests = commandRegion(b, from, r.Destinations, tile.Owner)
			}
		}
	}

	// Destinations are relative to the commander, so every commandable
	// teammate shares the same list.
	for mate := range actions.Commands {
		actions.Commands[mate] = append([]core.Position(nil), commandDests...)
	}
	actions.Normalize()
	return actions, nil
}

// Attacks is the set of squares playerID could capture on with its next
// choice: raw moves, strikes and command destinations of every tile.
func (g *MoveGenerator) Attacks(b *core.Board, playerID int) (map[core.Position]struct{}, error) {
	attacks := make(map[core.Position]struct{})
	for _, p := range b.TilesOf(playerID) {
		a, err := g.RawActions(b, p)
		if err != nil {
			return nil, err
		}
		for _, sq := range a.Attacks() {
			attacks[sq] = struct{}{}
		}
	}
	return attacks, nil
}

func canLand(b *core.Board, p core.Position, owner int) bool {
	return p.InBounds() && !b.At(p).IsFriendOf(owner)
}

// pathClear reports whether every square strictly between the origin and
// target, walking back from target along the offset's unit step, is empty.
func pathClear(b *core.Board, target core.Position, off catalog.Offset) bool {
	unit := off.Unit()
	for step := 1; step < off.Steps(); step++ {
		if !b.IsEmpty(target.Translate(-step*unit.DX, -step*unit.DY)) {
			return false
		}
	}
	return true
}

// slide walks from start in direction unit until it leaves the board or
// meets a tile. A blocking enemy tile is included.
func slide(b *core.Board, start core.Position, unit catalog.Offset, owner int) []core.Position {
	var out []core.Position
	for p := start; p.InBounds(); p = p.Translate(unit.DX, unit.DY) {
		t := b.At(p)
		if t.IsEmpty() {
			out = append(out, p)
			continue
		}
		if t.IsEnemyOf(owner) {
			out = append(out, p)
		}
		break
	}
	return out
}

func commandRegion(b *core.Board, commander core.Position, region []catalog.Offset, owner int) []core.Position {
	out := []core.Position{}
	for _, o := range region {
		off := catalog.Orient(o, owner)
		p := commander.Translate(off.DX, off.DY)
		if canLand(b, p, owner) {
			out = append(out, p)
		}
	}
	return out
}
