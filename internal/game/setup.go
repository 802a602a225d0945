package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

var ErrInvalidSetup = errors.New("invalid initial board")

// TileSource hands out the tiles a player places from their bag
type TileSource interface {
	Draw(playerID int) (core.TroopType, error)
	Remaining(playerID int) int
}

// Starting squares of the standard setup. The Duke takes the first square,
// the remaining starting troops follow in order.
var startingSquares = [2][]core.Position{
	{core.NewPosition(2, 0), core.NewPosition(2, 1), core.NewPosition(3, 0)},
	{core.NewPosition(3, 5), core.NewPosition(2, 5), core.NewPosition(4, 5)},
}

// StandardBoard lays out the catalog's starting troops for both players.
// Every tile starts on its front side.
func StandardBoard(cat *catalog.Catalog) (*core.Board, error) {
	troops := cat.StartingTroops()
	if len(troops) == 0 || troops[0] != core.Duke {
		return nil, fmt.Errorf("starting troops must begin with the %s: %w", core.Duke, ErrInvalidSetup)
	}

	b := core.NewBoard()
	for playerID, squares := range startingSquares {
		if len(troops) > len(squares) {
			return nil, fmt.Errorf("%d starting troops but only %d starting squares: %w", len(troops), len(squares), ErrInvalidSetup)
		}
		for i, t := range troops {
			if err := b.Place(squares[i], b.NewTile(t, playerID, core.Front)); err != nil {
				return nil, fmt.Errorf("place %s for player %d: %w", t, playerID, err)
			}
		}
	}
	return b, nil
}

// validateBoard checks that every player owns exactly one Duke and that all
// tiles are described by the catalog
func validateBoard(b *core.Board, cat *catalog.Catalog) error {
	var dukes [2]int
	for i, t := range b.T {
		if t.IsEmpty() {
			continue
		}
		if !core.IsValidPlayer(t.Owner) {
			return fmt.Errorf("tile at %s owned by %d: %w", core.FromIndex(i), t.Owner, ErrInvalidSetup)
		}
		if t.IsDuke() {
			dukes[t.Owner]++
		}
		if t.Type != core.Placeholder && !cat.Has(t.Type) {
			return fmt.Errorf("tile at %s: %s: %w", core.FromIndex(i), t.Type, catalog.ErrCatalogMissing)
		}
	}
	for playerID, n := range dukes {
		if n != 1 {
			return fmt.Errorf("player %d has %d Dukes: %w", playerID, n, ErrInvalidSetup)
		}
	}
	return nil
}
