package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

var (
	ErrCatalogMissing = errors.New("movement catalog has no entry")
	ErrUnknownKind    = errors.New("unknown movement kind")
	ErrBadSquare      = errors.New("square outside the 5x5 movement grid")
)

// Catalog maps every troop type and side to its movement rules.
// It is read-only once loaded and safe to share.
type Catalog struct {
	troops   map[core.TroopType]*troop
	starting []core.TroopType
}

type troop struct {
	count int
	sides map[core.Side][]Rule
}

// Rules returns the movement table for a troop type showing side s
func (c *Catalog) Rules(t core.TroopType, s core.Side) ([]Rule, error) {
	tr, ok := c.troops[t]
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrCatalogMissing)
	}
	rules, ok := tr.sides[s]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", t, s, ErrCatalogMissing)
	}
	return rules, nil
}

// Has reports whether the catalog describes t
func (c *Catalog) Has(t core.TroopType) bool {
	_, ok := c.troops[t]
	return ok
}

// Types returns all troop types in name order
func (c *Catalog) Types() []core.TroopType {
	out := make([]core.TroopType, 0, len(c.troops))
	for t := range c.troops {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count is how many copies of t each player owns
func (c *Catalog) Count(t core.TroopType) int {
	if tr, ok := c.troops[t]; ok {
		return tr.count
	}
	return 0
}

// StartingTroops lists the tiles each player puts on the board before the
// first turn. The Duke comes first.
func (c *Catalog) StartingTroops() []core.TroopType {
	out := make([]core.TroopType, len(c.starting))
	copy(out, c.starting)
	return out
}

// BagContents is every tile a player owns minus the starting troops
func (c *Catalog) BagContents() []core.TroopType {
	remaining := make(map[core.TroopType]int, len(c.troops))
	for t, tr := range c.troops {
		remaining[t] = tr.count
	}
	for _, t := range c.starting {
		remaining[t]--
	}
	var out []core.TroopType
	for _, t := range c.Types() {
		for i := 0; i < remaining[t]; i++ {
			out = append(out, t)
		}
	}
	return out
}
