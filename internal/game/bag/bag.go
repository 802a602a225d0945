package bag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// Bag holds each player's unplaced tiles and hands them out at random.
// Both players start with the same contents.
type Bag struct {
	mu     sync.Mutex
	tiles  [2][]core.TroopType
	rng    *rand.Rand
	logger zerolog.Logger
}

// New fills both players' bags with contents. The same seed always yields
// the same draw order.
func New(contents []core.TroopType, seed uint64, logger zerolog.Logger) *Bag {
	b := &Bag{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With().Str("component", "Bag").Logger(),
	}
	for p := range b.tiles {
		b.tiles[p] = append([]core.TroopType(nil), contents...)
	}
	return b
}

// Draw removes a random tile from playerID's bag
func (b *Bag) Draw(playerID int) (core.TroopType, error) {
	if !core.IsValidPlayer(playerID) {
		return "", fmt.Errorf("draw for player %d: %w", playerID, core.ErrInvalidPlayer)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	tiles := b.tiles[playerID]
	if len(tiles) == 0 {
		return "", fmt.Errorf("draw for player %d: %w", playerID, core.ErrBagEmpty)
	}
	i := b.rng.Intn(len(tiles))
	drawn := tiles[i]
	tiles[i] = tiles[len(tiles)-1]
	b.tiles[playerID] = tiles[:len(tiles)-1]

	b.logger.Debug().
		Int("player_id", playerID).
		Str("troop", string(drawn)).
		Int("remaining", len(b.tiles[playerID])).
		Msg("Drew tile")
	return drawn, nil
}

// Remaining is how many tiles playerID can still draw
func (b *Bag) Remaining(playerID int) int {
	if !core.IsValidPlayer(playerID) {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tiles[playerID])
}

// Contents lists playerID's undrawn tiles in name order
func (b *Bag) Contents(playerID int) []core.TroopType {
	if !core.IsValidPlayer(playerID) {
		return nil
	}
	b.mu.Lock()
	out := append([]core.TroopType(nil), b.tiles[playerID]...)
	b.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
