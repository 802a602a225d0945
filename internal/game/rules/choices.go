package rules

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// Options tunes rule variants that the base game leaves open
type Options struct {
	// PullSafety drops pull sites where a newly placed tile would leave the
	// Duke attacked. Off by default: pull sites are offered on adjacency and
	// occupancy alone.
	PullSafety bool
	// FlipOnPlace turns a newly placed tile to its back side
	FlipOnPlace bool
}

// ChoiceCalculator computes everything a player may legally do and applies
// chosen actions to board snapshots. It holds no game state.
type ChoiceCalculator struct {
	gen    *MoveGenerator
	filter *LegalityFilter
	opts   Options
	logger zerolog.Logger
}

// NewChoiceCalculator wires a move generator and legality filter over cat
func NewChoiceCalculator(cat *catalog.Catalog, opts Options, logger zerolog.Logger) *ChoiceCalculator {
	gen := NewMoveGenerator(cat)
	return &ChoiceCalculator{
		gen:    gen,
		filter: NewLegalityFilter(gen, logger),
		opts:   opts,
		logger: logger.With().Str("component", "ChoiceCalculator").Logger(),
	}
}

func (c *ChoiceCalculator) Generator() *MoveGenerator { return c.gen }
func (c *ChoiceCalculator) Filter() *LegalityFilter   { return c.filter }

// ComputeChoices builds the ChoiceSet for playerID. canPull says whether the
// player still has tiles to draw; without it no pull sites are offered.
func (c *ChoiceCalculator) ComputeChoices(b *core.Board, playerID int, canPull bool) (*core.ChoiceSet, error) {
	if err := checkPlayer(playerID); err != nil {
		return nil, err
	}
	duke, ok := b.DukeOf(playerID)
	if !ok {
		return nil, fmt.Errorf("player %d has no Duke on the board: %w", playerID, core.ErrGameOver)
	}

	cs := core.NewChoiceSet(playerID)
	for _, p := range b.TilesOf(playerID) {
		if b.At(p).Type == core.Placeholder {
			continue
		}
		raw, err := c.gen.RawActions(b, p)
		if err != nil {
			return nil, err
		}
		legal, err := c.filter.Filter(b, playerID, p, raw)
		if err != nil {
			return nil, err
		}
		cs.Act[p] = legal
	}
	if _, ok := cs.Act[duke]; !ok {
		cs.Act[duke] = core.NewActionSet()
	}

	if canPull {
		pull, err := c.pullSites(b, playerID, duke)
		if err != nil {
			return nil, err
		}
		cs.Pull = pull
	}

	c.logger.Debug().
		Int("player_id", playerID).
		Int("choices", cs.Count()).
		Int("pull_sites", len(cs.Pull)).
		Msg("Computed choices")
	return cs, nil
}

func (c *ChoiceCalculator) pullSites(b *core.Board, playerID int, duke core.Position) ([]core.Position, error) {
	sites := []core.Position{}
	for _, n := range duke.ValidNeighbors() {
		if !b.IsEmpty(n) {
			continue
		}
		if c.opts.PullSafety {
			safe, err := c.filter.IsSafe(b, &core.PlaceChoice{PlayerID: playerID, Site: n})
			if err != nil {
				return nil, err
			}
			if !safe {
				continue
			}
		}
		sites = append(sites, n)
	}
	core.SortPositions(sites)
	return sites, nil
}

// IsSafe reports whether choice keeps its player's Duke out of reach
func (c *ChoiceCalculator) IsSafe(b *core.Board, choice core.Choice) (bool, error) {
	return c.filter.IsSafe(b, choice)
}

// InCheck reports whether playerID's Duke is attacked right now
func (c *ChoiceCalculator) InCheck(b *core.Board, playerID int) (bool, error) {
	if err := checkPlayer(playerID); err != nil {
		return false, err
	}
	return c.filter.InCheck(b, playerID)
}

// ApplyChoice checks choice against the choices available on b and returns
// the resulting board. b is left untouched. A place choice must name the
// troop that was drawn. The GameOverInfo is set when a Duke was captured.
func (c *ChoiceCalculator) ApplyChoice(b *core.Board, choice core.Choice) (*core.Board, *core.CaptureInfo, *core.GameOverInfo, error) {
	if choice == nil {
		return nil, nil, nil, core.WrapChoiceError(nil, core.ErrInvalidChoice)
	}
	_, isPlace := choice.(*core.PlaceChoice)
	cs, err := c.ComputeChoices(b, choice.GetPlayerID(), isPlace)
	if err != nil {
		return nil, nil, nil, core.WrapChoiceError(choice, err)
	}
	if err := choice.Validate(cs); err != nil {
		return nil, nil, nil, core.WrapChoiceError(choice, err)
	}

	next := b.Clone()
	capture, err := core.ExecuteChoice(next, choice, core.ExecOptions{Flip: true, FlipOnPlace: c.opts.FlipOnPlace})
	if err != nil {
		return nil, nil, nil, core.WrapChoiceError(choice, err)
	}

	var over *core.GameOverInfo
	if capture != nil && capture.Tile.IsDuke() {
		over = &core.GameOverInfo{Winner: capture.CapturedBy, Reason: core.ReasonDukeCaptured}
	}
	return next, capture, over, nil
}
