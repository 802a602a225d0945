package rules

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// LegalityFilter drops candidate choices that would leave the mover's Duke
// on a square the opponent attacks. It looks exactly one ply ahead.
type LegalityFilter struct {
	gen    *MoveGenerator
	logger zerolog.Logger
}

// NewLegalityFilter creates a filter that evaluates opponent replies with gen
func NewLegalityFilter(gen *MoveGenerator, logger zerolog.Logger) *LegalityFilter {
	return &LegalityFilter{
		gen:    gen,
		logger: logger.With().Str("component", "LegalityFilter").Logger(),
	}
}

// IsSafe plays choice on a copy of b without flipping anything and reports
// whether the mover's Duke survives every opponent reply. A place choice
// without a troop is simulated with a placeholder tile.
func (f *LegalityFilter) IsSafe(b *core.Board, choice core.Choice) (bool, error) {
	sim := b.Clone()
	if pc, ok := choice.(*core.PlaceChoice); ok && pc.Troop == "" {
		choice = &core.PlaceChoice{PlayerID: pc.PlayerID, Site: pc.Site, Troop: core.Placeholder}
	}
	if _, err := core.ExecuteChoice(sim, choice, core.ExecOptions{}); err != nil {
		return false, core.WrapChoiceError(choice, err)
	}
	threatened, err := f.InCheck(sim, choice.GetPlayerID())
	if err != nil {
		return false, err
	}
	return !threatened, nil
}

// InCheck reports whether playerID's Duke stands on a square the opponent
// attacks. A player without a Duke is always in check.
func (f *LegalityFilter) InCheck(b *core.Board, playerID int) (bool, error) {
	duke, ok := b.DukeOf(playerID)
	if !ok {
		return true, nil
	}
	attacks, err := f.gen.Attacks(b, core.Opponent(playerID))
	if err != nil {
		return false, err
	}
	_, attacked := attacks[duke]
	return attacked, nil
}

// Filter keeps only the safe entries of raw, the unfiltered actions of the
// tile on from. Commandable teammates stay listed even when none of their
// destinations survive.
func (f *LegalityFilter) Filter(b *core.Board, playerID int, from core.Position, raw core.ActionSet) (core.ActionSet, error) {
	out := core.NewActionSet()

	for _, dst := range raw.Moves {
		safe, err := f.IsSafe(b, &core.MoveChoice{PlayerID: playerID, Source: from, Destination: dst})
		if err != nil {
			return core.ActionSet{}, err
		}
		if safe {
			out.Moves = append(out.Moves, dst)
		}
	}

	for _, tgt := range raw.Strikes {
		safe, err := f.IsSafe(b, &core.StrikeChoice{PlayerID: playerID, Source: from, Target: tgt})
		if err != nil {
			return core.ActionSet{}, err
		}
		if safe {
			out.Strikes = append(out.Strikes, tgt)
		}
	}

	for mate, dests := range raw.Commands {
		kept := []core.Position{}
		for _, dst := range dests {
			safe, err := f.IsSafe(b, &core.CommandChoice{PlayerID: playerID, Commander: from, Teammate: mate, Destination: dst})
			if err != nil {
				return core.ActionSet{}, err
			}
			if safe {
				kept = append(kept, dst)
			}
		}
		out.Commands[mate] = kept
	}

	out.Normalize()
	if dropped := countActions(raw) - countActions(out); dropped > 0 {
		f.logger.Debug().
			Int("player_id", playerID).
			Str("source", from.String()).
			Int("dropped", dropped).
			Msg("Dropped choices that expose the Duke")
	}
	return out, nil
}

func countActions(a core.ActionSet) int {
	n := len(a.Moves) + len(a.Strikes)
	for _, dests := range a.Commands {
		n += len(dests)
	}
	return n
}

func checkPlayer(playerID int) error {
	if !core.IsValidPlayer(playerID) {
		return fmt.Errorf("player %d: %w", playerID, core.ErrInvalidPlayer)
	}
	return nil
}
