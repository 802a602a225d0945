package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// DefaultDrawPlyLimit is how many consecutive plies without a placement or
// capture end the game in a draw.
const DefaultDrawPlyLimit = 100

// GameSnapshot is the state the win condition checker looks at right after
// Mover's choice was applied.
type GameSnapshot struct {
	Board *core.Board
	Mover int
	// OpponentChoices is the freshly computed ChoiceSet of the player to move next
	OpponentChoices *core.ChoiceSet
	OpponentInCheck bool
	// QuietPlies counts consecutive plies without a placement or capture
	QuietPlies   int
	BagRemaining [2]int
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger            zerolog.Logger
	catalog           *catalog.Catalog
	drawPlyLimit      int
	deadPositionCheck bool
}

// NewWinConditionChecker creates a new win condition checker. A non-positive
// drawPlyLimit falls back to DefaultDrawPlyLimit.
func NewWinConditionChecker(logger zerolog.Logger, cat *catalog.Catalog, drawPlyLimit int, deadPositionCheck bool) *WinConditionChecker {
	if drawPlyLimit <= 0 {
		drawPlyLimit = DefaultDrawPlyLimit
	}
	return &WinConditionChecker{
		logger:            logger.With().Str("component", "WinConditionChecker").Logger(),
		catalog:           cat,
		drawPlyLimit:      drawPlyLimit,
		deadPositionCheck: deadPositionCheck,
	}
}

// CheckGameOver returns nil while the game goes on
func (wc *WinConditionChecker) CheckGameOver(s GameSnapshot) *core.GameOverInfo {
	wc.logger.Debug().Int("mover", s.Mover).Int("quiet_plies", s.QuietPlies).Msg("Checking game over conditions")
	opponent := core.Opponent(s.Mover)

	var info *core.GameOverInfo
	switch {
	case !hasDuke(s.Board, opponent):
		info = &core.GameOverInfo{Winner: s.Mover, Reason: core.ReasonDukeCaptured}
	case !hasDuke(s.Board, s.Mover):
		info = &core.GameOverInfo{Winner: opponent, Reason: core.ReasonDukeCaptured}
	case s.OpponentChoices != nil && s.OpponentChoices.HasNoValidChoices():
		if s.OpponentInCheck {
			info = &core.GameOverInfo{Winner: s.Mover, Reason: core.ReasonCheckmate}
		} else {
			info = &core.GameOverInfo{Winner: -1, Reason: core.ReasonStalemate}
		}
	case s.QuietPlies > wc.drawPlyLimit:
		info = &core.GameOverInfo{Winner: -1, Reason: core.ReasonMoveLimit}
	case wc.deadPositionCheck && wc.IsDeadPosition(s.Board, s.BagRemaining):
		info = &core.GameOverInfo{Winner: -1, Reason: core.ReasonDeadPosition}
	}

	if info != nil {
		if info.IsDraw() {
			wc.logger.Info().Str("reason", info.Reason.String()).Msg("Game drawn")
		} else {
			wc.logger.Info().Int("winner_player_id", info.Winner).Str("reason", info.Reason.String()).Msg("Winner determined")
		}
	}
	return info
}

// IsDeadPosition reports whether neither player can do anything but move
// their Duke, in which case nobody can ever be checkmated.
func (wc *WinConditionChecker) IsDeadPosition(b *core.Board, bagRemaining [2]int) bool {
	return wc.CanOnlyMoveDuke(b, 0, bagRemaining[0] == 0) && wc.CanOnlyMoveDuke(b, 1, bagRemaining[1] == 0)
}

// CanOnlyMoveDuke is true only when it is certain that nothing but the
// player's Duke can ever act again: the bag is empty and no other tile has a
// movement rule landing on the board, either directly, after being
// commanded, or after its commander flips. Tiles that block each other are
// not detected, so false means "not sure".
func (wc *WinConditionChecker) CanOnlyMoveDuke(b *core.Board, playerID int, bagEmpty bool) bool {
	if !bagEmpty {
		return false
	}
	for _, p := range b.TilesOf(playerID) {
		t := b.At(p)
		if t.IsDuke() || t.Type == core.Placeholder {
			continue
		}
		rules, err := wc.catalog.Rules(t.Type, t.Side)
		if err != nil {
			return false
		}

		var mates []core.Tile
		var dests []core.Position
		for _, r := range rules {
			off := catalog.Orient(r.Offset, playerID)
			target := p.Translate(off.DX, off.DY)
			if !target.InBounds() {
				continue
			}
			if r.Kind.IsMovement() {
				return false
			}
			if r.Kind != catalog.Command {
				continue
			}
			if occupant := b.At(target); occupant.IsFriendOf(playerID) {
				mates = append(mates, occupant)
			} else {
				dests = append(dests, target)
			}
		}

		if len(dests) == 0 {
			continue
		}
		for _, m := range mates {
			for _, d := range dests {
				if wc.movesFrom(m.Type, m.Side, d, playerID) {
					return false
				}
			}
		}
		if wc.movesFrom(t.Type, t.Side.Flip(), p, playerID) {
			return false
		}
	}
	return true
}

// movesFrom reports whether a tile of the given type and side standing on p
// has at least one movement rule that lands on the board.
func (wc *WinConditionChecker) movesFrom(t core.TroopType, side core.Side, p core.Position, playerID int) bool {
	if t == core.Placeholder {
		return false
	}
	rules, err := wc.catalog.Rules(t, side)
	if err != nil {
		return true
	}
	for _, r := range rules {
		if !r.Kind.IsMovement() {
			continue
		}
		off := catalog.Orient(r.Offset, playerID)
		if p.Translate(off.DX, off.DY).InBounds() {
			return true
		}
	}
	return false
}

func hasDuke(b *core.Board, playerID int) bool {
	_, ok := b.DukeOf(playerID)
	return ok
}
