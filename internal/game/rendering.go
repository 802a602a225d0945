package game

import (
	"strings"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorBlue   = "\033[34m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue}

const (
	emptySymbol = " · "
	cellWidth   = 4
)

// Render draws the board with rank 6 on top. Each tile shows its owner
// (A or B), a two-letter troop code and the side it shows.
func (e *Engine) Render() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return RenderBoard(e.gs.Board, e.colorRender)
}

// RenderBoard draws any board, optionally with ANSI colours
func RenderBoard(b *core.Board, color bool) string {
	// Each cell takes roughly 4 visible chars plus ~10 for ANSI codes
	var sb strings.Builder
	sb.Grow((core.Size*(cellWidth+10)+6)*(core.Size+2) + 64)

	writeFiles(&sb)
	for y := core.Size - 1; y >= 0; y-- {
		sb.WriteByte(byte('1' + y))
		sb.WriteString(" |")
		for x := 0; x < core.Size; x++ {
			writeTile(&sb, b.At(core.NewPosition(x, y)), color)
			sb.WriteByte('|')
		}
		sb.WriteString(" ")
		sb.WriteByte(byte('1' + y))
		sb.WriteString("\n")
	}
	writeFiles(&sb)

	sb.WriteString("\nA/B=player Du=Duke ?=unplaced tile 1/2=side\n")
	return sb.String()
}

func writeFiles(sb *strings.Builder) {
	sb.WriteString("   ")
	for x := 0; x < core.Size; x++ {
		sb.WriteString("  ")
		sb.WriteByte(byte('A' + x))
		sb.WriteString("  ")
	}
	sb.WriteString("\n")
}

// writeTile writes a 4-character cell
func writeTile(sb *strings.Builder, t core.Tile, color bool) {
	if t.IsEmpty() {
		if color {
			sb.WriteString(ColorGray)
		}
		sb.WriteString(emptySymbol)
		sb.WriteString(" ")
		if color {
			sb.WriteString(ColorReset)
		}
		return
	}

	if color {
		if t.IsDuke() {
			sb.WriteString(ColorYellow)
		} else {
			sb.WriteString(getPlayerColor(t.Owner))
		}
	}
	sb.WriteByte(byte('A' + t.Owner%2))
	sb.WriteString(troopCode(t.Type))
	if t.Side == core.Back {
		sb.WriteByte('2')
	} else {
		sb.WriteByte('1')
	}
	if color {
		sb.WriteString(ColorReset)
	}
}

// troopCode is the first two letters of the troop name, padded
func troopCode(t core.TroopType) string {
	s := string(t)
	switch len(s) {
	case 0:
		return "  "
	case 1:
		return s + " "
	default:
		return s[:2]
	}
}

// getPlayerColor returns the color for the given player ID
func getPlayerColor(playerID int) string {
	if playerID < 0 || playerID >= len(playerColors) {
		return ColorWhite
	}
	return playerColors[playerID]
}
