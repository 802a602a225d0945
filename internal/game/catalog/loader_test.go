package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

func TestDefault_LoadsEveryTroop(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	expected := []core.TroopType{
		"Assassin", "Bowman", "Champion", "Dragoon", core.Duke, core.Footman, "General",
		"Knight", "Longbowman", "Marshall", "Pikeman", "Priest", "Ranger", "Seer", "Wizard",
	}
	assert.Equal(t, expected, c.Types())

	for _, tt := range c.Types() {
		for _, side := range []core.Side{core.Front, core.Back} {
			rules, err := c.Rules(tt, side)
			require.NoError(t, err, "%s %s", tt, side)
			assert.NotEmpty(t, rules, "%s %s", tt, side)
		}
	}
}

func TestDefault_DukeTable(t *testing.T) {
	c := MustDefault()

	front, err := c.Rules(core.Duke, core.Front)
	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Offset: Offset{DX: -1, DY: 0}, Kind: Slide},
		{Offset: Offset{DX: 1, DY: 0}, Kind: Slide},
	}, front)

	back, err := c.Rules(core.Duke, core.Back)
	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Offset: Offset{DX: 0, DY: 1}, Kind: Slide},
		{Offset: Offset{DX: 0, DY: -1}, Kind: Slide},
	}, back)
}

func TestDefault_CommandDestinations(t *testing.T) {
	c := MustDefault()
	rules, err := c.Rules("General", core.Front)
	require.NoError(t, err)

	var commands []Rule
	for _, r := range rules {
		if r.Kind == Command {
			commands = append(commands, r)
		} else {
			assert.Empty(t, r.Destinations, "%s", r)
		}
	}
	require.Len(t, commands, 5)
	for _, r := range commands {
		assert.Len(t, r.Destinations, 5)
		assert.Contains(t, r.Destinations, r.Offset)
	}
}

func TestLoad_MissingSidesAggregated(t *testing.T) {
	doc := `
troops:
  Duke:
    side1:
      - {file: b, rank: 3, move: SLIDE}
  Footman:
    side2:
      - {file: c, rank: 4, move: MOVE}
`
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogMissing)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "unknown kind",
			doc: `
troops:
  Duke:
    side1: [{file: b, rank: 3, move: TELEPORT}]
    side2: [{file: c, rank: 4, move: SLIDE}]
`,
			wantErr: ErrUnknownKind,
		},
		{
			name: "square off grid",
			doc: `
troops:
  Duke:
    side1: [{file: f, rank: 3, move: SLIDE}]
    side2: [{file: c, rank: 4, move: SLIDE}]
`,
			wantErr: ErrBadSquare,
		},
		{
			name: "centre square",
			doc: `
troops:
  Duke:
    side1: [{file: c, rank: 3, move: MOVE}]
    side2: [{file: c, rank: 4, move: SLIDE}]
`,
			wantErr: ErrBadSquare,
		},
		{
			name: "no duke",
			doc: `
troops:
  Footman:
    side1: [{file: c, rank: 4, move: MOVE}]
    side2: [{file: c, rank: 5, move: MOVE}]
`,
			wantErr: ErrCatalogMissing,
		},
		{
			name: "unknown starting troop",
			doc: `
starting: [Duke, Knight]
troops:
  Duke:
    side1: [{file: b, rank: 3, move: SLIDE}]
    side2: [{file: c, rank: 4, move: SLIDE}]
`,
			wantErr: ErrCatalogMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	doc := `
troops:
  Duke:
    side3: []
`
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	doc := `
troops:
  Duke:
    side1: [{file: b, rank: 3, move: SLIDE}]
    side2: [{file: c, rank: 4, move: SLIDE}]
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []core.TroopType{core.Duke}, c.StartingTroops())
	assert.Equal(t, 1, c.Count(core.Duke))
	assert.Empty(t, c.BagContents())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `
starting: [Duke]
troops:
  Duke:
    count: 1
    side1: [{file: b, rank: 3, move: SLIDE}, {file: d, rank: 3, move: SLIDE}]
    side2: [{file: c, rank: 4, move: SLIDE}]
  Footman:
    count: 2
    side1: [{file: c, rank: 4, move: MOVE}]
    side2: [{file: c, rank: 5, move: JUMP SLIDE}]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, c.Has(core.Footman))
	assert.Equal(t, []core.TroopType{core.Footman, core.Footman}, c.BagContents())

	rules, err := c.Rules(core.Footman, core.Back)
	require.NoError(t, err)
	assert.Equal(t, JumpSlide, rules[0].Kind)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
