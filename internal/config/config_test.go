package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  catalog_path: /tmp/troops.yaml
  seed: 1234
  max_turns: 80
rules:
  draw_ply_limit: 60
  flip_on_place: true
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "/tmp/troops.yaml", c.Game.CatalogPath)
	assert.Equal(t, uint64(1234), c.Game.Seed)
	assert.Equal(t, 80, c.Game.MaxTurns)
	assert.Equal(t, 60, c.Rules.DrawPlyLimit)
	assert.True(t, c.Rules.FlipOnPlace)
	assert.True(t, c.Rules.DeadPositionCheck, "unset keys keep their defaults")
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, "", c.Game.CatalogPath)
	assert.Equal(t, uint64(0), c.Game.Seed)
	assert.Equal(t, 500, c.Game.MaxTurns)
	assert.Equal(t, 100, c.Rules.DrawPlyLimit)
	assert.True(t, c.Rules.DeadPositionCheck)
	assert.False(t, c.Rules.FlipOnPlace)
	assert.False(t, c.Rules.PullSafetyFilter)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.False(t, c.Development.RenderEveryTurn)
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()

	t.Setenv("DUKE_RULES_DRAW_PLY_LIMIT", "40")
	t.Setenv("DUKE_RULES_PULL_SAFETY_FILTER", "true")
	t.Setenv("DUKE_GAME_SEED", "77")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 40, c.Rules.DrawPlyLimit)
	assert.True(t, c.Rules.PullSafetyFilter)
	assert.Equal(t, uint64(77), c.Game.Seed)
}

func TestInitRejectsInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("rules:\n  draw_ply_limit: 0\n"), 0644))

	resetGlobals()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules.draw_ply_limit")
}

func TestInitRejectsMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("rules: [draw_ply_limit: : 3\n  bad"), 0644))

	resetGlobals()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Game:    GameConfig{MaxTurns: 10},
			Rules:   RulesConfig{DrawPlyLimit: 100},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero max turns", func(c *Config) { c.Game.MaxTurns = 0 }, "game.max_turns"},
		{"bad first player", func(c *Config) { c.Game.FirstPlayer = 2 }, "game.first_player"},
		{"negative ply limit", func(c *Config) { c.Rules.DrawPlyLimit = -1 }, "rules.draw_ply_limit"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	require.NoError(t, Set("rules.draw_ply_limit", 30))
	require.NoError(t, Set("development.render_every_turn", true))

	c := Get()
	assert.Equal(t, 30, c.Rules.DrawPlyLimit)
	assert.True(t, c.Development.RenderEveryTurn)
}

func TestSetRejectsInvalidValue(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))
	require.NoError(t, Set("game.max_turns", 40))

	err := Set("game.max_turns", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.max_turns")

	assert.Equal(t, 40, Get().Game.MaxTurns)
	require.NoError(t, Set("logging.level", "debug"))
	assert.Equal(t, 40, Get().Game.MaxTurns, "rolled back key stays at its last good value")
	assert.Equal(t, "debug", Get().Logging.Level)
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  max_turns: 200
rules:
  draw_ply_limit: 100
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envConfig := filepath.Join(tmpDir, "config.ci.yaml")
	envContent := `
game:
  max_turns: 50
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(envConfig, []byte(envContent), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("ci"))

	c := Get()
	assert.Equal(t, 50, c.Game.MaxTurns)
	assert.Equal(t, "warn", c.Logging.Level)
	assert.Equal(t, 100, c.Rules.DrawPlyLimit)

	assert.NoError(t, LoadEnvironmentConfig(""), "empty env is a no-op")
}

func TestLoadEnvironmentConfigMissingOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	baseConfig := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(baseConfig, []byte("game:\n  max_turns: 70\n"), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("dev"), "a missing overlay is not an error")

	assert.Equal(t, 70, Get().Game.MaxTurns)
	assert.Equal(t, baseConfig, ConfigFilePath())
}

func TestLoadEnvironmentConfigRejectsMalformedOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.qa.yaml"), []byte("game: [max_turns: : 3\n  bad"), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(""))
	err := LoadEnvironmentConfig("qa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.qa.yaml")
}
