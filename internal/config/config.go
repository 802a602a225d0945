package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Rules       RulesConfig       `mapstructure:"rules"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds match setup settings
type GameConfig struct {
	// CatalogPath points at a YAML movement catalog. Empty uses the built-in one.
	CatalogPath string `mapstructure:"catalog_path"`
	// Seed drives the tile bag. Zero seeds from the clock.
	Seed        uint64 `mapstructure:"seed"`
	MaxTurns    int    `mapstructure:"max_turns"`
	FirstPlayer int    `mapstructure:"first_player"`
}

// RulesConfig holds rule variants
type RulesConfig struct {
	DrawPlyLimit      int  `mapstructure:"draw_ply_limit"`
	DeadPositionCheck bool `mapstructure:"dead_position_check"`
	FlipOnPlace       bool `mapstructure:"flip_on_place"`
	PullSafetyFilter  bool `mapstructure:"pull_safety_filter"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	RenderEveryTurn bool `mapstructure:"render_every_turn"`
	ColorRender     bool `mapstructure:"color_render"`
	LogEvents       bool `mapstructure:"log_events"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.catalog_path", "")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_turns", 500)
	v.SetDefault("game.first_player", 0)

	v.SetDefault("rules.draw_ply_limit", 100)
	v.SetDefault("rules.dead_position_check", true)
	v.SetDefault("rules.flip_on_place", false)
	v.SetDefault("rules.pull_safety_filter", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.render_every_turn", false)
	v.SetDefault("development.color_render", true)
	v.SetDefault("development.log_events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/duke")
	}

	// DUKE_RULES_DRAW_PLY_LIMIT overrides rules.draw_ply_limit
	v.SetEnvPrefix("DUKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// isNotFound reports a missing config file. Viper signals it differently
// for searched and explicit paths.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	base := v.ConfigFileUsed()

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if isNotFound(err) {
			// keep watching the base file
			v.SetConfigFile(base)
			return nil
		}
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set overrides one key at runtime. An override that fails Validate is
// rolled back and the current config is left as it was.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)

	next := &Config{}
	err := v.Unmarshal(next)
	if err == nil {
		err = Validate(next)
	}
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	cfg = next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange only sees
// a reloaded config that passed Validate.
func WatchConfig(logger zerolog.Logger, onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			logger.Error().Err(err).Str("file", e.Name).Msg("Failed to decode reloaded config")
			return
		}
		if err := Validate(next); err != nil {
			logger.Error().Err(err).Str("file", e.Name).Msg("Reloaded config is invalid, keeping previous")
			return
		}
		cfg = next
		logger.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config reloaded")
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive")
	}
	if c.Game.FirstPlayer != 0 && c.Game.FirstPlayer != 1 {
		return fmt.Errorf("game.first_player must be 0 or 1")
	}

	if c.Rules.DrawPlyLimit <= 0 {
		return fmt.Errorf("rules.draw_ply_limit must be positive")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
