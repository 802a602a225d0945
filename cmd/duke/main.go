package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/config"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
)

// duke plays a random self-play game and prints the result. It is a
// smoke test for catalogs and rule variants.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	seed := flag.Uint64("seed", 0, "Seed for the tile bag and the random players (0 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Stop after this many plies (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	render := flag.Bool("render", false, "Print the board after every ply")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	overrides := map[string]interface{}{}
	if *seed != 0 {
		overrides["game.seed"] = *seed
	}
	if *maxTurns != -1 {
		overrides["game.max_turns"] = *maxTurns
	}
	if *logLevel != "" {
		overrides["logging.level"] = *logLevel
	}
	if *render {
		overrides["development.render_every_turn"] = true
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Msg("Invalid command line override")
		}
	}

	cfg := config.Get()
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug().Str("file", config.ConfigFilePath()).Str("env", *env).Msg("Config loaded")

	gameSeed := cfg.Game.Seed
	if gameSeed == 0 {
		gameSeed = uint64(time.Now().UnixNano())
	}

	if *watch {
		config.WatchConfig(log.Logger, func(c *config.Config) {
			setupLogging(c.Logging.Level, c.Logging.Format)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, gameSeed, cfg.Game.MaxTurns, cfg.Development.RenderEveryTurn); err != nil {
		log.Fatal().Err(err).Msg("Game aborted")
	}
}

func run(ctx context.Context, cfg *config.Config, seed uint64, maxTurns int, render bool) error {
	var cat *catalog.Catalog
	if cfg.Game.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.Game.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Logger:            log.Logger,
		Catalog:           cat,
		FirstPlayer:       cfg.Game.FirstPlayer,
		Seed:              seed,
		DrawPlyLimit:      cfg.Rules.DrawPlyLimit,
		DeadPositionCheck: cfg.Rules.DeadPositionCheck,
		FlipOnPlace:       cfg.Rules.FlipOnPlace,
		PullSafety:        cfg.Rules.PullSafetyFilter,
		LogEvents:         cfg.Development.LogEvents,
		ColorRender:       cfg.Development.ColorRender,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("game_id", engine.GameID()).
		Uint64("seed", seed).
		Int("max_turns", maxTurns).
		Msg("Starting self-play game")
	fmt.Printf("Initial board:\n%s\n", engine.Render())

	rng := rand.New(rand.NewSource(seed))
	for engine.Turn() < maxTurns && !engine.IsGameOver() {
		player := engine.CurrentPlayer()
		cs, err := engine.Choices(player)
		if err != nil {
			return err
		}
		choices := cs.Choices()
		if len(choices) == 0 {
			return fmt.Errorf("player %d has no choices in a live game", player)
		}

		result, err := engine.Submit(ctx, choices[rng.Intn(len(choices))])
		if err != nil {
			return err
		}

		if render {
			fmt.Printf("Turn %d: player %d %s\n", result.Turn, player, result.Choice.Describe())
			if result.Capture != nil {
				fmt.Printf("  captured %s on %s\n", result.Capture.Tile.Type, result.Capture.Position.Notation())
			}
			if result.Check {
				fmt.Printf("  player %d is in check\n", result.NextPlayer)
			}
			fmt.Println(engine.Render())
		}
	}

	fmt.Printf("Final board after %d plies:\n%s\n", engine.Turn(), engine.Render())
	if outcome := engine.Outcome(); outcome != nil {
		fmt.Printf("Game over: %s\n", outcome)
	} else {
		fmt.Printf("Stopped after %d plies without a result\n", maxTurns)
	}
	for player := 0; player < 2; player++ {
		fmt.Printf("Player %d captured %d tiles, %d left in bag\n",
			player, len(engine.Captured(player)), engine.Remaining(player))
	}
	return nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
