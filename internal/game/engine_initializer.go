package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/bag"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/catalog"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/rules"
	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/states"
)

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, fmt.Errorf("engine defaults: %w", err)
	}

	board, err := ei.setupBoard()
	if err != nil {
		return nil, fmt.Errorf("board setup failed: %w", err)
	}

	engine := ei.createEngine(board)

	ei.setupEventHandling(engine)

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		engine.gs.CurrentPlayer,
		engine.tiles.Remaining(0),
		len(board.TilesOf(0)),
	))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("first_player", engine.gs.CurrentPlayer).
		Int("bag_size", engine.tiles.Remaining(0)).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.Catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return err
		}
		ei.config.Catalog = cat
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	if !core.IsValidPlayer(ei.config.FirstPlayer) {
		return core.WrapPlayerError(ei.config.FirstPlayer, "first to move", core.ErrInvalidPlayer)
	}

	if ei.config.TileSource == nil {
		seed := ei.config.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
			ei.logger.Debug().Uint64("seed", seed).Msg("No seed provided, seeding bag from clock")
		}
		ei.config.TileSource = bag.New(ei.config.Catalog.BagContents(), seed, ei.config.Logger)
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus(ei.config.Logger)
	}
	return nil
}

// setupBoard builds the standard layout or validates an injected board
func (ei *EngineInitializer) setupBoard() (*core.Board, error) {
	if ei.config.Board == nil {
		return StandardBoard(ei.config.Catalog)
	}
	board := ei.config.Board.Clone()
	if err := validateBoard(board, ei.config.Catalog); err != nil {
		return nil, err
	}
	return board, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(board *core.Board) *Engine {
	gameContext := states.NewGameContext(ei.config.GameID, ei.logger)
	gameContext.CurrentPlayer = ei.config.FirstPlayer

	opts := rules.Options{
		PullSafety:  ei.config.PullSafety,
		FlipOnPlace: ei.config.FlipOnPlace,
	}

	engine := &Engine{
		gs: &GameState{
			Board:         board,
			CurrentPlayer: ei.config.FirstPlayer,
		},
		calc: rules.NewChoiceCalculator(ei.config.Catalog, opts, ei.logger),
		winCondition: rules.NewWinConditionChecker(
			ei.logger,
			ei.config.Catalog,
			ei.config.DrawPlyLimit,
			ei.config.DeadPositionCheck,
		),
		tiles:        ei.config.TileSource,
		eventBus:     ei.config.EventBus,
		stateMachine: states.NewStateMachine(gameContext, ei.config.EventBus),
		gameID:       ei.config.GameID,
		colorRender:  ei.config.ColorRender,
		logger:       ei.logger,
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}

// setupEventHandling attaches the optional event logger
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	if !ei.config.LogEvents {
		return
	}
	sub := subscribers.NewLoggerSubscriber("engine-"+engine.gameID, ei.config.Logger, zerolog.DebugLevel)
	engine.eventBus.Subscribe(sub)
}

// initializeStateMachine computes the opening choice sets and leaves Setup.
// An injected board may already be decided.
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	stateMachine := engine.stateMachine

	if err := engine.recompute(); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to compute opening choices")
		return err
	}

	if over := engine.checkGameOver(core.Opponent(engine.gs.CurrentPlayer)); over != nil {
		stateMachine.GetContext().SetOutcome(*over)
		if err := stateMachine.TransitionTo(states.PhaseGameOver, "decided at setup: "+over.String()); err != nil {
			ei.logger.Error().Err(err).Msg("Failed to transition to GameOver state")
			return err
		}
		return nil
	}

	if err := stateMachine.TransitionTo(states.PhaseAwaitingChoice, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to AwaitingChoice state")
		return err
	}
	return nil
}
