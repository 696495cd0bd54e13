package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/api/rest"
	"github.com/cory-johannsen/pokesim/internal/config"
	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/scripting"
	"github.com/cory-johannsen/pokesim/internal/server"
	"github.com/cory-johannsen/pokesim/internal/simulator"
	"github.com/cory-johannsen/pokesim/internal/storage"
	"github.com/cory-johannsen/pokesim/internal/storage/memory"
	"github.com/cory-johannsen/pokesim/internal/storage/postgres"
)

func provideDex(cfg config.Config, logger *zap.Logger) (*pokedex.Registry, error) {
	start := time.Now()
	dex, err := pokedex.LoadDirectory(cfg.Dex.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading dex: %w", err)
	}
	logger.Info("dex loaded",
		zap.Int("species", len(dex.SpeciesNames())),
		zap.Int("moves", len(dex.MoveNames())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return dex, nil
}

func provideStrategies(cfg config.Config, logger *zap.Logger) (*scripting.Manager, func(), error) {
	mgr := scripting.NewManager(logger, cfg.Scripting.InstructionLimit)
	if err := mgr.LoadDir(cfg.Scripting.StrategyDir); err != nil {
		mgr.Close()
		return nil, nil, fmt.Errorf("loading strategies: %w", err)
	}
	logger.Info("strategies loaded", zap.Strings("strategies", mgr.Names()))
	return mgr, mgr.Close, nil
}

func provideStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	if !cfg.Database.Enabled {
		logger.Warn("database disabled, battles are kept in memory")
		return memory.New(), func() {}, nil
	}
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(start)),
	)
	return postgres.NewBattleRepository(pool.DB()), pool.Close, nil
}

func provideEngine(cfg config.Config, dex *pokedex.Registry, logger *zap.Logger) *battle.Engine {
	return battle.NewEngine(dex, logger, cfg.Battle.MaxTurns)
}

func provideSimulator(cfg config.Config, engine *battle.Engine, mgr *scripting.Manager, logger *zap.Logger) *simulator.Simulator {
	return simulator.New(engine, mgr, logger, simulator.WithDefaultStrategy(cfg.Battle.DefaultStrategy))
}

func provideRouter(ctx context.Context, cfg config.Config, sim *simulator.Simulator, store storage.Store, dex *pokedex.Registry, logger *zap.Logger) *gin.Engine {
	return rest.NewRouter(ctx, rest.Deps{
		Runner:    sim,
		Store:     store,
		Dex:       dex,
		Logger:    logger,
		RateLimit: cfg.HTTP.RateLimit,
		Burst:     cfg.HTTP.Burst,
	})
}

func provideLifecycle(cfg config.Config, router *gin.Engine, logger *zap.Logger) *server.Lifecycle {
	lc := server.NewLifecycle(logger)
	lc.Add("http", server.NewHTTPService(&http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}, logger))
	return lc
}
