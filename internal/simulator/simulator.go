// Package simulator runs a complete battle from a request: it picks the seed,
// resolves each side's strategy, runs the engine and summarizes the result.
package simulator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/dice"
	"github.com/cory-johannsen/pokesim/internal/observability"
)

// Selectors resolves a strategy name to a move selector.
type Selectors interface {
	Selector(name string) (battle.MoveSelector, error)
}

// Request describes one battle to simulate.
type Request struct {
	Config battle.Config
	// Seed replays a previous battle when set; otherwise a fresh seed is drawn.
	Seed      *uint64
	Strategy1 string
	Strategy2 string
}

// Outcome is a finished simulation.
type Outcome struct {
	ID      uuid.UUID      `json:"id"`
	Seed    uint64         `json:"seed"`
	Result  battle.Result  `json:"result"`
	Summary battle.Summary `json:"summary"`
}

// Simulator is safe for concurrent use when its Selectors are.
type Simulator struct {
	engine    *battle.Engine
	selectors Selectors
	logger    *zap.Logger
	newSeed   func() uint64
	fallback  string
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDefaultStrategy names the strategy used for a side whose request names none.
func WithDefaultStrategy(name string) Option {
	return func(s *Simulator) { s.fallback = name }
}

// New creates a Simulator.
//
// Precondition: engine and selectors must be non-nil; a nil logger disables logging.
func New(engine *battle.Engine, selectors Selectors, logger *zap.Logger, opts ...Option) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{engine: engine, selectors: selectors, logger: logger, newSeed: dice.NewSeed}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run simulates req to completion.
//
// Postcondition: Returns an Outcome for a Terminal battle, or an error wrapping
// battle.ErrInvalidConfig, battle.ErrMissingData, an unknown strategy, or ctx.Err().
func (s *Simulator) Run(ctx context.Context, req Request) (Outcome, error) {
	sel1, err := s.selectors.Selector(s.strategy(req.Strategy1))
	if err != nil {
		return Outcome{}, fmt.Errorf("pokemon1 strategy: %w", err)
	}
	sel2, err := s.selectors.Selector(s.strategy(req.Strategy2))
	if err != nil {
		release(sel1)
		return Outcome{}, fmt.Errorf("pokemon2 strategy: %w", err)
	}
	defer release(sel1, sel2)

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	id := uuid.New()
	logger := observability.BattleLogger(s.logger, id.String(), seed)
	src := dice.NewLoggedSource(dice.NewSeededSource(seed), logger)

	b, err := s.engine.WithLogger(logger).Setup(req.Config, src)
	if err != nil {
		return Outcome{}, err
	}
	b.SetSelector(battle.Side1, sel1)
	b.SetSelector(battle.Side2, sel2)

	res, err := b.Run(ctx)
	if err != nil {
		return Outcome{}, err
	}
	logger.Debug("battle rolls", zap.Int("draws", src.Draws()))
	return Outcome{ID: id, Seed: seed, Result: res, Summary: battle.Summarize(res)}, nil
}

// closer is implemented by selectors that hold per-battle resources.
type closer interface {
	Close()
}

func release(sels ...battle.MoveSelector) {
	for _, sel := range sels {
		if c, ok := sel.(closer); ok {
			c.Close()
		}
	}
}

func (s *Simulator) strategy(name string) string {
	if name == "" {
		return s.fallback
	}
	return name
}
