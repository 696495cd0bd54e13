// Package battle runs one-on-one turn-based battles: damage, status effects,
// turn order and the battle state machine.
package battle

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/dice"
)

// Engine builds battles from a Dex. It is immutable and safe for concurrent use.
type Engine struct {
	dex      Dex
	logger   *zap.Logger
	maxTurns int
}

// NewEngine creates an Engine.
//
// Precondition: dex must be non-nil. A nil logger disables logging;
// maxTurns <= 0 selects DefaultMaxTurns.
func NewEngine(dex Dex, logger *zap.Logger, maxTurns int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Engine{dex: dex, logger: logger, maxTurns: maxTurns}
}

// MaxTurns returns the engine's default turn cap.
func (e *Engine) MaxTurns() int { return e.maxTurns }

// WithLogger returns a copy of e whose battles log to logger.
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	cp := *e
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Setup validates cfg, builds both combatants at full hp and PP, and returns
// a Running battle that draws every roll from src. Both sides use
// RandomSelector until SetSelector is called.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a Running battle, or an error wrapping
// ErrInvalidConfig or ErrMissingData.
func (e *Engine) Setup(cfg Config, src dice.Source) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p1, err := buildPokemon(e.dex, Side1, cfg.Pokemon1)
	if err != nil {
		return nil, err
	}
	p2, err := buildPokemon(e.dex, Side2, cfg.Pokemon2)
	if err != nil {
		return nil, err
	}
	maxTurns := e.maxTurns
	if cfg.MaxTurns > 0 {
		maxTurns = cfg.MaxTurns
	}
	b := &Battle{
		mons:      [2]*Pokemon{p1, p2},
		src:       src,
		selectors: [2]MoveSelector{RandomSelector{}, RandomSelector{}},
		maxTurns:  maxTurns,
		state:     StateRunning,
		logger:    e.logger,
	}
	e.logger.Info("battle started",
		zap.String("pokemon1", p1.Name()),
		zap.Int("level1", p1.Level()),
		zap.String("pokemon2", p2.Name()),
		zap.Int("level2", p2.Level()),
		zap.Int("max_turns", maxTurns),
	)
	return b, nil
}
