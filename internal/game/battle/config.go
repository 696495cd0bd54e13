package battle

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
)

// DefaultMaxTurns bounds a battle when neither Config nor Engine sets a cap.
const DefaultMaxTurns = 100

// Dex is the reference data a battle is built from.
type Dex interface {
	Species(name string) (pokedex.Species, bool)
	Move(name string) (move.Definition, bool)
}

// CombatantConfig names one side's species, level and moveset.
type CombatantConfig struct {
	Name  string   `json:"name" yaml:"name"`
	Level int      `json:"level" yaml:"level"`
	Moves []string `json:"moves" yaml:"moves"`
}

// Config describes a one-on-one battle.
type Config struct {
	Pokemon1 CombatantConfig `json:"pokemon1" yaml:"pokemon1"`
	Pokemon2 CombatantConfig `json:"pokemon2" yaml:"pokemon2"`
	// MaxTurns overrides the engine's turn cap when > 0.
	MaxTurns int `json:"max_turns,omitempty" yaml:"max_turns"`
}

// Validate reports every structural problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []string
	for i, cc := range []CombatantConfig{c.Pokemon1, c.Pokemon2} {
		prefix := fmt.Sprintf("pokemon%d", i+1)
		if strings.TrimSpace(cc.Name) == "" {
			errs = append(errs, prefix+": name must not be empty")
		}
		if cc.Level < stats.MinLevel || cc.Level > stats.MaxLevel {
			errs = append(errs, fmt.Sprintf("%s: level must be %d-%d, got %d", prefix, stats.MinLevel, stats.MaxLevel, cc.Level))
		}
		if len(cc.Moves) != MovesPerPokemon {
			errs = append(errs, fmt.Sprintf("%s: must have exactly %d moves, got %d", prefix, MovesPerPokemon, len(cc.Moves)))
		}
		for j, m := range cc.Moves {
			if strings.TrimSpace(m) == "" {
				errs = append(errs, fmt.Sprintf("%s: move %d must not be empty", prefix, j+1))
			}
		}
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("max_turns must be >= 0, got %d", c.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

func buildPokemon(dex Dex, side Side, cc CombatantConfig) (*Pokemon, error) {
	sp, ok := dex.Species(cc.Name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown species %q", ErrMissingData, cc.Name)
	}
	if err := sp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}
	var moves [MovesPerPokemon]move.Definition
	for i, name := range cc.Moves {
		mv, ok := dex.Move(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown move %q for %s", ErrMissingData, name, sp.Name)
		}
		if err := mv.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
		}
		moves[i] = mv
	}
	return NewPokemon(side, sp, cc.Level, moves), nil
}
