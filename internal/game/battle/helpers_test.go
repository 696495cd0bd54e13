package battle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// fixedSrc returns v % n for every draw.
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int { return f.v % n }

// seqSrc returns scripted values in order and fails the test when a value
// is out of range or the script runs out.
type seqSrc struct {
	t    *testing.T
	vals []int
}

func (s *seqSrc) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.vals, "unexpected roll Intn(%d)", n)
	v := s.vals[0]
	s.vals = s.vals[1:]
	require.Less(s.t, v, n, "scripted value out of range for Intn(%d)", n)
	return v
}

func acc(v int) *int { return &v }

func testSpecies() []pokedex.Species {
	return []pokedex.Species{
		{Name: "pikachu", Types: []typechart.Type{typechart.Electric}, Base: stats.Base{HP: 35, Attack: 55, Defense: 40, SpAtk: 50, SpDef: 50, Speed: 90}},
		{Name: "squirtle", Types: []typechart.Type{typechart.Water}, Base: stats.Base{HP: 44, Attack: 48, Defense: 65, SpAtk: 50, SpDef: 64, Speed: 43}},
		{Name: "geodude", Types: []typechart.Type{typechart.Rock, typechart.Ground}, Base: stats.Base{HP: 40, Attack: 80, Defense: 100, SpAtk: 30, SpDef: 30, Speed: 20}},
		{Name: "gengar", Types: []typechart.Type{typechart.Ghost, typechart.Poison}, Base: stats.Base{HP: 60, Attack: 65, Defense: 60, SpAtk: 130, SpDef: 75, Speed: 110}},
		{Name: "snorlax", Types: []typechart.Type{typechart.Normal}, Base: stats.Base{HP: 160, Attack: 110, Defense: 65, SpAtk: 65, SpDef: 110, Speed: 30}},
		{Name: "dragonite", Types: []typechart.Type{typechart.Dragon, typechart.Flying}, Base: stats.Base{HP: 91, Attack: 134, Defense: 95, SpAtk: 100, SpDef: 100, Speed: 80}},
	}
}

func testMoves() []move.Definition {
	return []move.Definition{
		{Name: "thunderbolt", Type: typechart.Electric, Power: 90, Accuracy: acc(100), MaxPP: 15, Category: move.Special, Effect: &move.Effect{Condition: status.Paralysis, Chance: 10}},
		{Name: "thunder-wave", Type: typechart.Electric, Accuracy: acc(90), MaxPP: 20, Category: move.StatusCategory, Effect: &move.Effect{Condition: status.Paralysis, Chance: 100}},
		{Name: "tackle", Type: typechart.Normal, Power: 40, Accuracy: acc(100), MaxPP: 35, Category: move.Physical},
		{Name: "quick-tap", Type: typechart.Normal, Power: 10, MaxPP: 1, Category: move.Physical},
		{Name: "will-o-wisp", Type: typechart.Fire, Accuracy: acc(85), MaxPP: 15, Category: move.StatusCategory, Effect: &move.Effect{Condition: status.Burn, Chance: 100}},
		{Name: "toxic", Type: typechart.Poison, Accuracy: acc(90), MaxPP: 10, Category: move.StatusCategory, Effect: &move.Effect{Condition: status.Poison, Chance: 100}},
		{Name: "double-edge", Type: typechart.Normal, Power: 120, Accuracy: acc(100), MaxPP: 15, Category: move.Physical, Recoil: &move.Recoil{Basis: move.RecoilDamage, Numerator: 1, Denominator: 3}},
		{Name: "water-gun", Type: typechart.Water, Power: 40, Accuracy: acc(100), MaxPP: 25, Category: move.Special},
		{Name: "ice-beam", Type: typechart.Ice, Power: 90, Accuracy: acc(100), MaxPP: 10, Category: move.Special},
		{Name: "earthquake", Type: typechart.Ground, Power: 100, Accuracy: acc(100), MaxPP: 10, Category: move.Physical},
	}
}

func testDex(t *testing.T) *pokedex.Registry {
	t.Helper()
	reg, err := pokedex.NewRegistry(testSpecies(), testMoves())
	require.NoError(t, err)
	return reg
}

func mon(t *testing.T, dex *pokedex.Registry, side battle.Side, species string, level int, moves ...string) *battle.Pokemon {
	t.Helper()
	sp, ok := dex.Species(species)
	require.True(t, ok, species)
	var set [battle.MovesPerPokemon]move.Definition
	for i := range set {
		name := moves[i%len(moves)]
		mv, ok := dex.Move(name)
		require.True(t, ok, name)
		set[i] = mv
	}
	return battle.NewPokemon(side, sp, level, set)
}

func combatant(name string, level int, moves ...string) battle.CombatantConfig {
	return battle.CombatantConfig{Name: name, Level: level, Moves: moves}
}
