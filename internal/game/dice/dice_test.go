package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pokesim/internal/game/dice"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestSeededSource_Replays verifies two sources with one seed agree draw for draw.
func TestSeededSource_Replays(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		bounds := rapid.SliceOfN(rapid.IntRange(1, 1000), 1, 50).Draw(rt, "bounds")
		a, b := dice.NewSeededSource(seed), dice.NewSeededSource(seed)
		for _, n := range bounds {
			va := a.Intn(n)
			assert.Equal(rt, va, b.Intn(n))
			assert.GreaterOrEqual(rt, va, 0)
			assert.Less(rt, va, n)
		}
		assert.Equal(rt, seed, a.Seed())
	})
}

func TestSeededSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestChance(t *testing.T) {
	assert.True(t, dice.Chance(fixedSrc{val: 99}, 100))
	assert.False(t, dice.Chance(fixedSrc{val: 0}, 0))
	assert.True(t, dice.Chance(fixedSrc{val: 29}, 30))
	assert.False(t, dice.Chance(fixedSrc{val: 30}, 30))
}

func TestLoggedSource_LogsEachDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := dice.NewLoggedSource(fixedSrc{val: 3}, zap.New(core))
	assert.Equal(t, 3, src.Intn(16))
	assert.Equal(t, 3, src.Intn(4))
	assert.Equal(t, 2, src.Draws())
	entries := logs.FilterMessage("dice roll").All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, int64(16), entries[0].ContextMap()["n"])
	}
}

func TestNewSeed_Varies(t *testing.T) {
	assert.NotEqual(t, dice.NewSeed(), dice.NewSeed())
}
