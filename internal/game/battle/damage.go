package battle

import (
	"slices"

	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

const (
	// CritChance is the one-in-N chance a damaging move lands a critical hit.
	CritChance = 16
	// RandomScale is the denominator of DamageRoll.Random: a factor of 0.9234
	// is carried as 9234.
	RandomScale = 10000
	// MinRandom and MaxRandom bound DamageRoll.Random, [0.85, 1.00] scaled.
	MinRandom = 8500
	MaxRandom = RandomScale
)

// DamageRoll carries every random or chart-derived input to ComputeDamage so
// the formula itself is deterministic.
type DamageRoll struct {
	Critical bool
	// Effectiveness is the type multiplier: 0, 0.25, 0.5, 1, 2 or 4.
	Effectiveness float64
	// Random is the random factor times RandomScale, in [MinRandom, MaxRandom].
	Random int
}

// STAB reports whether mv shares a type with attacker. Typeless moves never do.
func STAB(attacker *Pokemon, mv move.Definition) bool {
	return mv.Type != typechart.Typeless && slices.Contains(attacker.Types(), mv.Type)
}

// ComputeDamage applies the damage formula:
//
//	base  = floor(floor((2L/5+2) * P * A / D) / 50) + 2
//	final = floor(base * stab * effectiveness * crit * random)
//
// with stab and crit 1.5 when they apply. The arithmetic is exact integer
// math over a common denominator so no float rounding can shift a point of
// damage. Burn halves A for physical moves.
//
// Postcondition: Returns 0 for status moves or immune targets, otherwise >= 1.
func ComputeDamage(attacker, defender *Pokemon, mv move.Definition, roll DamageRoll) int {
	if !mv.Category.Damaging() || mv.Power <= 0 || roll.Effectiveness <= 0 {
		return 0
	}
	physical := mv.Category == move.Physical
	atk, def := attacker.stats.SpAtk, defender.stats.SpDef
	if physical {
		atk, def = attacker.stats.Attack, defender.stats.Defense
	}
	atk = status.AttackStat(atk, attacker.Status(), physical)

	base := (2*attacker.level+10)*mv.Power*atk/(250*def) + 2

	num, den := base, 1
	if STAB(attacker, mv) {
		num, den = num*3, den*2
	}
	quarters := int(roll.Effectiveness*4 + 0.5)
	num, den = num*quarters, den*4
	if roll.Critical {
		num, den = num*3, den*2
	}
	num, den = num*roll.Random, den*RandomScale

	dmg := num / den
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
