package status

import "fmt"

// ParalysisFailChance is the one-in-N chance a paralyzed combatant cannot act.
const ParalysisFailChance = 4

// Source is the subset of dice.Source used by the status rules.
type Source interface {
	Intn(n int) int
}

// Afflicted is the view of a combatant the status rules need.
type Afflicted interface {
	Name() string
	Status() Condition
	HP() int
	MaxHP() int
}

// Check is the outcome of a pre-move status gate.
type Check struct {
	Allowed bool
	// Message is non-empty only when the action was blocked.
	Message string
}

// PreMoveCheck gates an attempted action. Paralysis blocks the action with
// probability 1/ParalysisFailChance; the roll is drawn only when paralyzed.
//
// Precondition: a and src must be non-nil.
func PreMoveCheck(a Afflicted, src Source) Check {
	if a.Status() != Paralysis {
		return Check{Allowed: true}
	}
	if src.Intn(ParalysisFailChance) == 0 {
		return Check{Message: fmt.Sprintf("%s is fully paralyzed! It can't move!", a.Name())}
	}
	return Check{Allowed: true}
}

// Tick is the outcome of end-of-turn status damage.
type Tick struct {
	// Applied is false when the condition deals no residual damage, including
	// burn below 16 max hp and poison below 8.
	Applied bool
	Damage  int
	NewHP   int
	Message string
}

// ResidualDamage returns the end-of-turn damage for c at maxHP:
// burn floor(maxHP/16), poison floor(maxHP/8), otherwise 0.
func ResidualDamage(c Condition, maxHP int) int {
	switch c {
	case Burn:
		return maxHP / 16
	case Poison:
		return maxHP / 8
	default:
		return 0
	}
}

// EndOfTurnDamage computes residual damage for a. It does not mutate a.
//
// Postcondition: NewHP in [0, a.HP()].
func EndOfTurnDamage(a Afflicted) Tick {
	c := a.Status()
	if c != Burn && c != Poison {
		return Tick{NewHP: a.HP()}
	}
	dmg := ResidualDamage(c, a.MaxHP())
	if dmg > a.HP() {
		dmg = a.HP()
	}
	if dmg == 0 {
		return Tick{NewHP: a.HP()}
	}
	return Tick{
		Applied: true,
		Damage:  dmg,
		NewHP:   a.HP() - dmg,
		Message: fmt.Sprintf("%s is hurt by its %s! (-%d HP)", a.Name(), c, dmg),
	}
}

// EffectiveSpeed returns speed as used for turn order; paralysis halves it.
// The stored stat is never modified.
func EffectiveSpeed(speed int, c Condition) int {
	if c == Paralysis {
		return speed / 2
	}
	return speed
}

// AttackStat returns the attack stat used for damage; burn halves it for
// physical moves only.
func AttackStat(atk int, c Condition, physical bool) int {
	if physical && c == Burn {
		return atk / 2
	}
	return atk
}
