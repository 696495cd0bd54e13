package battle

import "github.com/cory-johannsen/pokesim/internal/game/dice"

// TurnOrder returns a and b ordered by effective speed, fastest first.
// An exact tie is broken by a fresh Intn(2) draw each turn; 0 puts a first.
//
// Precondition: a, b and src must be non-nil.
func TurnOrder(a, b *Pokemon, src dice.Source) [2]*Pokemon {
	sa, sb := a.EffectiveSpeed(), b.EffectiveSpeed()
	switch {
	case sa > sb:
		return [2]*Pokemon{a, b}
	case sb > sa:
		return [2]*Pokemon{b, a}
	case src.Intn(2) == 0:
		return [2]*Pokemon{a, b}
	default:
		return [2]*Pokemon{b, a}
	}
}
