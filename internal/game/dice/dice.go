// Package dice provides the injectable randomness abstraction for the battle
// engine. Every random decision in a battle is drawn through a Source so a
// fixed seed replays the same battle.
package dice

// Source is the randomness provider for battle rolls.
//
// A Source is owned by a single battle and need not be safe for concurrent
// use unless documented otherwise.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Chance reports whether a percent-chance roll succeeds: Intn(100) < percent.
// No roll is drawn when percent >= 100 or percent <= 0.
func Chance(src Source, percent int) bool {
	switch {
	case percent >= 100:
		return true
	case percent <= 0:
		return false
	default:
		return src.Intn(100) < percent
	}
}
