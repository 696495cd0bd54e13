package battle

import "github.com/cory-johannsen/pokesim/internal/game/status"

// Afflict gives external tests the Setup-free path to a status condition.
func Afflict(p *Pokemon, c status.Condition) bool { return p.inflict(c) }
