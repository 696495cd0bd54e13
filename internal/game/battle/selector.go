package battle

import (
	"github.com/cory-johannsen/pokesim/internal/game/dice"
	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// MoveView is the read-only view of one move slot.
type MoveView struct {
	Slot     int            `json:"slot"`
	Name     string         `json:"name"`
	Type     typechart.Type `json:"type"`
	Category move.Category  `json:"category"`
	Power    int            `json:"power"`
	Accuracy *int           `json:"accuracy,omitempty"`
	PP       int            `json:"pp"`
	MaxPP    int            `json:"max_pp"`
	// Inflicts is the status the move can cause, or None.
	Inflicts status.Condition `json:"inflicts,omitempty"`
}

// CombatantView is the read-only view of a combatant handed to selectors.
type CombatantView struct {
	Side   Side             `json:"side"`
	Name   string           `json:"name"`
	Level  int              `json:"level"`
	Types  []typechart.Type `json:"types"`
	HP     int              `json:"hp"`
	MaxHP  int              `json:"max_hp"`
	Status status.Condition `json:"status"`
	Speed  int              `json:"speed"`
	// Moves is populated for the selecting side only.
	Moves []MoveView `json:"moves,omitempty"`
}

// View is what a MoveSelector sees when choosing.
type View struct {
	Turn int
	Self CombatantView
	Foe  CombatantView
}

// Available returns the slots of Self that still have PP.
func (v View) Available() []int {
	var out []int
	for _, m := range v.Self.Moves {
		if m.PP > 0 {
			out = append(out, m.Slot)
		}
	}
	return out
}

// MoveSelector chooses which move slot a side uses this turn. A slot that is
// out of range or has no PP left resolves as Struggle.
type MoveSelector interface {
	SelectMove(v View, src dice.Source) int
}

// SelectorFunc adapts a function to MoveSelector.
type SelectorFunc func(v View, src dice.Source) int

// SelectMove calls f.
func (f SelectorFunc) SelectMove(v View, src dice.Source) int { return f(v, src) }

// RandomSelector picks uniformly among slots with PP left using one
// Intn(len(available)) draw, or slot 0 without drawing when none remain.
type RandomSelector struct{}

// SelectMove implements MoveSelector.
func (RandomSelector) SelectMove(v View, src dice.Source) int {
	avail := v.Available()
	if len(avail) == 0 {
		return 0
	}
	return avail[src.Intn(len(avail))]
}

// FixedSelector always picks Slot.
type FixedSelector struct {
	Slot int
}

// SelectMove implements MoveSelector.
func (f FixedSelector) SelectMove(View, dice.Source) int { return f.Slot }
