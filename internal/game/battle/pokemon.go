package battle

import (
	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// MovesPerPokemon is the fixed moveset size.
const MovesPerPokemon = 4

// Side identifies which configured combatant a value refers to.
// The zero value means neither side.
type Side int

const (
	NoSide Side = iota
	Side1
	Side2
)

// Pokemon is one combatant's live battle state.
//
// Invariant: 0 <= hp <= stats.HP; pp[i] >= 0; stats never change after construction.
type Pokemon struct {
	side    Side
	species pokedex.Species
	level   int
	stats   stats.Stats
	hp      int
	status  status.Slot
	moves   [MovesPerPokemon]move.Definition
	pp      [MovesPerPokemon]int
}

// NewPokemon builds a combatant at full hp and full PP with stats computed once.
//
// Precondition: level in [stats.MinLevel, stats.MaxLevel]; sp and moves validated.
func NewPokemon(side Side, sp pokedex.Species, level int, moves [MovesPerPokemon]move.Definition) *Pokemon {
	st := stats.Compute(sp.Base, level)
	p := &Pokemon{
		side:    side,
		species: sp,
		level:   level,
		stats:   st,
		hp:      st.HP,
		moves:   moves,
	}
	for i, m := range moves {
		p.pp[i] = m.MaxPP
	}
	return p
}

// Side returns which side this combatant fights for.
func (p *Pokemon) Side() Side { return p.side }

// Name returns the species name.
func (p *Pokemon) Name() string { return p.species.Name }

// Level returns the battle level.
func (p *Pokemon) Level() int { return p.level }

// Types returns the species types.
func (p *Pokemon) Types() []typechart.Type { return p.species.Types }

// Stats returns a copy of the frozen battle stats.
func (p *Pokemon) Stats() stats.Stats { return p.stats }

// HP returns the current hp.
func (p *Pokemon) HP() int { return p.hp }

// MaxHP returns the max hp.
func (p *Pokemon) MaxHP() int { return p.stats.HP }

// Status returns the current status condition.
func (p *Pokemon) Status() status.Condition { return p.status.Condition() }

// Fainted reports whether hp has reached zero.
func (p *Pokemon) Fainted() bool { return p.hp == 0 }

// EffectiveSpeed is the speed used for turn order this turn.
func (p *Pokemon) EffectiveSpeed() int {
	return status.EffectiveSpeed(p.stats.Speed, p.Status())
}

// Move returns the move in slot.
func (p *Pokemon) Move(slot int) move.Definition { return p.moves[slot] }

// PP returns the remaining PP for slot.
func (p *Pokemon) PP(slot int) int { return p.pp[slot] }

// HasPP reports whether any move has PP left.
func (p *Pokemon) HasPP() bool {
	for _, v := range p.pp {
		if v > 0 {
			return true
		}
	}
	return false
}

// moveFor returns the move to execute for slot, substituting Struggle when
// slot is out of range or has no PP left.
func (p *Pokemon) moveFor(slot int) (move.Definition, bool) {
	if slot < 0 || slot >= MovesPerPokemon || p.pp[slot] == 0 {
		return move.Struggle, true
	}
	return p.moves[slot], false
}

func (p *Pokemon) usePP(slot int) {
	if p.pp[slot] <= 0 {
		invariant("%s: PP underflow on slot %d", p.Name(), slot)
	}
	p.pp[slot]--
}

// applyDamage lowers hp by amount, clamped at zero, and returns the hp actually lost.
func (p *Pokemon) applyDamage(amount int) int {
	if amount < 0 {
		invariant("%s: negative damage %d", p.Name(), amount)
	}
	if amount > p.hp {
		amount = p.hp
	}
	p.hp -= amount
	return amount
}

func (p *Pokemon) inflict(c status.Condition) bool {
	return p.status.Inflict(c)
}

func (p *Pokemon) snapshot() Snapshot {
	return Snapshot{
		Side:    p.side,
		Name:    p.Name(),
		HP:      p.hp,
		MaxHP:   p.stats.HP,
		Status:  p.Status(),
		Fainted: p.Fainted(),
	}
}

func (p *Pokemon) view(includeMoves bool) CombatantView {
	v := CombatantView{
		Side:   p.side,
		Name:   p.Name(),
		Level:  p.level,
		Types:  append([]typechart.Type(nil), p.species.Types...),
		HP:     p.hp,
		MaxHP:  p.stats.HP,
		Status: p.Status(),
		Speed:  p.EffectiveSpeed(),
	}
	if includeMoves {
		for i, m := range p.moves {
			mv := MoveView{
				Slot:     i,
				Name:     m.Name,
				Type:     m.Type,
				Category: m.Category,
				Power:    m.Power,
				Accuracy: m.Accuracy,
				PP:       p.pp[i],
				MaxPP:    m.MaxPP,
			}
			if m.Effect != nil {
				mv.Inflicts = m.Effect.Condition
			}
			v.Moves = append(v.Moves, mv)
		}
	}
	return v
}
