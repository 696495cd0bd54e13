package battle

import (
	"fmt"

	"github.com/cory-johannsen/pokesim/internal/game/dice"
	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// resolveMove executes actor's move in slot against target and appends the
// resulting events to the current turn.
//
// Rolls are drawn in this order: accuracy, critical, random factor, effect chance.
// Precondition: neither actor nor target has fainted; actor passed its pre-move check.
func (b *Battle) resolveMove(actor, target *Pokemon, slot int) {
	mv, struggling := actor.moveFor(slot)
	display := move.DisplayName(mv.Name)
	if struggling {
		b.emit(Event{
			Kind:    EventMoveUse,
			Side:    actor.side,
			Pokemon: actor.Name(),
			Move:    mv.Name,
			Message: fmt.Sprintf("%s has no moves left! %s used %s!", actor.Name(), actor.Name(), display),
		})
	} else {
		actor.usePP(slot)
		b.emit(Event{
			Kind:    EventMoveUse,
			Side:    actor.side,
			Pokemon: actor.Name(),
			Move:    mv.Name,
			Message: fmt.Sprintf("%s used %s!", actor.Name(), display),
		})
	}

	if mv.Accuracy != nil && !dice.Chance(b.src, *mv.Accuracy) {
		b.emit(Event{
			Kind:    EventMiss,
			Side:    actor.side,
			Pokemon: actor.Name(),
			Move:    mv.Name,
			Message: fmt.Sprintf("%s's attack missed!", actor.Name()),
		})
		return
	}
	b.emit(Event{
		Kind:    EventHit,
		Side:    actor.side,
		Pokemon: actor.Name(),
		Move:    mv.Name,
		Message: fmt.Sprintf("%s's %s hit %s!", actor.Name(), display, target.Name()),
	})

	eff := typechart.Effectiveness(mv.Type, target.Types()...)
	if eff == 0 {
		b.emitEffectiveness(actor, target, mv, eff, fmt.Sprintf("It doesn't affect %s...", target.Name()))
		return
	}

	if mv.Category.Damaging() {
		b.resolveDamage(actor, target, mv, eff)
	} else {
		b.resolveStatusMove(actor, target, mv)
	}

	b.checkFaint(target)
	b.checkFaint(actor)
}

func (b *Battle) resolveDamage(actor, target *Pokemon, mv move.Definition, eff float64) {
	crit := b.src.Intn(CritChance) == 0
	random := MinRandom + b.src.Intn(MaxRandom-MinRandom+1)
	dmg := ComputeDamage(actor, target, mv, DamageRoll{Critical: crit, Effectiveness: eff, Random: random})

	if eff != 1 {
		b.emitEffectiveness(actor, target, mv, eff, typechart.Describe(eff))
	}
	if crit {
		b.emit(Event{
			Kind:    EventCritical,
			Side:    actor.side,
			Pokemon: actor.Name(),
			Move:    mv.Name,
			Message: "A critical hit!",
		})
	}
	dealt := target.applyDamage(dmg)
	b.emit(Event{
		Kind:    EventDamage,
		Side:    target.side,
		Pokemon: target.Name(),
		By:      actor.Name(),
		Move:    mv.Name,
		Amount:  dealt,
		HPAfter: target.hp,
		Message: fmt.Sprintf("%s took %d damage! (%d/%d HP)", target.Name(), dealt, target.hp, target.MaxHP()),
	})

	if mv.Effect != nil && !target.Fainted() && target.Status() == status.None {
		if dice.Chance(b.src, mv.Effect.Chance) {
			b.inflict(actor, target, mv, mv.Effect.Condition)
		}
	}

	if mv.Recoil != nil {
		amt := mv.Recoil.Amount(dealt, actor.MaxHP())
		if amt > 0 {
			lost := actor.applyDamage(amt)
			b.emit(Event{
				Kind:    EventRecoil,
				Side:    actor.side,
				Pokemon: actor.Name(),
				Move:    mv.Name,
				Amount:  lost,
				HPAfter: actor.hp,
				Message: fmt.Sprintf("%s is damaged by recoil! (-%d HP)", actor.Name(), lost),
			})
		}
	}
}

// resolveStatusMove applies a status-category move. Only immunity, checked
// by the caller, can stop it before the effect roll.
func (b *Battle) resolveStatusMove(actor, target *Pokemon, mv move.Definition) {
	fail := func(msg string) {
		b.emit(Event{
			Kind:    EventStatusFailed,
			Side:    target.side,
			Pokemon: target.Name(),
			By:      actor.Name(),
			Move:    mv.Name,
			Message: msg,
		})
	}
	switch {
	case mv.Effect == nil:
		fail("But nothing happened!")
	case target.Status() != status.None:
		fail(fmt.Sprintf("But it failed! %s is already %s.", target.Name(), target.Status().Verb()))
	case !dice.Chance(b.src, mv.Effect.Chance):
		fail("But it failed!")
	default:
		b.inflict(actor, target, mv, mv.Effect.Condition)
	}
}

func (b *Battle) inflict(actor, target *Pokemon, mv move.Definition, c status.Condition) {
	if !target.inflict(c) {
		return
	}
	b.emit(Event{
		Kind:      EventStatusInflicted,
		Side:      target.side,
		Pokemon:   target.Name(),
		By:        actor.Name(),
		Move:      mv.Name,
		Condition: c,
		Message:   fmt.Sprintf("%s was %s!", target.Name(), c.Verb()),
	})
}

func (b *Battle) emitEffectiveness(actor, target *Pokemon, mv move.Definition, eff float64, msg string) {
	m := eff
	b.emit(Event{
		Kind:       EventEffectiveness,
		Side:       target.side,
		Pokemon:    target.Name(),
		By:         actor.Name(),
		Move:       mv.Name,
		Multiplier: &m,
		Message:    msg,
	})
}

// checkFaint emits a faint event the first time p is seen at zero hp.
func (b *Battle) checkFaint(p *Pokemon) {
	if !p.Fainted() || b.fainted[p.side-1] {
		return
	}
	b.fainted[p.side-1] = true
	b.emit(Event{
		Kind:    EventFaint,
		Side:    p.side,
		Pokemon: p.Name(),
		Message: fmt.Sprintf("%s fainted!", p.Name()),
	})
}
