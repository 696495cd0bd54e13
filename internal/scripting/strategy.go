package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/dice"
)

// ChooseMoveHook is the Lua global a strategy script must define:
//
//	function choose_move(self, foe, turn) return slot end
//
// slot is 1-based. self carries a moves list; foe does not.
const ChooseMoveHook = "choose_move"

// Strategy is a battle.MoveSelector backed by a loaded Lua script. Each
// Strategy runs the script in its own VM, so globals a script keeps between
// turns belong to one battle only. When the script errors, exceeds its
// budget, or returns anything but a slot in [1, battle.MovesPerPokemon], the
// choice falls back to battle.RandomSelector.
//
// A Strategy serves one battle; Close it when the battle ends.
type Strategy struct {
	name     string
	mgr      *Manager
	vm       *vm
	fallback battle.MoveSelector
}

// Strategy starts a private instance of a loaded strategy.
//
// Postcondition: Returns a non-nil Strategy or an error wrapping ErrUnknownStrategy.
func (m *Manager) Strategy(name string) (*Strategy, error) {
	m.mu.RLock()
	proto, ok := m.protos[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	v, err := m.newVM(proto)
	if err != nil {
		return nil, fmt.Errorf("scripting: starting strategy %q: %w", name, err)
	}
	return &Strategy{name: name, mgr: m, vm: v, fallback: battle.RandomSelector{}}, nil
}

// Name returns the strategy name.
func (s *Strategy) Name() string { return s.name }

// Close releases the strategy's VM. Later choices fall back to random.
func (s *Strategy) Close() { s.vm.close() }

// SelectMove implements battle.MoveSelector.
func (s *Strategy) SelectMove(v battle.View, src dice.Source) int {
	ret, err := s.mgr.invoke(s.vm, s.name, ChooseMoveHook, src, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{combatantTable(L, v.Self), combatantTable(L, v.Foe), lua.LNumber(v.Turn)}
	})
	if err == nil {
		if n, ok := ret.(lua.LNumber); ok {
			slot := int(n)
			if float64(slot) == float64(n) && slot >= 1 && slot <= battle.MovesPerPokemon {
				return slot - 1
			}
		}
	}
	s.mgr.logger.Warn("scripting: strategy gave no usable move, choosing randomly",
		zap.String("strategy", s.name),
		zap.Int("turn", v.Turn),
		zap.String("returned", ret.String()),
		zap.Error(err),
	)
	return s.fallback.SelectMove(v, src)
}

// combatantTable converts a view to a Lua table.
func combatantTable(L *lua.LState, c battle.CombatantView) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(c.Name))
	t.RawSetString("level", lua.LNumber(c.Level))
	t.RawSetString("hp", lua.LNumber(c.HP))
	t.RawSetString("max_hp", lua.LNumber(c.MaxHP))
	t.RawSetString("status", lua.LString(c.Status.String()))
	t.RawSetString("speed", lua.LNumber(c.Speed))
	types := L.NewTable()
	for _, ty := range c.Types {
		types.Append(lua.LString(ty))
	}
	t.RawSetString("types", types)

	if c.Moves != nil {
		moves := L.NewTable()
		for _, m := range c.Moves {
			mt := L.NewTable()
			mt.RawSetString("slot", lua.LNumber(m.Slot+1))
			mt.RawSetString("name", lua.LString(m.Name))
			mt.RawSetString("type", lua.LString(m.Type))
			mt.RawSetString("category", lua.LString(m.Category))
			mt.RawSetString("power", lua.LNumber(m.Power))
			if m.Accuracy != nil {
				mt.RawSetString("accuracy", lua.LNumber(*m.Accuracy))
			}
			mt.RawSetString("pp", lua.LNumber(m.PP))
			mt.RawSetString("max_pp", lua.LNumber(m.MaxPP))
			mt.RawSetString("inflicts", lua.LString(m.Inflicts.String()))
			moves.Append(mt)
		}
		t.RawSetString("moves", moves)
	}
	return t
}

// RandomStrategy names the built-in uniform policy; it needs no script.
const RandomStrategy = "random"

// Selector resolves a strategy name for a battle side. "" and RandomStrategy
// give battle.RandomSelector; any other name must be loaded.
//
// Postcondition: Returns a non-nil selector or an error wrapping ErrUnknownStrategy.
func (m *Manager) Selector(name string) (battle.MoveSelector, error) {
	if name == "" || name == RandomStrategy {
		return battle.RandomSelector{}, nil
	}
	return m.Strategy(name)
}
