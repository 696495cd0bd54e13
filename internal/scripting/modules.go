package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// registerModules registers the engine table into v's LState:
//
//	engine.effectiveness(attack, defend1 [, defend2]) -> multiplier
//	engine.describe(multiplier) -> battle message
//	engine.random(n) -> integer in [1, n], drawn from the battle Source
//	engine.log.debug/info/warn/error(msg)
//
// Precondition: v.L must be from NewSandboxedState.
// Postcondition: engine global is defined in v.L.
func (m *Manager) registerModules(v *vm) {
	L := v.L
	engine := L.NewTable()

	L.SetField(engine, "effectiveness", L.NewFunction(func(L *lua.LState) int {
		attack, err := parseType(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		var defend []typechart.Type
		for i := 2; i <= 3; i++ {
			raw := L.OptString(i, "")
			if raw == "" {
				continue
			}
			t, err := typechart.Parse(raw)
			if err != nil {
				L.ArgError(i, err.Error())
				return 0
			}
			defend = append(defend, t)
		}
		L.Push(lua.LNumber(typechart.Effectiveness(attack, defend...)))
		return 1
	}))

	L.SetField(engine, "describe", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(typechart.Describe(float64(L.CheckNumber(1)))))
		return 1
	}))

	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "n must be >= 1")
			return 0
		}
		if v.src == nil {
			L.RaiseError("engine.random is only available during a battle")
			return 0
		}
		L.Push(lua.LNumber(v.src.Intn(n) + 1))
		return 1
	}))

	logTbl := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	L.SetGlobal("engine", engine)
}

// parseType accepts "" or "typeless" for the typeless Struggle.
func parseType(s string) (typechart.Type, error) {
	if s == "" || s == "typeless" {
		return typechart.Typeless, nil
	}
	return typechart.Parse(s)
}
