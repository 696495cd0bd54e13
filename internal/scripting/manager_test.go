package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/pokesim/internal/scripting"
)

type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int { return f.v % n }

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core), 0)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func hasLevel(logs *observer.ObservedLogs, lvl zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == lvl {
			return true
		}
	}
	return false
}

func TestManager_LoadString_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("adder", `
		function test_hook(a, b)
			return a + b
		end
	`))
	ret, err := mgr.CallHook("adder", "test_hook", nil, lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("empty", `-- no functions`))
	ret, err := mgr.CallHook("empty", "nonexistent_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_UnknownStrategy(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret, err := mgr.CallHook("no_such_strategy", "choose_move", nil)
	assert.ErrorIs(t, err, scripting.ErrUnknownStrategy)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("bad", `
		function bad_hook()
			error("intentional error")
		end
	`))
	ret, err := mgr.CallHook("bad", "bad_hook", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel), "expected Warn log for Lua runtime error")
}

func TestManager_CallHook_BudgetIsPerCall(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core), 500)
	defer mgr.Close()
	require.NoError(t, mgr.LoadString("loop", `
		function spin() while true do end end
		function small() local s = 0 for i = 1, 10 do s = s + i end return s end
	`))
	for i := 0; i < 5; i++ {
		ret, err := mgr.CallHook("loop", "small", nil)
		require.NoError(t, err)
		assert.Equal(t, lua.LNumber(55), ret)
	}
	ret, err := mgr.CallHook("loop", "spin", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	ret, err = mgr.CallHook("loop", "small", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(55), ret, "an exhausted budget does not poison later calls")
}

func TestManager_LoadDir_NamesByFile(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`function who() return "b" end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`function who() return "a" end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0644))
	require.NoError(t, mgr.LoadDir(dir))
	assert.Equal(t, []string{"a", "b"}, mgr.Names())

	ret, err := mgr.CallHook("b", "who", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LString("b"), ret, "each file gets its own VM")
}

func TestManager_LoadDir_Missing(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir(filepath.Join(t.TempDir(), "nope")))
}

func TestManager_LoadString_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadString("broken", `this is not valid lua @@@@`))
	assert.False(t, mgr.Has("broken"))
}

func TestManager_Reload_Replaces(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("s", `function v() return 1 end`))
	require.NoError(t, mgr.LoadString("s", `function v() return 2 end`))
	ret, err := mgr.CallHook("s", "v", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(2), ret)
}

func TestEngineModule(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("mod", `
		function eff(a, d1, d2) return engine.effectiveness(a, d1, d2) end
		function desc(m) return engine.describe(m) end
		function roll(n) return engine.random(n) end
		function say() engine.log.info("hello from lua") end
	`))

	ret, err := mgr.CallHook("mod", "eff", nil, lua.LString("ground"), lua.LString("fire"), lua.LString("flying"))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(0), ret)

	ret, err = mgr.CallHook("mod", "eff", nil, lua.LString("ice"), lua.LString("dragon"), lua.LString("flying"))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(4), ret)

	ret, err = mgr.CallHook("mod", "eff", nil, lua.LString("typeless"), lua.LString("ghost"))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)

	ret, err = mgr.CallHook("mod", "desc", nil, lua.LNumber(2))
	require.NoError(t, err)
	assert.Equal(t, lua.LString("It's super effective!"), ret)

	ret, err = mgr.CallHook("mod", "roll", fixedSrc{2}, lua.LNumber(6))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(3), ret, "engine.random is 1-based")

	ret, err = mgr.CallHook("mod", "roll", nil, lua.LNumber(6))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret, "no Source outside a battle")

	_, err = mgr.CallHook("mod", "say", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("hello from lua").Len())
}

func TestEngineModule_UnknownTypeIsError(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("mod", `function eff() return engine.effectiveness("sound", "fire") end`))
	ret, err := mgr.CallHook("mod", "eff", nil)
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel))
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, 0)
	})
}

func TestManager_Close_ReleasesStrategies(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("s", `function get_x() return 1 end`))
	mgr.Close()
	_, err := mgr.CallHook("s", "get_x", nil)
	assert.ErrorIs(t, err, scripting.ErrUnknownStrategy)
	assert.Empty(t, mgr.Names())
}

func TestProperty_CallHookUnknownNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "name")
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		mgr.CallHook(name, hook, nil) //nolint:errcheck
	})
}

func TestCallHook_ConcurrentSameStrategy_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("conc", `
		function concurrent_hook(a, b)
			return a + b
		end
	`))

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				ret, err := mgr.CallHook("conc", "concurrent_hook", nil, lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		}()
	}
	wg.Wait()
}
