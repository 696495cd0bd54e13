package scripting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/dice"
)

// ErrUnknownStrategy is returned when a strategy name has no loaded VM.
var ErrUnknownStrategy = errors.New("unknown strategy")

// vm is one strategy's Lua state. The mutex serializes calls; src is the
// battle Source for the call in progress and nil otherwise.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel func()
	src    dice.Source
}

// Manager owns one sandboxed LState per strategy and exposes hook dispatch.
// It also keeps each strategy's compiled chunk so a battle can get a private
// VM with fresh globals (see Strategy).
//
// Manager is safe for concurrent CallHook after all Load calls complete.
// Each VM is single-threaded; its mutex serializes concurrent calls to the
// same strategy while different strategies run concurrently.
type Manager struct {
	mu        sync.RWMutex
	vms       map[string]*vm
	protos    map[string]*lua.FunctionProto
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil; instLimit <= 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager with no strategies loaded.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:       make(map[string]*vm),
		protos:    make(map[string]*lua.FunctionProto),
		instLimit: instLimit,
		logger:    logger,
	}
}

// LoadDir loads every *.lua file in dir as its own strategy, named after the
// file without its extension, in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the first load error; earlier files stay loaded.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading strategy dir %q: %w", dir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	for _, path := range luaFiles {
		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		if err := m.LoadFile(name, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile compiles path, creates a sandboxed VM for name, registers the
// engine module and executes the chunk. A previously loaded strategy of the
// same name is replaced.
//
// Precondition: name must be non-empty.
// Postcondition: Strategy is registered; returns error on Lua load failure.
func (m *Manager) LoadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}
	defer f.Close()
	return m.load(name, path, f)
}

// LoadString is LoadFile for in-memory source.
func (m *Manager) LoadString(name, src string) error {
	return m.load(name, "<"+name+">", strings.NewReader(src))
}

func (m *Manager) load(name, chunkName string, r io.Reader) error {
	if name == "" {
		return errors.New("scripting: strategy name must not be empty")
	}
	proto, err := compile(chunkName, r)
	if err != nil {
		return fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}
	v, err := m.newVM(proto)
	if err != nil {
		return fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}

	m.mu.Lock()
	if old, ok := m.vms[name]; ok {
		old.close()
	}
	m.vms[name] = v
	m.protos[name] = proto
	m.mu.Unlock()
	m.logger.Debug("scripting: strategy loaded", zap.String("strategy", name))
	return nil
}

func compile(chunkName string, r io.Reader) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(r, chunkName)
	if err != nil {
		return nil, err
	}
	return lua.Compile(chunk, chunkName)
}

// newVM runs proto's top level in a new sandboxed state.
func (m *Manager) newVM(proto *lua.FunctionProto) (*vm, error) {
	L, cancel := NewSandboxedState(m.instLimit)
	v := &vm{L: L, cancel: cancel}
	m.registerModules(v)

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		cancel()
		L.Close()
		return nil, err
	}
	L.SetTop(0)
	return v, nil
}

// Names returns the loaded strategy names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vms))
	for n := range m.vms {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Has reports whether name is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[name]
	return ok
}

// CallHook calls the named Lua global function in strategy name's shared VM with a
// fresh instruction budget. src backs engine.random for the duration of the
// call and may be nil. Returns (LNil, nil) if the hook is not defined.
// Lua runtime errors, including an exhausted budget, are logged at Warn and
// reported as (LNil, nil).
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, LNil, or
// ErrUnknownStrategy.
func (m *Manager) CallHook(name, hook string, src dice.Source, args ...lua.LValue) (lua.LValue, error) {
	return m.call(name, hook, src, func(*lua.LState) []lua.LValue { return args })
}

func (m *Manager) call(name, hook string, src dice.Source, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[name]
	m.mu.RUnlock()
	if !ok {
		return lua.LNil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return m.invoke(v, name, hook, src, build)
}

// invoke calls hook in v with arguments built while v's lock is held.
func (m *Manager) invoke(v *vm, name, hook string, src dice.Source, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := ResetBudget(v.L, m.instLimit)
	defer cancel()
	v.src = src
	defer func() { v.src = nil }()

	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, build(v.L)...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("strategy", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close releases every VM. Subsequent calls report ErrUnknownStrategy.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, v := range m.vms {
		v.close()
		delete(m.vms, name)
	}
	clear(m.protos)
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return
	}
	v.cancel()
	v.L.Close()
	v.L = nil
}
