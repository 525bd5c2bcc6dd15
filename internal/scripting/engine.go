package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/core/vmath"
)

// Host is the game object a behaviour runs against.
type Host interface {
	Name() string
	Position() vmath.Vec3
	SetPosition(vmath.Vec3)
	Rotation() vmath.Vec3
	SetRotation(vmath.Vec3)
}

// Engine wraps a single gopher-lua VM for gameplay behaviours.
// Single-goroutine access only (game loop).
//
// Scripts register behaviours by assigning tables into the global
// "behaviours" table:
//
//	behaviours.spin = {
//	    update = function(self, dt) ... end,
//	}
type Engine struct {
	vm    *lua.LState
	log   *zap.Logger
	selfs map[Host]*lua.LTable

	actionDown func(action string) bool
}

// NewEngine creates a Lua engine and loads all scripts from dir, then from
// dir/behaviours. Missing directories are skipped.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("behaviours", vm.NewTable())

	e := &Engine{vm: vm, log: log, selfs: make(map[Host]*lua.LTable)}
	vm.SetGlobal("action_down", vm.NewFunction(e.luaActionDown))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	for _, d := range []string{dir, filepath.Join(dir, "behaviours")} {
		if err := e.loadDir(d); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// BindInput connects action_down(name) to the game's input bindings.
func (e *Engine) BindInput(fn func(action string) bool) { e.actionDown = fn }

func (e *Engine) luaActionDown(L *lua.LState) int {
	name := L.CheckString(1)
	L.Push(lua.LBool(e.actionDown != nil && e.actionDown(name)))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

func (e *Engine) behaviour(name string) *lua.LTable {
	t, ok := e.vm.GetGlobal("behaviours").(*lua.LTable)
	if !ok {
		return nil
	}
	b, _ := t.RawGetString(name).(*lua.LTable)
	return b
}

// HasBehaviour reports whether a behaviour table named name exists.
func (e *Engine) HasBehaviour(name string) bool { return e.behaviour(name) != nil }

// Behaviours lists the registered behaviour names, sorted.
func (e *Engine) Behaviours() []string {
	t, ok := e.vm.GetGlobal("behaviours").(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	t.ForEach(func(k, v lua.LValue) {
		if _, ok := v.(*lua.LTable); ok && k.Type() == lua.LTString {
			out = append(out, k.String())
		}
	})
	sort.Strings(out)
	return out
}

// CallBehaviour invokes fn ("awake", "update", ...) of behaviour name with a
// self table bound to host. dt is passed when non-negative. A behaviour
// without fn is a no-op.
func (e *Engine) CallBehaviour(name, fn string, host Host, dt float64) error {
	b := e.behaviour(name)
	if b == nil {
		return fmt.Errorf("behaviour %q not defined", name)
	}
	f, ok := b.RawGetString(fn).(*lua.LFunction)
	if !ok {
		return nil
	}
	args := []lua.LValue{e.self(host)}
	if dt >= 0 {
		args = append(args, lua.LNumber(dt))
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("behaviour %s.%s: %w", name, fn, err)
	}
	return nil
}

// self returns the per-host table. It persists across calls so scripts can
// keep state in it.
func (e *Engine) self(h Host) *lua.LTable {
	if t, ok := e.selfs[h]; ok {
		return t
	}
	L := e.vm
	t := L.NewTable()
	t.RawSetString("name", lua.LString(h.Name()))
	t.RawSetString("get_position", L.NewFunction(func(L *lua.LState) int {
		return pushVec(L, h.Position())
	}))
	t.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
		h.SetPosition(checkVec(L, 2))
		return 0
	}))
	t.RawSetString("get_rotation", L.NewFunction(func(L *lua.LState) int {
		return pushVec(L, h.Rotation())
	}))
	t.RawSetString("set_rotation", L.NewFunction(func(L *lua.LState) int {
		h.SetRotation(checkVec(L, 2))
		return 0
	}))
	e.selfs[h] = t
	return t
}

func pushVec(L *lua.LState, v vmath.Vec3) int {
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	L.Push(lua.LNumber(v.Z))
	return 3
}

func checkVec(L *lua.LState, first int) vmath.Vec3 {
	return vmath.Vec3{
		X: float64(L.CheckNumber(first)),
		Y: float64(L.CheckNumber(first + 1)),
		Z: float64(L.CheckNumber(first + 2)),
	}
}

// Release forgets the self table of h.
func (e *Engine) Release(h Host) { delete(e.selfs, h) }

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
