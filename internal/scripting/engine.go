// Package scripting runs stage scripts. A stage script is plain Lua that
// calls the globals below while it is loaded; each call declares timeline
// content on the controller through a stage.Builder.
//
//	fragment(ms)          advance the declaration point
//	wave{ ... }           declare a wave (fields mirror stage.WaveSpec)
//	WIDTH, HEIGHT         playfield size
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shmupcore/shmup/internal/stage"
	"github.com/shmupcore/shmup/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for stage declaration.
// Single-goroutine access only; stages are loaded before the session starts.
type Engine struct {
	vm  *lua.LState
	b   *stage.Builder
	dir string
	log *zap.Logger
}

// NewEngine creates a Lua engine bound to b and loads the shared helpers in
// scriptsDir/lib.
func NewEngine(scriptsDir string, b *stage.Builder, width, height float64, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("WIDTH", lua.LNumber(width))
	vm.SetGlobal("HEIGHT", lua.LNumber(height))

	e := &Engine{vm: vm, b: b, dir: scriptsDir, log: log}
	vm.SetGlobal("wave", vm.NewFunction(e.luaWave))
	vm.SetGlobal("fragment", vm.NewFunction(e.luaFragment))

	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
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

// RunStage executes the named stage script from the scripts directory.
func (e *Engine) RunStage(name string) error {
	path := filepath.Join(e.dir, name)
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run stage %s: %w", path, err)
	}
	e.log.Info("stage loaded",
		zap.String("file", path),
		zap.Int("waves", e.b.Waves()),
		zap.Int("enemies", e.b.Enemies()),
	)
	return nil
}

// RunSource executes stage source held in memory.
func (e *Engine) RunSource(name, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("run stage %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run stage %s: %w", name, err)
	}
	return nil
}

func (e *Engine) luaFragment(L *lua.LState) int {
	ms := L.CheckNumber(1)
	if ms < 0 {
		L.ArgError(1, "fragment must not be negative")
		return 0
	}
	e.b.Fragment(msDuration(ms))
	return 0
}

func (e *Engine) luaWave(L *lua.LState) int {
	t := L.CheckTable(1)
	spec := stage.WaveSpec{
		Anim:     lStr(t, "anim"),
		Count:    lIntOr(t, "count", 1),
		X:        lNum(t, "x"),
		Y:        lNum(t, "y"),
		DX:       lNum(t, "dx"),
		DY:       lNum(t, "dy"),
		Health:   lIntOr(t, "health", 1),
		VX:       lNum(t, "vx"),
		VY:       lNum(t, "vy"),
		Step:     lMs(t, "step"),
		Lifetime: lMs(t, "lifetime"),
		Fire:     lStr(t, "fire"),
		Every:    lMs(t, "every"),
		Ring:     lInt(t, "ring"),
		MinScore: lInt(t, "min_score"),
		Stagger:  lMs(t, "stagger"),
	}
	if shot, ok := t.RawGetString("shot").(*lua.LTable); ok {
		spec.Shot = world.ShotSpec{
			Anim:    lStr(shot, "anim"),
			Rotated: lua.LVAsBool(shot.RawGetString("rotated")),
			Damage:  lIntOr(shot, "damage", 1),
			Speed:   lNum(shot, "speed"),
			Step:    lMs(shot, "step"),
		}
		if spec.Shot.Step <= 0 {
			spec.Shot.Step = 10 * time.Millisecond
		}
	}
	if esc, ok := t.RawGetString("escort").(*lua.LTable); ok {
		spec.Escort = lIntOr(esc, "count", 1)
		spec.EscortAnim = lStr(esc, "anim")
		spec.EscortRadius = lNum(esc, "radius")
		spec.EscortDamage = lIntOr(esc, "damage", 1)
	}
	if err := e.b.Wave(spec); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lIntOr reads an integer field, or def when the field is absent.
func lIntOr(t *lua.LTable, key string, def int) int {
	if t.RawGetString(key) == lua.LNil {
		return def
	}
	return lInt(t, key)
}

func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// lMs reads a millisecond field as a duration.
func lMs(t *lua.LTable, key string) time.Duration {
	return msDuration(lua.LVAsNumber(t.RawGetString(key)))
}

func msDuration(ms lua.LNumber) time.Duration {
	return time.Duration(float64(ms) * float64(time.Millisecond))
}
