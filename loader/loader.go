// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading: zero Lua at runtime.
package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/aiadventure/engine/state"
)

//go:embed content/*.lua
var defaultContent embed.FS

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	player   *lua.LTable
	enemy    *lua.LTable
	shop     *lua.LTable
	handlers []rawHandler
}

// LoadDefault loads the game content compiled into the binary.
func LoadDefault() (*state.Defs, error) {
	sub, err := fs.Sub(defaultContent, "content")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load reads all .lua files from dir, compiles them into game definitions,
// validates them, and returns the immutable Defs.
func Load(dir string) (*state.Defs, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}
	defs, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return defs, nil
}

// LoadFS loads content from the .lua files at the root of fsys.
func LoadFS(fsys fs.FS) (*state.Defs, error) {
	// Discover .lua files.
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading game content: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(strings.NewReader(string(src)), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	// Compile.
	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	// Validate.
	if err := validate(defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require", "module",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content is data; randomness belongs to the engine's seeded RNG.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
