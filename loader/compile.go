package loader

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toDecimal converts a Lua number or numeric string. Strings keep exact
// decimal precision; nil converts to zero.
func toDecimal(v lua.LValue) (decimal.Decimal, error) {
	switch val := v.(type) {
	case lua.LNumber:
		return decimal.NewFromFloat(float64(val)), nil
	case lua.LString:
		d, err := decimal.NewFromString(string(val))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid number %q", string(val))
		}
		return d, nil
	case *lua.LNilType:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("expected number, got %s", v.Type())
	}
}

// getDecimal returns a numeric field from a Lua table.
func getDecimal(tbl *lua.LTable, key string) (decimal.Decimal, error) {
	d, err := toDecimal(tbl.RawGetString(key))
	if err != nil {
		return d, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	if coll.player == nil {
		return nil, fmt.Errorf("no Player{} definition found")
	}
	player, err := compileCombatant(coll.player)
	if err != nil {
		return nil, fmt.Errorf("compiling player: %w", err)
	}
	defs.Player = player

	if coll.enemy == nil {
		return nil, fmt.Errorf("no Enemy{} definition found")
	}
	enemy, err := compileCombatant(coll.enemy)
	if err != nil {
		return nil, fmt.Errorf("compiling enemy: %w", err)
	}
	defs.Enemy = enemy

	if coll.shop != nil {
		shop, err := compileShop(coll.shop)
		if err != nil {
			return nil, fmt.Errorf("compiling shop: %w", err)
		}
		defs.Shop = shop
	}

	for _, raw := range coll.handlers {
		defs.Handlers = append(defs.Handlers, compileHandler(raw))
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
		Scene:   getString(tbl, "scene"),
		North:   getString(tbl, "north"),
		Victory: getString(tbl, "victory"),
	}
}

func compileCombatant(tbl *lua.LTable) (types.CombatantDef, error) {
	def := types.CombatantDef{Name: getString(tbl, "name")}
	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"hp", &def.HP},
		{"stamina", &def.Stamina},
		{"attack", &def.Attack},
		{"gold", &def.Gold},
	}
	for _, f := range fields {
		d, err := getDecimal(tbl, f.key)
		if err != nil {
			return def, err
		}
		*f.dst = d
	}
	// Stamina defaults to full when omitted.
	if tbl.RawGetString("stamina") == lua.LNil {
		def.Stamina = character.MaxStamina
	}

	if items := getTable(tbl, "items"); items != nil {
		for i := 1; i <= items.MaxN(); i++ {
			if s, ok := items.RawGetInt(i).(lua.LString); ok {
				def.Items = append(def.Items, string(s))
			}
		}
	}
	return def, nil
}

func compileShop(tbl *lua.LTable) (types.ShopDef, error) {
	def := types.ShopDef{Name: getString(tbl, "name")}
	items := getTable(tbl, "items")
	if items == nil {
		return def, nil
	}
	for i := 1; i <= items.MaxN(); i++ {
		itTbl, ok := items.RawGetInt(i).(*lua.LTable)
		if !ok {
			return def, fmt.Errorf("item %d is not a table", i)
		}
		cost, err := getDecimal(itTbl, "cost")
		if err != nil {
			return def, fmt.Errorf("item %d: %w", i, err)
		}
		def.Items = append(def.Items, types.ItemDef{Name: getString(itTbl, "name"), Cost: cost})
	}
	return def, nil
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for i := 1; i <= tbl.MaxN(); i++ {
		if condTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			conditions = append(conditions, compileCondition(condTbl))
		}
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")

	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{Type: "not", Inner: &inner}
		}
	}

	return types.Condition{
		Type:   condType,
		Params: params(tbl),
	}
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effs []types.Effect
	for i := 1; i <= tbl.MaxN(); i++ {
		if effTbl, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			effs = append(effs, types.Effect{
				Type:   getString(effTbl, "type"),
				Params: params(effTbl),
			})
		}
	}
	return effs
}

// params collects every string-keyed field except "type".
func params(tbl *lua.LTable) map[string]any {
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

func compileHandler(raw rawHandler) types.EventHandler {
	handler := types.EventHandler{EventType: raw.eventType}
	if condTbl := getTable(raw.table, "conditions"); condTbl != nil {
		handler.Conditions = compileConditions(condTbl)
	}
	if effTbl := getTable(raw.table, "effects"); effTbl != nil {
		handler.Effects = compileEffects(effTbl)
	}
	return handler
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
