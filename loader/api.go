package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/aiadventure/engine/effects"
	"github.com/nathoo/aiadventure/engine/rules"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", scene = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { name = "Hero", hp = 100, stamina = 100, attack = 20, gold = 50, items = {...} }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Enemy { name = "...", hp = 80, attack = 15 }
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		coll.enemy = L.CheckTable(1)
		return 0
	}))

	// Shop { name = "...", items = { Item("Potion", 20), ... } }
	L.SetGlobal("Shop", L.NewFunction(func(L *lua.LState) int {
		coll.shop = L.CheckTable(1)
		return 0
	}))

	// Item("name", cost) returns a catalog entry table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		cost := L.Get(2)
		tbl := L.NewTable()
		tbl.RawSetString("name", lua.LString(name))
		tbl.RawSetString("cost", cost)
		L.Push(tbl)
		return 1
	}))

	// On("event_type", { conditions = {...}, effects = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))
}

// typed returns a helper that builds {type = typ, <keys[i]> = arg i}.
func typed(typ string, keys ...string) lua.LGFunction {
	return func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(typ))
		for i, k := range keys {
			tbl.RawSetString(k, L.CheckAny(i+1))
		}
		L.Push(tbl)
		return 1
	}
}

func registerConditionHelpers(L *lua.LState) {
	L.SetGlobal("HasItem", L.NewFunction(typed(rules.HasItem, "item")))
	L.SetGlobal("LevelAtLeast", L.NewFunction(typed(rules.LevelAtLeast, "level")))
	L.SetGlobal("GoldAtLeast", L.NewFunction(typed(rules.GoldAtLeast, "amount")))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(rules.Not))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	L.SetGlobal("Say", L.NewFunction(typed(effects.Say, "text")))
	L.SetGlobal("GiveGold", L.NewFunction(typed(effects.GiveGold, "amount")))
	L.SetGlobal("OfferItem", L.NewFunction(typed(effects.OfferItem, "item")))
	L.SetGlobal("EmitEvent", L.NewFunction(typed(effects.EmitEvent, "event")))
	L.SetGlobal("Stop", L.NewFunction(typed(effects.Stop)))
}
