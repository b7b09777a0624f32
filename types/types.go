// Package types defines the shared data structures for the adventure engine.
// This package contains only type definitions, no logic.
package types

import "github.com/shopspring/decimal"

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional: item name for shop purchases, raw text for narration
}

// Event is emitted by the engine as a side record of what happened.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
	Quit   bool // set by the exit command
}

// ItemDef is a catalog entry as declared in game content.
type ItemDef struct {
	Name string
	Cost decimal.Decimal
}

// CombatantDef holds the starting stats of a player or enemy.
type CombatantDef struct {
	Name    string
	HP      decimal.Decimal
	Stamina decimal.Decimal
	Attack  decimal.Decimal
	Gold    decimal.Decimal
	Items   []string // names of catalog items granted at start
}

// ShopDef describes the shop and its catalog.
type ShopDef struct {
	Name  string
	Items []ItemDef
}

// GameDef holds game metadata.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Scene   string // opening scene text shown before the first command
	North   string // scene text after "go north"
	Victory string // scene text after an encounter ends
}

// Condition is a predicate over the session, declared in content.
type Condition struct {
	Type   string
	Params map[string]any
	Inner  *Condition // set for "not"
}

// Effect is one atomic content-declared action.
type Effect struct {
	Type   string
	Params map[string]any
}

// EventHandler reacts to an engine event with effects when its conditions hold.
type EventHandler struct {
	EventType  string
	Conditions []Condition
	Effects    []Effect
}
