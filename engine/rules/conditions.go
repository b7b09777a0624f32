// Package rules evaluates content-declared conditions against a session.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// Condition types understood by EvalCondition.
const (
	HasItem      = "has_item"
	LevelAtLeast = "level_at_least"
	GoldAtLeast  = "gold_at_least"
	Not          = "not"
)

// Known reports whether t names a condition type.
func Known(t string) bool {
	switch t {
	case HasItem, LevelAtLeast, GoldAtLeast, Not:
		return true
	}
	return false
}

// EvalCondition evaluates a single condition against the player.
func EvalCondition(c types.Condition, s *state.Session) bool {
	switch c.Type {
	case HasItem:
		item, _ := c.Params["item"].(string)
		return s.Player.Inventory().Contains(item)

	case LevelAtLeast:
		return s.Player.Level() >= int(ToDecimal(c.Params["level"]).IntPart())

	case GoldAtLeast:
		return s.Player.Gold().GreaterThanOrEqual(ToDecimal(c.Params["amount"]))

	case Not:
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, s)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *state.Session) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

// ToDecimal converts a number decoded from Lua to a decimal. Unknown
// values convert to zero.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return n
	default:
		return decimal.Zero
	}
}
