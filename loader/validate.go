package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/effects"
	"github.com/nathoo/aiadventure/engine/rules"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.errorf("Game.Title is required")
	}
	if defs.Game.Scene == "" {
		ve.errorf("Game.Scene is required")
	}

	// Catalog: unique, named, non-negative prices.
	catalog := map[string]bool{}
	for i, it := range defs.Shop.Items {
		switch {
		case strings.TrimSpace(it.Name) == "":
			ve.errorf("shop item %d has no name", i+1)
		case catalog[it.Name]:
			ve.errorf("duplicate shop item %q", it.Name)
		}
		if it.Cost.IsNegative() {
			ve.errorf("shop item %q has negative cost %s", it.Name, it.Cost)
		}
		catalog[it.Name] = true
	}

	validateCombatant("Player", defs.Player, catalog, ve)
	validateCombatant("Enemy", defs.Enemy, catalog, ve)

	for _, handler := range defs.Handlers {
		if handler.EventType == "" {
			ve.errorf("event handler with empty event type")
		}
		validateConditions(handler.Conditions, catalog, ve)
		validateEffects(handler.Effects, catalog, ve)
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateCombatant(label string, def types.CombatantDef, catalog map[string]bool, ve *ValidationError) {
	if strings.TrimSpace(def.Name) == "" {
		ve.errorf("%s.name is required", label)
	}
	if !def.HP.IsPositive() {
		ve.errorf("%s.hp must be positive, got %s", label, def.HP)
	}
	if !def.Attack.IsPositive() {
		ve.errorf("%s.attack must be positive, got %s", label, def.Attack)
	}
	if def.Stamina.IsNegative() {
		ve.errorf("%s.stamina must not be negative, got %s", label, def.Stamina)
	}
	if def.Stamina.GreaterThan(character.MaxStamina) {
		ve.warnf("%s.stamina %s exceeds the cap of %s and will be capped", label, def.Stamina, character.MaxStamina)
	}
	if def.Gold.IsNegative() {
		ve.errorf("%s.gold must not be negative, got %s", label, def.Gold)
	}
	for _, name := range def.Items {
		if !catalog[name] {
			ve.errorf("%s starting item %q is not in the shop catalog", label, name)
		}
	}
}

func validateConditions(conditions []types.Condition, catalog map[string]bool, ve *ValidationError) {
	for _, cond := range conditions {
		if !rules.Known(cond.Type) {
			ve.errorf("unknown condition type %q", cond.Type)
		}
		switch cond.Type {
		case rules.HasItem:
			if item, _ := cond.Params["item"].(string); !catalog[item] {
				ve.errorf("condition has_item references unknown item %q", item)
			}
		case rules.Not:
			if cond.Inner != nil {
				validateConditions([]types.Condition{*cond.Inner}, catalog, ve)
			}
		}
	}
}

func validateEffects(effs []types.Effect, catalog map[string]bool, ve *ValidationError) {
	for _, eff := range effs {
		if eff.Type == "give_item" {
			ve.errorf("effect give_item is not supported: items must be bought, use OfferItem")
			continue
		}
		if !effects.Known(eff.Type) {
			ve.errorf("unknown effect type %q", eff.Type)
		}
		switch eff.Type {
		case effects.OfferItem:
			if item, _ := eff.Params["item"].(string); !catalog[item] {
				ve.errorf("effect offer_item references unknown item %q", item)
			}
		case effects.GiveGold:
			if !rules.ToDecimal(eff.Params["amount"]).IsPositive() {
				ve.errorf("effect give_gold needs a positive amount")
			}
		case effects.EmitEvent:
			if ev, _ := eff.Params["event"].(string); ev == "" {
				ve.errorf("effect emit_event needs an event name")
			}
		}
	}
}
