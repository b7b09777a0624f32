// Package events implements single-pass event handler dispatch.
// Event handlers produce additional effects but do not recurse.
package events

import (
	"github.com/nathoo/aiadventure/engine/rules"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// Dispatch runs event handlers against the emitted events. Single pass,
// no recursion. Returns additional effects produced by matching handlers.
func Dispatch(evts []types.Event, s *state.Session, handlers []types.EventHandler) []types.Effect {
	var result []types.Effect

	for _, event := range evts {
		for _, handler := range handlers {
			if handler.EventType != event.Type {
				continue
			}
			if !rules.EvalAllConditions(handler.Conditions, s) {
				continue
			}
			result = append(result, handler.Effects...)
		}
	}

	return result
}
