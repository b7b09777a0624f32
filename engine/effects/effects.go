// Package effects applies content-declared effects to a session. Every
// effect type is one atomic operation and goes through the character and
// shop contracts, so no effect can break a stat invariant. Items only ever
// enter the inventory through a paid purchase.
package effects

import (
	"strconv"
	"strings"

	"github.com/nathoo/aiadventure/engine/rules"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// Effect types understood by Apply.
const (
	Say       = "say"
	GiveGold  = "give_gold"
	OfferItem = "offer_item" // sells one catalog item at its price
	EmitEvent = "emit_event"
	Stop      = "stop"
)

// Known reports whether t names an effect type.
func Known(t string) bool {
	switch t {
	case Say, GiveGold, OfferItem, EmitEvent, Stop:
		return true
	}
	return false
}

// Apply applies a list of effects to the session, mutating it.
// Returns events emitted and output text collected.
func Apply(s *state.Session, effs []types.Effect) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effs {
		switch eff.Type {
		case Say:
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, s))

		case GiveGold:
			amount := rules.ToDecimal(eff.Params["amount"])
			if !amount.IsPositive() {
				continue
			}
			s.Player.EarnGold(amount)
			events = append(events, types.Event{
				Type: "gold_earned",
				Data: map[string]any{"amount": amount.String()},
			})

		case OfferItem:
			name, _ := eff.Params["item"].(string)
			it, err := s.Shop.Purchase(s.Player, name)
			if err != nil {
				events = append(events, types.Event{
					Type: "purchase_denied",
					Data: map[string]any{"item": name, "reason": err.Error()},
				})
				continue
			}
			events = append(events, types.Event{
				Type: "item_purchased",
				Data: map[string]any{"item": it.Name, "cost": it.GoldCost.String(), "gold": s.Player.Gold().String()},
			})

		case EmitEvent:
			event, _ := eff.Params["event"].(string)
			events = append(events, types.Event{
				Type: event,
				Data: map[string]any{},
			})

		case Stop:
			return events, output

		default:
			// Unknown effect type: ignore silently.
		}
	}

	return events, output
}

// interpolate replaces template variables in text.
func interpolate(text string, s *state.Session) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		"{player.name}", s.Player.Name(),
		"{player.level}", strconv.Itoa(s.Player.Level()),
		"{player.gold}", s.Player.Gold().String(),
		"{player.hp}", s.Player.HP().String(),
		"{enemy.name}", s.Enemy.Name(),
		"{enemy.level}", strconv.Itoa(s.Enemy.Level()),
		"{shop.name}", s.Shop.Name,
	)
	return r.Replace(text)
}
