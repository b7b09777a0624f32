// Package engine provides the Step() orchestrator that wires together
// parsing, battles, the shop, narration, and content event handlers into a
// single turn.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/aiadventure/engine/effects"
	"github.com/nathoo/aiadventure/engine/events"
	"github.com/nathoo/aiadventure/engine/parser"
	"github.com/nathoo/aiadventure/engine/save"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

// Narrator continues the story from the current scene and a free-form
// player command. The returned text becomes the next scene verbatim.
type Narrator interface {
	Narrate(ctx context.Context, scene, input string) (string, error)
}

// Engine holds the game definitions and one player's mutable session.
type Engine struct {
	Defs     *state.Defs
	Session  *state.Session
	RNG      *RNG
	Narrator Narrator // optional; free-form input is ignored when nil

	battle *Battle
}

// New creates a new engine from definitions.
func New(defs *state.Defs, playerName string, seed int64) (*Engine, error) {
	s, err := state.NewSession(defs, playerName)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Defs:    defs,
		Session: s,
		RNG:     NewRNG(seed),
	}, nil
}

// InBattle reports whether an encounter is in progress.
func (e *Engine) InBattle() bool {
	return e.battle != nil
}

// Battle returns the active encounter, or nil.
func (e *Engine) Battle() *Battle {
	return e.battle
}

var commandHelp = []string{
	"Commands you can use:",
	"- 'go north': Explore the northern area.",
	"- 'go south': Enter a battle.",
	"- 'attack': Attack an enemy in battle.",
	"- 'use sword': Strike with a Sword Upgrade (consumed).",
	"- 'defend': Reduce damage in battle.",
	"- 'use armor': Greatly reduce damage (consumes Armor).",
	"- 'use potion': Heal yourself if you have a potion.",
	"- 'check status': View your HP, Stamina, XP, and Gold.",
	"- 'shop': Visit the shop to buy items; 'shop:<item>' buys one.",
	"- 'exit': Save and quit the game.",
	"Anything else is passed to the storyteller.",
}

// Help returns the command reference.
func Help() []string {
	out := make([]string, len(commandHelp))
	copy(out, commandHelp)
	return out
}

// Intro returns the opening text: title, intro, command help and scene.
func (e *Engine) Intro() []string {
	out := []string{fmt.Sprintf("Welcome to %s!", e.Defs.Game.Title)}
	if e.Defs.Game.Intro != "" {
		out = append(out, e.Defs.Game.Intro)
	}
	out = append(out, commandHelp...)
	out = append(out, "", e.Session.Scene)
	return out
}

// Step processes one player command and returns the result.
func (e *Engine) Step(ctx context.Context, input string) types.Result {
	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Empty input.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 3. Dispatch.
	switch {
	case intent.Verb == parser.VerbExit:
		result.Output = append(result.Output, "Thanks for playing!")
		result.Quit = true
	case intent.Verb == parser.VerbStatus:
		result.Output = append(result.Output, e.StatusLines()...)
	case e.battle != nil:
		e.battleStep(intent, &result)
	default:
		e.exploreStep(ctx, intent, &result)
	}

	// 4. Dispatch content event handlers (single pass).
	eventEffs := events.Dispatch(result.Events, e.Session, e.Defs.Handlers)

	// 5. Apply handler effects (events NOT re-dispatched).
	if len(eventEffs) > 0 {
		evts, out := effects.Apply(e.Session, eventEffs)
		result.Events = append(result.Events, evts...)
		result.Output = append(result.Output, out...)
	}

	return result
}

// battleStep resolves one round. Anything that is not a battle action is
// an invalid round.
func (e *Engine) battleStep(intent types.Intent, result *types.Result) {
	rep, err := e.battle.Round(actionFor(intent.Verb))
	result.Output = append(result.Output, rep.Output...)
	result.Events = append(result.Events, rep.Events...)
	if err != nil && !errors.Is(err, ErrInvalidAction) {
		result.Output = append(result.Output, err.Error())
	}

	if rep.State.Terminal() {
		e.battle = nil
		if e.Defs.Game.Victory != "" {
			e.Session.Scene = e.Defs.Game.Victory
		}
		result.Output = append(result.Output, "", e.Session.Scene)
	}
}

func (e *Engine) exploreStep(ctx context.Context, intent types.Intent, result *types.Result) {
	switch intent.Verb {
	case parser.VerbNorth:
		if e.Defs.Game.North != "" {
			e.Session.Scene = e.Defs.Game.North
		}
		result.Output = append(result.Output, e.Session.Scene)

	case parser.VerbSouth:
		if err := e.startBattle(result); err != nil {
			result.Output = append(result.Output, err.Error())
		}

	case parser.VerbShop:
		result.Output = append(result.Output, fmt.Sprintf("Welcome to %s! Items available:", e.Session.Shop.Name))
		result.Output = append(result.Output, e.Session.Shop.Listing()...)
		result.Output = append(result.Output, "Type 'shop:<item>' to buy.")

	case parser.VerbBuy:
		e.purchase(intent.Object, result)

	case parser.VerbNarrate:
		e.narrate(ctx, intent.Object, result)

	default:
		if parser.IsCombatVerb(intent.Verb) {
			result.Output = append(result.Output, "There is nothing to fight here. Go south if you are looking for trouble.")
			result.Events = append(result.Events, types.Event{
				Type: "invalid_action",
				Data: map[string]any{"action": intent.Verb, "reason": ErrNoBattle.Error()},
			})
		}
	}
}

func (e *Engine) startBattle(result *types.Result) error {
	b, err := NewBattle(e.Session.Player, e.Session.Enemy, e.RNG)
	if err != nil {
		return err
	}
	e.battle = b
	result.Output = append(result.Output,
		fmt.Sprintf("You encountered %s!", e.Session.Enemy.Name()),
		"Do you want to 'attack', 'use sword', 'defend', 'use armor', or 'use potion'?")
	result.Events = append(result.Events, types.Event{
		Type: "battle_started",
		Data: map[string]any{"enemy": e.Session.Enemy.Name(), "enemy_level": e.Session.Enemy.Level()},
	})
	return nil
}

// purchase buys one item. Command matching is case-insensitive, so the name
// is canonicalized against the catalog before the exact-match purchase.
func (e *Engine) purchase(name string, result *types.Result) {
	shp := e.Session.Shop
	if canonical, ok := shp.Catalog.Resolve(name); ok {
		name = canonical
	}

	it, err := shp.Purchase(e.Session.Player, name)
	if err != nil {
		result.Output = append(result.Output, "Not enough gold or invalid item!")
		result.Events = append(result.Events, types.Event{
			Type: "purchase_denied",
			Data: map[string]any{"item": name, "reason": err.Error()},
		})
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("You bought %s!", it.Name))
	result.Events = append(result.Events, types.Event{
		Type: "item_purchased",
		Data: map[string]any{"item": it.Name, "cost": it.GoldCost.String(), "gold": e.Session.Player.Gold().String()},
	})
}

// narrate hands free-form input to the narrator. On failure the scene is
// left as it was.
func (e *Engine) narrate(ctx context.Context, input string, result *types.Result) {
	if e.Narrator == nil {
		result.Output = append(result.Output, "Nothing happens.")
		return
	}
	text, err := e.Narrator.Narrate(ctx, e.Session.Scene, input)
	if err != nil {
		result.Output = append(result.Output, fmt.Sprintf("The story falters: %v", err), e.Session.Scene)
		return
	}
	e.Session.Scene = text
	result.Output = append(result.Output, text)
	result.Events = append(result.Events, types.Event{
		Type: "narrated",
		Data: map[string]any{"input": input},
	})
}

// StatusLines reports both combatants without consuming a round.
func (e *Engine) StatusLines() []string {
	p := e.Session.Player.Status()
	en := e.Session.Enemy.Status()
	inv := "nothing"
	if names := e.Session.Player.Inventory().Names(); len(names) > 0 {
		inv = strings.Join(names, ", ")
	}
	return []string{
		p.String(),
		"Inventory: " + inv,
		fmt.Sprintf("Enemy %s HP: %s/%s, Level: %d", en.Name, en.HP, en.MaxHP, en.Level),
	}
}

// actionFor maps a parsed verb to a battle action.
func actionFor(verb string) Action {
	switch verb {
	case parser.VerbAttack:
		return ActionAttack
	case parser.VerbUseSword:
		return ActionUseSword
	case parser.VerbDefend:
		return ActionDefend
	case parser.VerbUseArmor:
		return ActionUseArmor
	case parser.VerbUsePotion:
		return ActionUsePotion
	default:
		return ActionInvalid
	}
}

// Snapshot captures the session, the RNG position and, during an
// encounter, the round reached.
func (e *Engine) Snapshot() save.Snapshot {
	sn := save.Capture(e.Session, e.RNG.Seed(), e.RNG.Position())
	if e.battle != nil {
		sn.InBattle = true
		sn.BattleRound = e.battle.Rounds()
	}
	return sn
}

// Restore replaces the session with a saved one. The RNG resumes from the
// saved stream position.
func (e *Engine) Restore(sn save.Snapshot) error {
	s, err := sn.Restore()
	if err != nil {
		return err
	}
	rng := RestoreRNG(sn.RNGSeed, sn.RNGPosition)

	var b *Battle
	if sn.InBattle {
		b, err = NewBattle(s.Player, s.Enemy, rng)
		if err != nil {
			return fmt.Errorf("%w: resuming battle: %w", save.ErrPersistence, err)
		}
		b.round = sn.BattleRound
	}

	e.Session = s
	e.RNG = rng
	e.battle = b
	return nil
}
