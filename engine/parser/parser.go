// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just a fixed vocabulary matched
// case-insensitively. Everything else is handed to the narrator untouched.
package parser

import (
	"strings"

	"github.com/nathoo/aiadventure/types"
)

// Canonical verbs.
const (
	VerbAttack    = "attack"
	VerbUseSword  = "use sword"
	VerbDefend    = "defend"
	VerbUseArmor  = "use armor"
	VerbUsePotion = "use potion"
	VerbStatus    = "check status"
	VerbShop      = "shop" // bare: list the catalog
	VerbBuy       = "buy"  // shop:<item>
	VerbNorth     = "go north"
	VerbSouth     = "go south"
	VerbExit      = "exit"
	VerbNarrate   = "narrate"
)

// vocabulary is the complete set of fixed commands. Single words and
// look-alike phrases are deliberately absent so that free text such as
// "drink from the stream" reaches the narrator.
var vocabulary = map[string]bool{
	VerbAttack:    true,
	VerbUseSword:  true,
	VerbDefend:    true,
	VerbUseArmor:  true,
	VerbUsePotion: true,
	VerbStatus:    true,
	VerbShop:      true,
	VerbNorth:     true,
	VerbSouth:     true,
	VerbExit:      true,
}

// combatVerbs are the commands that act as a battle round.
var combatVerbs = map[string]bool{
	VerbAttack:    true,
	VerbUseSword:  true,
	VerbDefend:    true,
	VerbUseArmor:  true,
	VerbUsePotion: true,
}

// IsCombatVerb returns true if the verb is a battle action.
func IsCombatVerb(verb string) bool {
	return combatVerbs[verb]
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	// shop:<item> keeps the item name's spelling; the prefix is matched
	// case-insensitively.
	if item, ok := cutPrefixFold(input, "shop:"); ok {
		return types.Intent{Verb: VerbBuy, Object: strings.TrimSpace(item)}
	}

	normalized := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if vocabulary[normalized] {
		return types.Intent{Verb: normalized}
	}

	return types.Intent{Verb: VerbNarrate, Object: input}
}

// cutPrefixFold is strings.CutPrefix with case-insensitive matching.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}
