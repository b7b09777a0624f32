package parser

import (
	"testing"

	"github.com/nathoo/aiadventure/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{name: "empty string", input: "", want: types.Intent{}},
		{name: "whitespace only", input: "   ", want: types.Intent{}},

		// Combat vocabulary, any case
		{name: "attack", input: "attack", want: types.Intent{Verb: VerbAttack}},
		{name: "ATTACK", input: "ATTACK", want: types.Intent{Verb: VerbAttack}},
		{name: "use sword", input: "Use Sword", want: types.Intent{Verb: VerbUseSword}},
		{name: "extra spaces", input: "  use   potion ", want: types.Intent{Verb: VerbUsePotion}},
		{name: "defend", input: "defend", want: types.Intent{Verb: VerbDefend}},
		{name: "use armor", input: "use armor", want: types.Intent{Verb: VerbUseArmor}},

		// Status and session
		{name: "check status", input: "check status", want: types.Intent{Verb: VerbStatus}},
		{name: "check status any case", input: "CHECK Status", want: types.Intent{Verb: VerbStatus}},
		{name: "exit", input: "Exit", want: types.Intent{Verb: VerbExit}},

		// Shop
		{name: "bare shop", input: "shop", want: types.Intent{Verb: VerbShop}},
		{name: "shop purchase", input: "shop:Potion", want: types.Intent{Verb: VerbBuy, Object: "Potion"}},
		{name: "shop prefix case", input: "SHOP: Sword Upgrade", want: types.Intent{Verb: VerbBuy, Object: "Sword Upgrade"}},

		// Exploration
		{name: "go north", input: "go north", want: types.Intent{Verb: VerbNorth}},
		{name: "go south", input: "GO SOUTH", want: types.Intent{Verb: VerbSouth}},

		// Pass-through
		{name: "free text", input: "Climb the old oak tree", want: types.Intent{Verb: VerbNarrate, Object: "Climb the old oak tree"}},
		{name: "buy sentence is narration", input: "buy a drink for the innkeeper", want: types.Intent{Verb: VerbNarrate, Object: "buy a drink for the innkeeper"}},
		{name: "attack with object is narration", input: "attack the tree", want: types.Intent{Verb: VerbNarrate, Object: "attack the tree"}},
	}

	// Words that read like commands but are not in the vocabulary go to the
	// narrator unchanged.
	for _, word := range []string{"drink", "heal", "hit", "strike", "block", "swing", "store", "stats", "status", "quit", "north", "n", "s", "q", "use armour", "buy potion"} {
		tests = append(tests, struct {
			name  string
			input string
			want  types.Intent
		}{name: "narrate " + word, input: word, want: types.Intent{Verb: VerbNarrate, Object: word}})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCombatVerb(t *testing.T) {
	tests := []struct {
		verb string
		want bool
	}{
		{VerbAttack, true},
		{VerbUseSword, true},
		{VerbDefend, true},
		{VerbUseArmor, true},
		{VerbUsePotion, true},
		{VerbStatus, false},
		{VerbShop, false},
		{VerbNarrate, false},
	}
	for _, tt := range tests {
		if got := IsCombatVerb(tt.verb); got != tt.want {
			t.Errorf("IsCombatVerb(%q) = %v, want %v", tt.verb, got, tt.want)
		}
	}
}
