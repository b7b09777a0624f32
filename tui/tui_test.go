package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine"
	"github.com/nathoo/aiadventure/engine/save"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/types"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You are in a mysterious forest.", kindScene},
		{"- 'attack': Attack an enemy in battle.", kindHelp},
		{"Commands you can use:", kindHelp},
		{"You attack and deal 17 damage!", kindDamage},
		{"Goblin attacks and deals 12 damage!", kindDamage},
		{"Goblin grows stronger!", kindDamage},
		{"You gain 20 XP and 30 gold.", kindGain},
		{"You bought Potion!", kindGain},
		{"You use a potion and restore 30 HP!", kindGain},
		{"You defeated the enemy!", kindVictory},
		{"Congratulations! You leveled up!", kindVictory},
		{"You encountered Goblin!", kindVictory},
		{"Hero HP: 100/100, Stamina: 90, XP: 0, Level: 1, Gold: 50", kindCombatant},
		{"Goblin HP: 63/80, Level: 1", kindCombatant},
		{"Invalid action! (attack, use sword, defend, use armor, use potion)", kindError},
		{"Not enough gold or invalid item!", kindError},
		{"You have been defeated!", kindError},
		{"The story falters: timeout", kindError},
		{"[Game saved for Hero.]", kindSystem},
		{"[trace] Events: 2", kindTrace},
		{"", kindScene},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"You find a hidden village with a shop and a healer.", 30,
			"You find a hidden village with\na shop and a healer."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("attack")
	h.Push("go north")
	h.Push("shop")

	for _, want := range []string{"shop", "go north", "attack", "attack"} {
		prev, ok := h.Prev()
		if !ok || prev != want {
			t.Errorf("Prev() = %q (ok=%v), want %q", prev, ok, want)
		}
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("attack")
	h.Push("go north")

	h.Prev() // "go north"
	h.Prev() // "attack"

	next, ok := h.Next()
	if !ok || next != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", next, ok)
	}

	if _, ok = h.Next(); ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	for _, want := range []string{"c", "b", "b"} {
		if prev, _ := h.Prev(); prev != want {
			t.Errorf("Prev() = %q, want %q", prev, want)
		}
	}
}

func TestHistory_RepeatMovesToNewest(t *testing.T) {
	h := NewHistory(5)
	h.Push("attack")
	h.Push("defend")
	h.Push("ATTACK")

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if prev, _ := h.Prev(); prev != "ATTACK" {
		t.Errorf("newest = %q, want ATTACK", prev)
	}
	if prev, _ := h.Prev(); prev != "defend" {
		t.Errorf("older = %q, want defend", prev)
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("attack")
	h.Push("go north")

	h.Prev()
	h.Prev()
	h.ResetCursor()

	prev, ok := h.Prev()
	if !ok || prev != "go north" {
		t.Errorf("expected 'go north' after reset, got %q", prev)
	}
}

// testDefs returns minimal game definitions for TUI testing.
func testDefs() *state.Defs {
	n := decimal.NewFromInt
	return &state.Defs{
		Game: types.GameDef{
			Title: "Test Game",
			Intro: "Welcome to the test.",
			Scene: "A dark forest.",
			North: "A quiet village.",
		},
		Player: types.CombatantDef{Name: "Hero", HP: n(100), Stamina: n(100), Attack: n(20), Gold: n(50)},
		Enemy:  types.CombatantDef{Name: "Goblin", HP: n(80), Stamina: n(100), Attack: n(15)},
		Shop: types.ShopDef{Name: "Test Shop", Items: []types.ItemDef{
			{Name: "Potion", Cost: n(20)},
		}},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(testDefs(), "", 7)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	m := New(context.Background(), eng, save.NewFileStore(t.TempDir()))
	m.width = 120
	return m
}

// submit types a line into the input and presses enter.
func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, _ := m.handleEnter()
	return next.(Model)
}

func TestInitialOutput(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(introMsg(m.engine.Intro()))
	out := next.(Model).log.plain()
	for _, want := range []string{"Welcome to Test Game!", "Welcome to the test.", "A dark forest."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in intro", want)
		}
	}
}

func TestHandleEnter_GameCommand(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "go north")

	out := m.log.plain()
	if !strings.Contains(out, "> go north") {
		t.Error("expected echoed input")
	}
	if !strings.Contains(out, "A quiet village.") {
		t.Error("expected village scene")
	}
	if m.lastCmd != "go north" {
		t.Errorf("lastCmd = %q", m.lastCmd)
	}
	if m.history.Len() != 1 {
		t.Errorf("history length = %d, want 1", m.history.Len())
	}
}

func TestHandleEnter_BlankIgnored(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "   ")
	if len(m.log.entries) != 0 || m.history.Len() != 0 {
		t.Error("blank input should leave no trace")
	}
}

func TestHandleEnter_Again(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "g")
	if !strings.Contains(m.log.plain(), "[Nothing to repeat.]") {
		t.Error("expected nothing-to-repeat message")
	}

	m = submit(t, m, "shop")
	m = submit(t, m, "/status")
	m = submit(t, m, "again")
	if got := strings.Count(m.log.plain(), "Welcome to Test Shop!"); got != 2 {
		t.Errorf("shop listing shown %d times, want 2", got)
	}
}

func TestHandleEnter_ExitSavesAndQuits(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "go north")
	m = submit(t, m, "exit")

	if !m.quitting {
		t.Error("expected quitting after exit")
	}
	out := m.log.plain()
	if !strings.Contains(out, "Thanks for playing!") || !strings.Contains(out, "[Game saved for Hero.]") {
		t.Errorf("expected farewell and save confirmation, got:\n%s", out)
	}
	sn, err := m.meta.Store.Load(context.Background(), "Hero")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sn.Scene != "A quiet village." {
		t.Errorf("saved scene = %q", sn.Scene)
	}
}

func TestHandleEnter_Quit(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/quit")
	if !m.quitting {
		t.Error("expected quitting after /quit")
	}
	if _, err := m.meta.Store.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestHandleEnter_MetaOutputStyles(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/status")
	m = submit(t, m, "/save")

	out := m.log.plain()
	if strings.Contains(out, "[Hero HP:") {
		t.Error("status listing should not be bracketed")
	}
	if !strings.Contains(out, "[Game saved for Hero.]") {
		t.Error("save notice should be bracketed")
	}
}

func TestHandleEnter_Trace(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/trace")
	m = submit(t, m, "go south")

	if !strings.Contains(m.log.plain(), "[trace]   battle_started") {
		t.Error("expected trace line for battle_started")
	}
}

func TestTranscriptRender(t *testing.T) {
	var tr transcript
	tr.addInput("go north")
	tr.addGame([]string{"You find a hidden village with a shop and a healer."})
	tr.addSystem([]string{"Game saved for Hero."})
	tr.endTurn()

	if got := len(tr.entries); got != 4 {
		t.Fatalf("entries = %d, want 4", got)
	}
	if tr.entries[2].kind != kindSystem || tr.entries[2].text != "[Game saved for Hero.]" {
		t.Errorf("system entry = %+v", tr.entries[2])
	}
	if !tr.entries[0].echo {
		t.Error("input entry should be marked as echo")
	}

	rendered := tr.render(30)
	if !strings.Contains(rendered, "village with") || !strings.Contains(rendered, "a shop and a healer.") {
		t.Errorf("render lost text: %q", rendered)
	}
	if strings.Count(rendered, "\n") < 4 {
		t.Errorf("expected the long line to wrap at width 30: %q", rendered)
	}
}

func TestStatusParts(t *testing.T) {
	m := newTestModel(t)

	left, right, low := m.statusParts()
	if left != " Hero Lv1 | HP 100/100 | ST 100 | Gold 50" {
		t.Errorf("left = %q", left)
	}
	if right != "Exploring " {
		t.Errorf("right = %q", right)
	}
	if low {
		t.Error("full HP should not be low")
	}

	submit(t, m, "shop:Potion")
	if _, right, _ = m.statusParts(); right != "Items: Potion | Exploring " {
		t.Errorf("right with items = %q", right)
	}

	submit(t, m, "go south")
	if _, right, _ = m.statusParts(); right != "vs Goblin HP 80/80 " {
		t.Errorf("right in battle = %q", right)
	}

	m.engine.Session.Player.ApplyDamage(decimal.NewFromInt(80))
	if _, _, low = m.statusParts(); !low {
		t.Error("20/100 HP should be low")
	}
}

func TestRenderStatusBar(t *testing.T) {
	m := newTestModel(t)
	bar := m.renderStatusBar()
	if !strings.Contains(bar, "HP 100/100") || !strings.Contains(bar, "Exploring") {
		t.Errorf("status bar missing fields: %q", bar)
	}
}
