package progression

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/character"
)

func hero(t *testing.T) *character.Character {
	t.Helper()
	c, err := character.New(character.RolePlayer, "Hero", character.Stats{
		HP: decimal.NewFromInt(100), Stamina: decimal.NewFromInt(100), Attack: decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestMaybeLevelUp_BelowThreshold(t *testing.T) {
	c := hero(t)
	c.GainExperience(decimal.NewFromInt(49))

	if MaybeLevelUp(c) {
		t.Fatal("leveled up below threshold")
	}
	if c.Level() != 1 {
		t.Errorf("expected level 1, got %d", c.Level())
	}
}

func TestMaybeLevelUp_AtThreshold(t *testing.T) {
	c := hero(t)
	c.GainExperience(decimal.NewFromInt(50))

	if !MaybeLevelUp(c) {
		t.Fatal("expected level up at threshold")
	}
	if c.Level() != 2 {
		t.Errorf("expected level 2, got %d", c.Level())
	}
	if !c.RequiredExperience().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected required XP 100, got %s", c.RequiredExperience())
	}
	if !c.MaxHP().Equal(decimal.NewFromInt(120)) || !c.Attack().Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected stats: maxHP %s attack %s", c.MaxHP(), c.Attack())
	}
}

func TestMaybeLevelUp_OneTierPerCall(t *testing.T) {
	c := hero(t)
	c.GainExperience(decimal.NewFromInt(500))

	MaybeLevelUp(c)
	if c.Level() != 2 {
		t.Fatalf("expected a single level per call, got level %d", c.Level())
	}

	// Repeated checks keep climbing while XP covers the threshold.
	for MaybeLevelUp(c) {
	}
	// Thresholds 100 through 500 are all met by 500 XP.
	if c.Level() != 11 {
		t.Errorf("expected level 11 after repeated checks, got %d", c.Level())
	}
	want := decimal.NewFromInt(int64(c.Level() * character.ExperiencePerLevel))
	if !c.RequiredExperience().Equal(want) {
		t.Errorf("expected required XP %s, got %s", want, c.RequiredExperience())
	}
}
