package shop

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/character"
)

func buyer(t *testing.T, gold int64) *character.Character {
	t.Helper()
	c, err := character.New(character.RolePlayer, "Hero", character.Stats{
		HP: decimal.NewFromInt(100), Stamina: decimal.NewFromInt(100),
		Attack: decimal.NewFromInt(20), Gold: decimal.NewFromInt(gold),
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPurchase_Success(t *testing.T) {
	s := New("Village Shop", DefaultCatalog())
	c := buyer(t, 50)

	item, err := s.Purchase(c, Potion)
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if item.Name != Potion {
		t.Errorf("expected Potion, got %q", item.Name)
	}
	if !c.Gold().Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected 30 gold left, got %s", c.Gold())
	}
	if c.Inventory().Count(Potion) != 1 || c.Inventory().Len() != 1 {
		t.Errorf("expected exactly one potion, got %v", c.Inventory().Names())
	}
}

func TestPurchase_ExactFunds(t *testing.T) {
	s := New("Village Shop", DefaultCatalog())
	c := buyer(t, 50)

	if _, err := s.Purchase(c, SwordUpgrade); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if !c.Gold().IsZero() {
		t.Errorf("expected 0 gold, got %s", c.Gold())
	}
}

func TestPurchase_Denied(t *testing.T) {
	tests := []struct {
		name  string
		gold  int64
		item  string
		cause error
	}{
		{"insufficient funds", 30, Armor, ErrInsufficientFunds},
		{"unknown item", 500, "Dragon", ErrUnknownItem},
		{"case mismatch", 500, "potion", ErrUnknownItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("Village Shop", DefaultCatalog())
			c := buyer(t, tt.gold)

			_, err := s.Purchase(c, tt.item)
			if !errors.Is(err, ErrPurchaseDenied) {
				t.Fatalf("expected ErrPurchaseDenied, got %v", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
			if !c.Gold().Equal(decimal.NewFromInt(tt.gold)) {
				t.Errorf("gold changed on denial: %s", c.Gold())
			}
			if c.Inventory().Len() != 0 {
				t.Errorf("inventory changed on denial: %v", c.Inventory().Names())
			}
		})
	}
}

func TestPurchase_CopiesAreIndependent(t *testing.T) {
	s := New("Village Shop", DefaultCatalog())
	a := buyer(t, 100)
	b := buyer(t, 100)

	s.Purchase(a, Potion)
	s.Purchase(b, Potion)
	a.Inventory().RemoveByName(Potion)

	if !b.Inventory().Contains(Potion) {
		t.Error("purchased copies alias each other")
	}
	if _, ok := s.Catalog.Lookup(Potion); !ok {
		t.Error("catalog template was consumed")
	}
}

func TestNew_CopiesCatalog(t *testing.T) {
	cat := DefaultCatalog()
	s := New("Village Shop", cat)
	cat[0].Name = "Changed"

	if s.Catalog[0].Name != Potion {
		t.Errorf("shop catalog aliases caller slice: %q", s.Catalog[0].Name)
	}
}

func TestCatalog_Resolve(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"potion", Potion, true},
		{"SWORD UPGRADE", SwordUpgrade, true},
		{" armor ", Armor, true},
		{"shield", "", false},
	}
	for _, tt := range tests {
		got, ok := cat.Resolve(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestListing(t *testing.T) {
	s := New("Village Shop", DefaultCatalog())
	lines := s.Listing()
	if len(lines) != 3 || lines[0] != "Potion: 20 Gold" {
		t.Errorf("unexpected listing: %v", lines)
	}
}
