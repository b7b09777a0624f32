package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func potion() Item { return NewItem("Potion", decimal.NewFromInt(20)) }
func armor() Item  { return NewItem("Armor", decimal.NewFromInt(40)) }

func TestAdd_AllowsDuplicates(t *testing.T) {
	inv := New()
	inv.Add(potion())
	inv.Add(potion())

	if inv.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", inv.Len())
	}
	if inv.Count("Potion") != 2 {
		t.Errorf("expected 2 potions, got %d", inv.Count("Potion"))
	}
}

func TestRemoveByName_FirstMatchOnly(t *testing.T) {
	inv := New(potion(), armor(), potion())

	if !inv.RemoveByName("Potion") {
		t.Fatal("expected removal to succeed")
	}
	names := inv.Names()
	if len(names) != 2 || names[0] != "Armor" || names[1] != "Potion" {
		t.Errorf("unexpected contents after removal: %v", names)
	}
}

func TestRemoveByName_MissLeavesInventory(t *testing.T) {
	inv := New(armor())

	if inv.RemoveByName("Potion") {
		t.Fatal("expected removal of missing item to fail")
	}
	if inv.Len() != 1 {
		t.Errorf("inventory changed on failed removal: %v", inv.Names())
	}
}

func TestRemoveByName_CaseSensitive(t *testing.T) {
	inv := New(potion())

	if inv.RemoveByName("potion") {
		t.Error("expected case-sensitive miss")
	}
}

func TestTake_ReportsItemNotFound(t *testing.T) {
	inv := New()

	_, err := inv.Take("Sword Upgrade")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestTake_ReturnsRemovedItem(t *testing.T) {
	inv := New(armor())

	it, err := inv.Take("Armor")
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if !it.Equal(armor()) {
		t.Errorf("expected armor, got %+v", it)
	}
	if inv.Contains("Armor") {
		t.Error("armor should be gone")
	}
}

func TestList_IsACopy(t *testing.T) {
	inv := New(potion())

	list := inv.List()
	list[0] = armor()

	if !inv.Contains("Potion") || inv.Contains("Armor") {
		t.Errorf("mutating List result changed inventory: %v", inv.Names())
	}
}

func TestAdd_ClonesItem(t *testing.T) {
	src := potion()
	a := New()
	b := New()
	a.Add(src)
	b.Add(src)

	a.RemoveByName("Potion")

	if !b.Contains("Potion") {
		t.Error("removing from one inventory affected another")
	}
}
