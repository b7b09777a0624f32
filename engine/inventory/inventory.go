// Package inventory holds the ordered multiset of items a character owns.
package inventory

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when a removal names an item the inventory
// does not hold.
var ErrItemNotFound = errors.New("item not found in inventory")

// Item is an immutable value. Copying an Item is cloning it.
type Item struct {
	Name     string          `json:"name"`
	GoldCost decimal.Decimal `json:"gold_cost"`
}

// NewItem creates an item with the given name and cost.
func NewItem(name string, cost decimal.Decimal) Item {
	return Item{Name: name, GoldCost: cost}
}

// Equal reports whether two items have the same name and cost.
func (i Item) Equal(o Item) bool {
	return i.Name == o.Name && i.GoldCost.Equal(o.GoldCost)
}

// Inventory is an ordered sequence of items. Names need not be unique;
// duplicates are stacked copies.
type Inventory struct {
	items []Item
}

// New creates an inventory holding copies of the given items.
func New(items ...Item) *Inventory {
	inv := &Inventory{items: make([]Item, 0, len(items))}
	for _, it := range items {
		inv.Add(it)
	}
	return inv
}

// Add appends a copy of item.
func (inv *Inventory) Add(item Item) {
	inv.items = append(inv.items, item)
}

// Take removes the first item named name and returns it.
func (inv *Inventory) Take(name string) (Item, error) {
	for i, it := range inv.items {
		if it.Name == name {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// RemoveByName removes the first item named name. It returns false and
// leaves the inventory unchanged when no item matches.
func (inv *Inventory) RemoveByName(name string) bool {
	_, err := inv.Take(name)
	return err == nil
}

// Contains reports whether at least one item named name is held.
func (inv *Inventory) Contains(name string) bool {
	return inv.Count(name) > 0
}

// Count returns how many copies of name are held.
func (inv *Inventory) Count(name string) int {
	n := 0
	for _, it := range inv.items {
		if it.Name == name {
			n++
		}
	}
	return n
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// List returns a copy of the contents in order.
func (inv *Inventory) List() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Names returns the item names in order, for display.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.items))
	for _, it := range inv.items {
		names = append(names, it.Name)
	}
	return names
}
