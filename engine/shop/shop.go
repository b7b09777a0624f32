// Package shop implements the catalog and the purchase transaction between
// a character's gold and inventory.
package shop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/inventory"
)

// Well-known item names the battle engine looks for.
const (
	Potion       = "Potion"
	SwordUpgrade = "Sword Upgrade"
	Armor        = "Armor"
)

// ErrPurchaseDenied is returned for every failed purchase. The wrapped
// cause is ErrUnknownItem or ErrInsufficientFunds.
var ErrPurchaseDenied = errors.New("purchase denied")

var (
	// ErrUnknownItem means the name matches no catalog entry exactly.
	ErrUnknownItem = errors.New("unknown item")
	// ErrInsufficientFunds means the buyer holds less gold than the item costs.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Catalog is the ordered list of item templates a shop sells.
type Catalog []inventory.Item

// DefaultCatalog returns the stock of the village shop.
func DefaultCatalog() Catalog {
	return Catalog{
		inventory.NewItem(Potion, decimal.NewFromInt(20)),
		inventory.NewItem(SwordUpgrade, decimal.NewFromInt(50)),
		inventory.NewItem(Armor, decimal.NewFromInt(40)),
	}
}

// Lookup finds an item by exact name.
func (c Catalog) Lookup(name string) (inventory.Item, bool) {
	for _, it := range c {
		if it.Name == name {
			return it, true
		}
	}
	return inventory.Item{}, false
}

// Resolve maps a case-insensitive name to the catalog's spelling.
func (c Catalog) Resolve(name string) (string, bool) {
	for _, it := range c {
		if strings.EqualFold(it.Name, strings.TrimSpace(name)) {
			return it.Name, true
		}
	}
	return "", false
}

// Shop mediates purchases. It never owns gold or items.
type Shop struct {
	Name    string
	Catalog Catalog
}

// New creates a shop selling copies of the given catalog.
func New(name string, catalog Catalog) *Shop {
	items := make(Catalog, len(catalog))
	copy(items, catalog)
	return &Shop{Name: name, Catalog: items}
}

// Purchase sells one copy of itemName to c. On success gold drops by the
// item's cost and one copy lands in c's inventory; on failure nothing changes.
func (s *Shop) Purchase(c *character.Character, itemName string) (inventory.Item, error) {
	item, ok := s.Catalog.Lookup(itemName)
	if !ok {
		return inventory.Item{}, fmt.Errorf("%w: %w: %q", ErrPurchaseDenied, ErrUnknownItem, itemName)
	}
	if err := c.SpendGold(item.GoldCost); err != nil {
		return inventory.Item{}, fmt.Errorf("%w: %w: %s costs %s, have %s",
			ErrPurchaseDenied, ErrInsufficientFunds, item.Name, item.GoldCost, c.Gold())
	}
	c.Inventory().Add(item)
	return item, nil
}

// Listing returns one display line per catalog item.
func (s *Shop) Listing() []string {
	lines := make([]string, 0, len(s.Catalog))
	for _, it := range s.Catalog {
		lines = append(lines, fmt.Sprintf("%s: %s Gold", it.Name, it.GoldCost))
	}
	return lines
}
