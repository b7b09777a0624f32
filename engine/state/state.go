// Package state holds the immutable game definitions and the mutable
// session built from them.
package state

import (
	"fmt"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/shop"
	"github.com/nathoo/aiadventure/types"
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game   types.GameDef
	Player types.CombatantDef
	Enemy  types.CombatantDef
	Shop   types.ShopDef

	Handlers []types.EventHandler
}

// Catalog converts the shop definition into a catalog.
func (d *Defs) Catalog() shop.Catalog {
	cat := make(shop.Catalog, 0, len(d.Shop.Items))
	for _, it := range d.Shop.Items {
		cat = append(cat, shopItem(it))
	}
	return cat
}

// Session is the complete mutable state of one player's game. It is owned
// by a single engine and mutated only through the character, inventory and
// shop contracts.
type Session struct {
	PlayerName string
	Player     *character.Character
	Enemy      *character.Character
	Shop       *shop.Shop
	Scene      string
}

// NewSession creates a fresh session from definitions. An empty playerName
// falls back to the player definition's name.
func NewSession(defs *Defs, playerName string) (*Session, error) {
	if playerName == "" {
		playerName = defs.Player.Name
	}
	catalog := defs.Catalog()

	player, err := newCombatant(character.RolePlayer, playerName, defs.Player, catalog)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	enemy, err := newCombatant(character.RoleEnemy, defs.Enemy.Name, defs.Enemy, catalog)
	if err != nil {
		return nil, fmt.Errorf("creating enemy: %w", err)
	}

	return &Session{
		PlayerName: playerName,
		Player:     player,
		Enemy:      enemy,
		Shop:       shop.New(defs.Shop.Name, catalog),
		Scene:      defs.Game.Scene,
	}, nil
}

func newCombatant(role character.Role, name string, def types.CombatantDef, catalog shop.Catalog) (*character.Character, error) {
	c, err := character.New(role, name, character.Stats{
		HP:      def.HP,
		Stamina: def.Stamina,
		Attack:  def.Attack,
		Gold:    def.Gold,
	})
	if err != nil {
		return nil, err
	}
	// Starting grants come from the catalog so every item is traceable to it.
	for _, name := range def.Items {
		it, ok := catalog.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("starting item %q not in catalog", name)
		}
		c.Inventory().Add(it)
	}
	return c, nil
}
