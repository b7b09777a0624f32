package state

import (
	"github.com/nathoo/aiadventure/engine/inventory"
	"github.com/nathoo/aiadventure/types"
)

func shopItem(def types.ItemDef) inventory.Item {
	return inventory.NewItem(def.Name, def.Cost)
}
