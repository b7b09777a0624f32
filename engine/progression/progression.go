// Package progression applies the experience and leveling rule.
package progression

import (
	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/character"
)

var (
	// HPPerLevel is added to max HP on each level up.
	HPPerLevel = decimal.NewFromInt(20)
	// AttackPerLevel is added to attack on each level up.
	AttackPerLevel = decimal.NewFromInt(5)
)

// MaybeLevelUp advances c by at most one level when its experience has
// reached the threshold. A single large gain still yields one level per
// call; the next check picks up the remainder.
func MaybeLevelUp(c *character.Character) bool {
	if c.Experience().LessThan(c.RequiredExperience()) {
		return false
	}
	c.LevelUp(HPPerLevel, AttackPerLevel)
	return true
}
