// Package character implements the stat model shared by the player and
// enemies. A Role tag distinguishes the two; there is no type hierarchy.
package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/inventory"
)

// Role tags a character as the player or an enemy.
type Role string

const (
	RolePlayer Role = "player"
	RoleEnemy  Role = "enemy"
)

// ErrInsufficientResource is returned when a stamina or gold spend exceeds
// what the character has.
var ErrInsufficientResource = errors.New("insufficient resource")

// ErrInvalidSheet is returned when a sheet violates a stat invariant.
var ErrInvalidSheet = errors.New("invalid character sheet")

// MaxStamina is the fixed stamina ceiling for every character.
var MaxStamina = decimal.NewFromInt(100)

// ExperiencePerLevel scales the experience threshold: level * 50.
const ExperiencePerLevel = 50

// Stats are the starting values for a new character.
type Stats struct {
	HP      decimal.Decimal
	Stamina decimal.Decimal
	Attack  decimal.Decimal
	Gold    decimal.Decimal
}

// Character is a combatant. Fields are unexported: HP, stamina, gold and
// experience only change through the mutators below.
type Character struct {
	id         string
	name       string
	role       Role
	level      int
	maxHP      decimal.Decimal
	hp         decimal.Decimal
	stamina    decimal.Decimal
	maxStamina decimal.Decimal
	attack     decimal.Decimal
	xp         decimal.Decimal
	requiredXP decimal.Decimal
	gold       decimal.Decimal
	inv        *inventory.Inventory
}

// New creates a level 1 character at full HP with a fresh ID.
// Stamina is capped at MaxStamina.
func New(role Role, name string, stats Stats) (*Character, error) {
	if stats.HP.Sign() <= 0 {
		return nil, fmt.Errorf("%w: hp must be positive", ErrInvalidSheet)
	}
	if stats.Attack.Sign() <= 0 {
		return nil, fmt.Errorf("%w: attack must be positive", ErrInvalidSheet)
	}
	if stats.Stamina.IsNegative() || stats.Gold.IsNegative() {
		return nil, fmt.Errorf("%w: stamina and gold must not be negative", ErrInvalidSheet)
	}
	return &Character{
		id:         uuid.NewString(),
		name:       name,
		role:       role,
		level:      1,
		maxHP:      stats.HP,
		hp:         stats.HP,
		stamina:    decimal.Min(stats.Stamina, MaxStamina),
		maxStamina: MaxStamina,
		attack:     stats.Attack,
		xp:         decimal.Zero,
		requiredXP: RequiredExperience(1),
		gold:       stats.Gold,
		inv:        inventory.New(),
	}, nil
}

// RequiredExperience returns the experience threshold for a level.
func RequiredExperience(level int) decimal.Decimal {
	return decimal.NewFromInt(int64(level * ExperiencePerLevel))
}

func (c *Character) ID() string                          { return c.id }
func (c *Character) Name() string                        { return c.name }
func (c *Character) Role() Role                          { return c.role }
func (c *Character) Level() int                          { return c.level }
func (c *Character) HP() decimal.Decimal                 { return c.hp }
func (c *Character) MaxHP() decimal.Decimal              { return c.maxHP }
func (c *Character) Stamina() decimal.Decimal            { return c.stamina }
func (c *Character) MaxStamina() decimal.Decimal         { return c.maxStamina }
func (c *Character) Attack() decimal.Decimal             { return c.attack }
func (c *Character) Experience() decimal.Decimal         { return c.xp }
func (c *Character) RequiredExperience() decimal.Decimal { return c.requiredXP }
func (c *Character) Gold() decimal.Decimal               { return c.gold }
func (c *Character) Inventory() *inventory.Inventory     { return c.inv }

// Alive reports whether HP is above zero.
func (c *Character) Alive() bool {
	return c.hp.IsPositive()
}

// ApplyDamage lowers HP by amount, never below zero. Negative amounts are
// ignored. Returns the HP actually lost.
func (c *Character) ApplyDamage(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	lost := decimal.Min(amount, c.hp)
	c.hp = c.hp.Sub(lost)
	return lost
}

// Heal raises HP by amount, never above MaxHP. Returns the HP actually gained.
func (c *Character) Heal(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	gained := decimal.Min(amount, c.maxHP.Sub(c.hp))
	c.hp = c.hp.Add(gained)
	return gained
}

// SpendStamina deducts amount, or returns ErrInsufficientResource and
// leaves stamina unchanged.
func (c *Character) SpendStamina(amount decimal.Decimal) error {
	if c.stamina.LessThan(amount) {
		return fmt.Errorf("%w: stamina %s < %s", ErrInsufficientResource, c.stamina, amount)
	}
	c.stamina = c.stamina.Sub(amount)
	return nil
}

// RecoverFully restores HP to MaxHP.
func (c *Character) RecoverFully() {
	c.hp = c.maxHP
}

// EarnGold adds a non-negative amount of gold.
func (c *Character) EarnGold(amount decimal.Decimal) {
	if amount.IsPositive() {
		c.gold = c.gold.Add(amount)
	}
}

// SpendGold deducts amount, or returns ErrInsufficientResource and leaves
// gold unchanged.
func (c *Character) SpendGold(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: negative gold amount %s", ErrInvalidSheet, amount)
	}
	if c.gold.LessThan(amount) {
		return fmt.Errorf("%w: gold %s < %s", ErrInsufficientResource, c.gold, amount)
	}
	c.gold = c.gold.Sub(amount)
	return nil
}

// GainExperience adds a non-negative amount of experience.
func (c *Character) GainExperience(amount decimal.Decimal) {
	if amount.IsPositive() {
		c.xp = c.xp.Add(amount)
	}
}

// LevelUp advances one level, raising MaxHP (and HP, clamped) by hpBonus and
// attack by attackBonus, and resets the threshold for the new level.
func (c *Character) LevelUp(hpBonus, attackBonus decimal.Decimal) {
	c.level++
	c.maxHP = c.maxHP.Add(hpBonus)
	c.Heal(hpBonus)
	c.attack = c.attack.Add(attackBonus)
	c.requiredXP = RequiredExperience(c.level)
}
