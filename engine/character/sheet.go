package character

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/inventory"
)

// Sheet is the exported, serializable form of a Character.
type Sheet struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Role               Role             `json:"role"`
	Level              int              `json:"level"`
	MaxHP              decimal.Decimal  `json:"max_hp"`
	HP                 decimal.Decimal  `json:"hp"`
	Stamina            decimal.Decimal  `json:"stamina"`
	MaxStamina         decimal.Decimal  `json:"max_stamina"`
	Attack             decimal.Decimal  `json:"attack"`
	Experience         decimal.Decimal  `json:"experience"`
	RequiredExperience decimal.Decimal  `json:"required_experience"`
	Gold               decimal.Decimal  `json:"gold"`
	Inventory          []inventory.Item `json:"inventory"`
}

// Sheet returns a deep copy of the character's state.
func (c *Character) Sheet() Sheet {
	return Sheet{
		ID:                 c.id,
		Name:               c.name,
		Role:               c.role,
		Level:              c.level,
		MaxHP:              c.maxHP,
		HP:                 c.hp,
		Stamina:            c.stamina,
		MaxStamina:         c.maxStamina,
		Attack:             c.attack,
		Experience:         c.xp,
		RequiredExperience: c.requiredXP,
		Gold:               c.gold,
		Inventory:          c.inv.List(),
	}
}

// FromSheet rebuilds a character, rejecting sheets that break an invariant.
func FromSheet(s Sheet) (*Character, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Character{
		id:         s.ID,
		name:       s.Name,
		role:       s.Role,
		level:      s.Level,
		maxHP:      s.MaxHP,
		hp:         s.HP,
		stamina:    s.Stamina,
		maxStamina: s.MaxStamina,
		attack:     s.Attack,
		xp:         s.Experience,
		requiredXP: s.RequiredExperience,
		gold:       s.Gold,
		inv:        inventory.New(s.Inventory...),
	}, nil
}

// Validate checks the stat invariants.
func (s Sheet) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidSheet)
	case s.Role != RolePlayer && s.Role != RoleEnemy:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidSheet, s.Role)
	case s.Level < 1:
		return fmt.Errorf("%w: level %d", ErrInvalidSheet, s.Level)
	case !s.RequiredExperience.Equal(RequiredExperience(s.Level)):
		return fmt.Errorf("%w: required experience %s, want %s for level %d",
			ErrInvalidSheet, s.RequiredExperience, RequiredExperience(s.Level), s.Level)
	case !s.MaxHP.IsPositive():
		return fmt.Errorf("%w: max hp %s", ErrInvalidSheet, s.MaxHP)
	case !s.MaxStamina.Equal(MaxStamina):
		return fmt.Errorf("%w: max stamina %s, want %s", ErrInvalidSheet, s.MaxStamina, MaxStamina)
	case s.HP.IsNegative() || s.HP.GreaterThan(s.MaxHP):
		return fmt.Errorf("%w: hp %s outside [0, %s]", ErrInvalidSheet, s.HP, s.MaxHP)
	case s.Stamina.IsNegative() || s.Stamina.GreaterThan(s.MaxStamina):
		return fmt.Errorf("%w: stamina %s outside [0, %s]", ErrInvalidSheet, s.Stamina, s.MaxStamina)
	case !s.Attack.IsPositive():
		return fmt.Errorf("%w: attack %s", ErrInvalidSheet, s.Attack)
	case s.Experience.IsNegative() || s.Gold.IsNegative():
		return fmt.Errorf("%w: negative experience or gold", ErrInvalidSheet)
	}
	return nil
}

// Equal compares two sheets field by field, including inventory order.
func (s Sheet) Equal(o Sheet) bool {
	if s.ID != o.ID || s.Name != o.Name || s.Role != o.Role || s.Level != o.Level {
		return false
	}
	nums := [][2]decimal.Decimal{
		{s.MaxHP, o.MaxHP}, {s.HP, o.HP},
		{s.Stamina, o.Stamina}, {s.MaxStamina, o.MaxStamina},
		{s.Attack, o.Attack}, {s.Experience, o.Experience},
		{s.RequiredExperience, o.RequiredExperience}, {s.Gold, o.Gold},
	}
	for _, n := range nums {
		if !n[0].Equal(n[1]) {
			return false
		}
	}
	if len(s.Inventory) != len(o.Inventory) {
		return false
	}
	for i := range s.Inventory {
		if !s.Inventory[i].Equal(o.Inventory[i]) {
			return false
		}
	}
	return true
}
