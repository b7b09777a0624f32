package character

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is a point-in-time view of a character for display.
type Status struct {
	Name       string
	Role       Role
	Level      int
	HP         decimal.Decimal
	MaxHP      decimal.Decimal
	Stamina    decimal.Decimal
	Experience decimal.Decimal
	Gold       decimal.Decimal
}

// Status captures the current stats.
func (c *Character) Status() Status {
	return Status{
		Name:       c.name,
		Role:       c.role,
		Level:      c.level,
		HP:         c.hp,
		MaxHP:      c.maxHP,
		Stamina:    c.stamina,
		Experience: c.xp,
		Gold:       c.gold,
	}
}

func (s Status) String() string {
	if s.Role == RoleEnemy {
		return fmt.Sprintf("%s HP: %s/%s, Level: %d", s.Name, s.HP, s.MaxHP, s.Level)
	}
	return fmt.Sprintf("%s HP: %s/%s, Stamina: %s, XP: %s, Level: %d, Gold: %s",
		s.Name, s.HP, s.MaxHP, s.Stamina, s.Experience, s.Level, s.Gold)
}
