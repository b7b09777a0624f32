package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/inventory"
	"github.com/nathoo/aiadventure/engine/progression"
	"github.com/nathoo/aiadventure/engine/shop"
	"github.com/nathoo/aiadventure/types"
)

// Combat constants.
const (
	AttackStaminaCost = 10
	SwordStaminaCost  = 20
	MinAttackDamage   = 10
	MinSwordDamage    = 20
	MinEnemyDamage    = 10
	PotionHeal        = 30
	VictoryExperience = 20
	VictoryGold       = 30
)

// Action is the player's choice for one round.
type Action int

const (
	ActionInvalid Action = iota
	ActionAttack
	ActionUseSword
	ActionDefend
	ActionUseArmor
	ActionUsePotion
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionUseSword:
		return "use sword"
	case ActionDefend:
		return "defend"
	case ActionUseArmor:
		return "use armor"
	case ActionUsePotion:
		return "use potion"
	default:
		return "invalid"
	}
}

// BattleState is the state of an encounter.
type BattleState int

const (
	BattleInProgress BattleState = iota
	BattlePlayerDefeated
	BattleEnemyDefeated
)

func (s BattleState) String() string {
	switch s {
	case BattleInProgress:
		return "in progress"
	case BattlePlayerDefeated:
		return "player defeated"
	case BattleEnemyDefeated:
		return "enemy defeated"
	default:
		return "unknown"
	}
}

// Terminal reports whether the battle has ended.
func (s BattleState) Terminal() bool {
	return s != BattleInProgress
}

// RoundReport describes what happened in one round.
type RoundReport struct {
	Round         int
	Action        Action
	PlayerDamage  int // dealt to the enemy
	EnemyDamage   int // dealt to the player, after mitigation
	Healed        decimal.Decimal
	EnemyAttacked bool
	Player        character.Status
	Enemy         character.Status
	State         BattleState
	Output        []string
	Events        []types.Event
}

// Battle is one encounter between the player and an enemy.
type Battle struct {
	player *character.Character
	enemy  *character.Character
	rng    *RNG
	state  BattleState
	round  int
}

// NewBattle starts an encounter. Both combatants must be distinct, carry
// the right role, and have HP above zero.
func NewBattle(player, enemy *character.Character, rng *RNG) (*Battle, error) {
	switch {
	case player == nil || enemy == nil || rng == nil:
		return nil, fmt.Errorf("%w: missing combatant or rng", ErrInvalidBattle)
	case player == enemy || player.ID() == enemy.ID():
		return nil, fmt.Errorf("%w: combatants must be distinct", ErrInvalidBattle)
	case player.Role() != character.RolePlayer || enemy.Role() != character.RoleEnemy:
		return nil, fmt.Errorf("%w: expected player vs enemy", ErrInvalidBattle)
	case !player.Alive() || !enemy.Alive():
		return nil, fmt.Errorf("%w: both combatants must have HP", ErrInvalidBattle)
	}
	return &Battle{player: player, enemy: enemy, rng: rng}, nil
}

// State returns the current battle state.
func (b *Battle) State() BattleState {
	return b.state
}

// Rounds returns the number of rounds resolved so far, invalid ones included.
func (b *Battle) Rounds() int {
	return b.round
}

// Round resolves one player action followed, when the action was valid and
// the enemy still stands, by the enemy's attack. An invalid action returns
// ErrInvalidAction alongside a report; the enemy does not attack that round.
func (b *Battle) Round(action Action) (RoundReport, error) {
	if b.state.Terminal() {
		return RoundReport{State: b.state}, ErrBattleOver
	}
	b.round++
	rep := RoundReport{Round: b.round, Action: action}

	divisor, err := b.playerPhase(action, &rep)
	if err != nil {
		rep.Events = append(rep.Events, types.Event{
			Type: "invalid_action",
			Data: map[string]any{"action": action.String(), "reason": err.Error()},
		})
		b.snapshot(&rep)
		return rep, err
	}

	if b.enemy.Alive() {
		b.enemyPhase(divisor, &rep)
	}

	b.snapshot(&rep)
	rep.Output = append(rep.Output, rep.Player.String(), rep.Enemy.String())
	rep.Events = append(rep.Events, types.Event{
		Type: "round",
		Data: map[string]any{
			"round":        rep.Round,
			"action":       action.String(),
			"player_dealt": rep.PlayerDamage,
			"enemy_dealt":  rep.EnemyDamage,
		},
	})

	b.settle(&rep)
	rep.State = b.state
	return rep, nil
}

// playerPhase applies exactly one player effect and returns the divisor for
// the enemy's damage this round.
func (b *Battle) playerPhase(action Action, rep *RoundReport) (int, error) {
	p := b.player
	inv := p.Inventory()

	switch action {
	case ActionAttack:
		if err := p.SpendStamina(decimal.NewFromInt(AttackStaminaCost)); err != nil {
			return reject(rep, "Not enough stamina to attack!", err)
		}
		dmg := b.rng.Between(MinAttackDamage, int(p.Attack().IntPart()))
		b.enemy.ApplyDamage(decimal.NewFromInt(int64(dmg)))
		rep.PlayerDamage = dmg
		rep.Output = append(rep.Output, fmt.Sprintf("You attack and deal %d damage!", dmg))
		return 1, nil

	case ActionUseSword:
		if !inv.Contains(shop.SwordUpgrade) {
			return reject(rep, "You have no sword upgrade to use!", inventory.ErrItemNotFound)
		}
		if err := p.SpendStamina(decimal.NewFromInt(SwordStaminaCost)); err != nil {
			return reject(rep, "Not enough stamina to swing the sword!", err)
		}
		inv.RemoveByName(shop.SwordUpgrade)
		dmg := b.rng.Between(MinSwordDamage, 2*int(p.Attack().IntPart()))
		b.enemy.ApplyDamage(decimal.NewFromInt(int64(dmg)))
		rep.PlayerDamage = dmg
		rep.Output = append(rep.Output, fmt.Sprintf("You swing the upgraded sword and deal %d damage!", dmg))
		return 1, nil

	case ActionDefend:
		rep.Output = append(rep.Output, "You defend, reducing incoming damage.")
		return 2, nil

	case ActionUseArmor:
		if !inv.RemoveByName(shop.Armor) {
			return reject(rep, "You have no armor to use!", inventory.ErrItemNotFound)
		}
		rep.Output = append(rep.Output, "You strap on the armor, greatly reducing incoming damage.")
		return 4, nil

	case ActionUsePotion:
		if !inv.RemoveByName(shop.Potion) {
			return reject(rep, "Invalid action or no potions left!", inventory.ErrItemNotFound)
		}
		rep.Healed = p.Heal(decimal.NewFromInt(PotionHeal))
		rep.Output = append(rep.Output, fmt.Sprintf("You use a potion and restore %s HP!", rep.Healed))
		return 1, nil

	default:
		return reject(rep, "Invalid action! (attack, use sword, defend, use armor, use potion)", nil)
	}
}

// reject records the failure message and wraps cause, if any, under
// ErrInvalidAction.
func reject(rep *RoundReport, msg string, cause error) (int, error) {
	rep.Output = append(rep.Output, msg)
	if cause == nil {
		return 0, ErrInvalidAction
	}
	return 0, fmt.Errorf("%w: %w", ErrInvalidAction, cause)
}

// enemyPhase rolls the enemy's attack and applies the mitigation divisor
// with integer floor division.
func (b *Battle) enemyPhase(divisor int, rep *RoundReport) {
	dmg := b.rng.Between(MinEnemyDamage, int(b.enemy.Attack().IntPart())) / divisor
	b.player.ApplyDamage(decimal.NewFromInt(int64(dmg)))
	rep.EnemyDamage = dmg
	rep.EnemyAttacked = true
	rep.Output = append(rep.Output, fmt.Sprintf("%s attacks and deals %d damage!", b.enemy.Name(), dmg))
}

// settle moves the battle to a terminal state once a side is down and
// hands out rewards. Defeat is soft: the loser recovers fully, and the enemy
// recovers whatever the outcome.
func (b *Battle) settle(rep *RoundReport) {
	xp := decimal.NewFromInt(VictoryExperience)

	switch {
	case !b.player.Alive():
		b.state = BattlePlayerDefeated
		b.enemy.GainExperience(xp)
		leveled := progression.MaybeLevelUp(b.enemy)
		b.player.RecoverFully()
		b.enemy.RecoverFully()
		rep.Output = append(rep.Output, "You have been defeated!", "You come to your senses, fully recovered.")
		rep.Events = append(rep.Events, types.Event{Type: "player_defeated", Data: map[string]any{"enemy": b.enemy.Name()}})
		if leveled {
			rep.Output = append(rep.Output, fmt.Sprintf("%s grows stronger!", b.enemy.Name()))
			rep.Events = append(rep.Events, levelEvent(b.enemy))
		}

	case !b.enemy.Alive():
		b.state = BattleEnemyDefeated
		b.player.GainExperience(xp)
		b.player.EarnGold(decimal.NewFromInt(VictoryGold))
		leveled := progression.MaybeLevelUp(b.player)
		b.enemy.RecoverFully()
		rep.Output = append(rep.Output, "You defeated the enemy!",
			fmt.Sprintf("You gain %d XP and %d gold.", VictoryExperience, VictoryGold))
		rep.Events = append(rep.Events, types.Event{Type: "enemy_defeated", Data: map[string]any{"enemy": b.enemy.Name()}})
		if leveled {
			rep.Output = append(rep.Output, "Congratulations! You leveled up!")
			rep.Events = append(rep.Events, levelEvent(b.player))
		}

	default:
		return
	}
	b.snapshot(rep)
}

func (b *Battle) snapshot(rep *RoundReport) {
	rep.Player = b.player.Status()
	rep.Enemy = b.enemy.Status()
	rep.State = b.state
}

func levelEvent(c *character.Character) types.Event {
	return types.Event{
		Type: "level_up",
		Data: map[string]any{"name": c.Name(), "role": string(c.Role()), "level": c.Level()},
	}
}
