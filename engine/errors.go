package engine

import "errors"

var (
	// ErrInvalidAction marks an unrecognized battle command or one whose
	// precondition failed. The round is consumed and the enemy does not
	// counter-attack.
	ErrInvalidAction = errors.New("invalid action")

	// ErrBattleOver is returned when a round is requested after the battle
	// reached a terminal state.
	ErrBattleOver = errors.New("battle is over")

	// ErrNoBattle is returned for combat commands outside an encounter.
	ErrNoBattle = errors.New("no battle in progress")

	// ErrInvalidBattle is returned when combatants cannot start a battle.
	ErrInvalidBattle = errors.New("invalid battle")
)
