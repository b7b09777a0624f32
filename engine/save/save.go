// Package save implements versioned JSON snapshots of a game session and
// the stores that persist them, one snapshot per player name.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nathoo/aiadventure/engine/character"
	"github.com/nathoo/aiadventure/engine/inventory"
	"github.com/nathoo/aiadventure/engine/shop"
	"github.com/nathoo/aiadventure/engine/state"
)

// SchemaVersion is the snapshot format written by this build.
const SchemaVersion = 1

// MaxRNGPosition bounds the stream position a snapshot may carry. Restoring
// replays the stream up to the position, so an unbounded value would stall
// the load; real games stay many orders of magnitude below it.
const MaxRNGPosition = 1 << 24

var (
	// ErrPersistence wraps every failure to read or write a snapshot.
	ErrPersistence = errors.New("persistence failure")
	// ErrNoSavedGames is returned when a load is requested and nothing has
	// been saved yet.
	ErrNoSavedGames = errors.New("no saved games")
	// ErrSaveNotFound is returned when saves exist but none for the name.
	ErrSaveNotFound = errors.New("save not found")
)

// ShopState is the persisted form of a shop.
type ShopState struct {
	Name    string           `json:"name"`
	Catalog []inventory.Item `json:"catalog"`
}

// Snapshot is the complete persisted state of one player's game.
type Snapshot struct {
	Version     int             `json:"version"`
	PlayerName  string          `json:"player_name"`
	Player      character.Sheet `json:"player"`
	Enemy       character.Sheet `json:"enemy"`
	Shop        ShopState       `json:"shop"`
	Scene       string          `json:"scene"`
	InBattle    bool            `json:"in_battle,omitempty"`
	BattleRound int             `json:"battle_round,omitempty"`
	RNGSeed     int64           `json:"rng_seed"`
	RNGPosition int64           `json:"rng_position"`
}

// Capture builds a snapshot of the session and the RNG stream position.
func Capture(s *state.Session, rngSeed, rngPosition int64) Snapshot {
	catalog := make([]inventory.Item, len(s.Shop.Catalog))
	copy(catalog, s.Shop.Catalog)
	return Snapshot{
		Version:     SchemaVersion,
		PlayerName:  s.PlayerName,
		Player:      s.Player.Sheet(),
		Enemy:       s.Enemy.Sheet(),
		Shop:        ShopState{Name: s.Shop.Name, Catalog: catalog},
		Scene:       s.Scene,
		RNGSeed:     rngSeed,
		RNGPosition: rngPosition,
	}
}

// Restore rebuilds a session from the snapshot.
func (sn Snapshot) Restore() (*state.Session, error) {
	if err := sn.checkStream(); err != nil {
		return nil, err
	}
	switch {
	case sn.Player.Role != character.RolePlayer:
		return nil, fmt.Errorf("%w: player has role %q", ErrPersistence, sn.Player.Role)
	case sn.Enemy.Role != character.RoleEnemy:
		return nil, fmt.Errorf("%w: enemy has role %q", ErrPersistence, sn.Enemy.Role)
	}
	player, err := character.FromSheet(sn.Player)
	if err != nil {
		return nil, fmt.Errorf("%w: player: %w", ErrPersistence, err)
	}
	enemy, err := character.FromSheet(sn.Enemy)
	if err != nil {
		return nil, fmt.Errorf("%w: enemy: %w", ErrPersistence, err)
	}
	if player.ID() == enemy.ID() {
		return nil, fmt.Errorf("%w: player and enemy share id %s", ErrPersistence, player.ID())
	}
	return &state.Session{
		PlayerName: sn.PlayerName,
		Player:     player,
		Enemy:      enemy,
		Shop:       shop.New(sn.Shop.Name, sn.Shop.Catalog),
		Scene:      sn.Scene,
	}, nil
}

// checkStream rejects RNG positions and battle rounds that no real game
// produces.
func (sn Snapshot) checkStream() error {
	switch {
	case sn.RNGPosition < 0 || sn.RNGPosition > MaxRNGPosition:
		return fmt.Errorf("%w: rng position %d outside [0, %d]", ErrPersistence, sn.RNGPosition, MaxRNGPosition)
	case sn.BattleRound < 0 || (sn.BattleRound > 0 && !sn.InBattle):
		return fmt.Errorf("%w: battle round %d", ErrPersistence, sn.BattleRound)
	}
	return nil
}

// Equal reports whether two snapshots match in every field.
func (sn Snapshot) Equal(o Snapshot) bool {
	if sn.Version != o.Version || sn.PlayerName != o.PlayerName || sn.Scene != o.Scene ||
		sn.InBattle != o.InBattle || sn.BattleRound != o.BattleRound ||
		sn.RNGSeed != o.RNGSeed || sn.RNGPosition != o.RNGPosition {
		return false
	}
	if !sn.Player.Equal(o.Player) || !sn.Enemy.Equal(o.Enemy) {
		return false
	}
	if sn.Shop.Name != o.Shop.Name || len(sn.Shop.Catalog) != len(o.Shop.Catalog) {
		return false
	}
	for i := range sn.Shop.Catalog {
		if !sn.Shop.Catalog[i].Equal(o.Shop.Catalog[i]) {
			return false
		}
	}
	return true
}

// Encode serializes a snapshot to JSON bytes.
func Encode(sn Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrPersistence, err)
	}
	return data, nil
}

// Decode deserializes JSON bytes into a snapshot, rejecting formats newer
// than this build understands.
func Decode(data []byte) (Snapshot, error) {
	var sn Snapshot
	if err := json.Unmarshal(data, &sn); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode: %w", ErrPersistence, err)
	}
	if sn.Version < 1 || sn.Version > SchemaVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported snapshot version %d", ErrPersistence, sn.Version)
	}
	if err := sn.checkStream(); err != nil {
		return Snapshot{}, err
	}
	// Ensure slices are never nil after load.
	if sn.Player.Inventory == nil {
		sn.Player.Inventory = []inventory.Item{}
	}
	if sn.Enemy.Inventory == nil {
		sn.Enemy.Inventory = []inventory.Item{}
	}
	if sn.Shop.Catalog == nil {
		sn.Shop.Catalog = []inventory.Item{}
	}
	return sn, nil
}
