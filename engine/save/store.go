package save

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists snapshots keyed by player name.
type Store interface {
	Save(ctx context.Context, sn Snapshot) error
	Load(ctx context.Context, playerName string) (Snapshot, error)
	List(ctx context.Context) ([]string, error)
}

// FileStore keeps one JSON file per player name in Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

const fileExt = ".json"

func (f *FileStore) path(playerName string) string {
	return filepath.Join(f.Dir, url.PathEscape(playerName)+fileExt)
}

// Save writes the snapshot, replacing any earlier save for the same name.
func (f *FileStore) Save(ctx context.Context, sn Snapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if strings.TrimSpace(sn.PlayerName) == "" {
		return fmt.Errorf("%w: player name is required", ErrPersistence)
	}
	data, err := Encode(sn)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	// Write then rename so a crash never leaves a half-written save.
	tmp, err := os.CreateTemp(f.Dir, "save-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), f.path(sn.PlayerName)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Load reads the snapshot saved under playerName.
func (f *FileStore) Load(ctx context.Context, playerName string) (Snapshot, error) {
	names, err := f.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if len(names) == 0 {
		return Snapshot{}, ErrNoSavedGames
	}

	data, err := os.ReadFile(f.path(playerName))
	if os.IsNotExist(err) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrSaveNotFound, playerName)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return Decode(data)
}

// List returns the saved player names in sorted order.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	entries, err := os.ReadDir(f.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name, err := url.PathUnescape(strings.TrimSuffix(e.Name(), fileExt))
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
