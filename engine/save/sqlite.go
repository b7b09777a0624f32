package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nathoo/aiadventure/engine/save/migrations"
	_ "modernc.org/sqlite"
)

const migrationTable = "schema_migrations"

// SQLiteStore keeps snapshots in a single SQLite table, one row per player.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens a SQLite save store and applies embedded migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: storage path is required", ErrPersistence)
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %w", ErrPersistence, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %w", ErrPersistence, err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: run migrations: %w", ErrPersistence, err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the snapshot for its player name.
func (s *SQLiteStore) Save(ctx context.Context, sn Snapshot) error {
	if strings.TrimSpace(sn.PlayerName) == "" {
		return fmt.Errorf("%w: player name is required", ErrPersistence)
	}
	data, err := Encode(sn)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (player_name, version, data, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(player_name) DO UPDATE SET
    version = excluded.version,
    data = excluded.data,
    updated_at = excluded.updated_at`,
		sn.PlayerName, sn.Version, data, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: save %q: %w", ErrPersistence, sn.PlayerName, err)
	}
	return nil
}

// Load reads the snapshot saved under playerName.
func (s *SQLiteStore) Load(ctx context.Context, playerName string) (Snapshot, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT data FROM saves WHERE player_name = ?`, playerName).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		var count int
		if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&count); err != nil {
			return Snapshot{}, fmt.Errorf("%w: count saves: %w", ErrPersistence, err)
		}
		if count == 0 {
			return Snapshot{}, ErrNoSavedGames
		}
		return Snapshot{}, fmt.Errorf("%w: %q", ErrSaveNotFound, playerName)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: load %q: %w", ErrPersistence, playerName, err)
	}
	return Decode(data)
}

// List returns the saved player names in sorted order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT player_name FROM saves ORDER BY player_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list saves: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan save: %w", ErrPersistence, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list saves: %w", ErrPersistence, err)
	}
	return names, nil
}

// applyMigrations executes each embedded .sql file at most once.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`, migrationTable)
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var applied int
		if err := sqlDB.QueryRow(
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = ?`, migrationTable), file,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		upSQL := extractUp(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := sqlDB.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable),
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// extractUp returns the section between "-- +migrate Up" and
// "-- +migrate Down", or the whole file when no markers are present.
func extractUp(content string) string {
	const upMarker, downMarker = "-- +migrate Up", "-- +migrate Down"
	start := strings.Index(content, upMarker)
	if start < 0 {
		return content
	}
	up := content[start+len(upMarker):]
	if end := strings.Index(up, downMarker); end >= 0 {
		up = up[:end]
	}
	return up
}
