// Package config loads runtime settings from a .env file and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Save backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds every environment-driven setting.
type Config struct {
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`
	NarratorTimeout time.Duration `env:"AIADVENTURE_NARRATOR_TIMEOUT" envDefault:"90s"`
	SaveDir         string        `env:"AIADVENTURE_SAVE_DIR"`
	SaveBackend     string        `env:"AIADVENTURE_SAVE_BACKEND" envDefault:"file"`
	Seed            int64         `env:"AIADVENTURE_SEED" envDefault:"0"`
	ContentDir      string        `env:"AIADVENTURE_CONTENT_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given files (default ".env") into
// the environment without overriding variables that are already set. A
// missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses the environment and fills in derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = DefaultSaveDir()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	switch c.SaveBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("AIADVENTURE_SAVE_BACKEND: unknown backend %q (want %q or %q)",
			c.SaveBackend, BackendFile, BackendSQLite)
	}
	if c.NarratorTimeout <= 0 {
		return fmt.Errorf("AIADVENTURE_NARRATOR_TIMEOUT must be positive, got %s", c.NarratorTimeout)
	}
	return nil
}

// DefaultSaveDir is ~/.aiadventure/saves, or a relative directory when the
// home directory is unknown.
func DefaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".aiadventure", "saves")
	}
	return filepath.Join(home, ".aiadventure", "saves")
}

// SQLitePath is the database file used by the sqlite backend.
func (c Config) SQLitePath() string {
	return filepath.Join(c.SaveDir, "saves.db")
}
