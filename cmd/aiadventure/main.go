// AI Adventure is a terminal role-playing game: explore, fight, shop, and
// let a storyteller narrate anything else you try.
// Usage: aiadventure [--version] [--plain] [--script <file>] [--trace] [--name <player>] [--continue] [content_directory]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathoo/aiadventure/cli"
	"github.com/nathoo/aiadventure/config"
	"github.com/nathoo/aiadventure/engine"
	"github.com/nathoo/aiadventure/engine/save"
	"github.com/nathoo/aiadventure/engine/state"
	"github.com/nathoo/aiadventure/loader"
	"github.com/nathoo/aiadventure/narrative"
	"github.com/nathoo/aiadventure/random"
	"github.com/nathoo/aiadventure/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: aiadventure [--version] [--plain] [--script <file>] [--trace] [--name <player>] [--continue] [content_directory]"

func main() {
	plain := false
	trace := false
	resume := false
	var contentDir, scriptFile, playerName string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("aiadventure %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--continue":
			resume = true
		case "--script", "--name":
			if i+1 >= len(args) {
				config.Exitf("%s requires a value\n%s", args[i], usage)
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				playerName = args[i+1]
			}
			i++
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("warning: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if contentDir == "" {
		contentDir = cfg.ContentDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defs, err := loadContent(contentDir)
	if err != nil {
		config.Exitf("Error loading game: %v", err)
	}

	seed, err := random.SeedOrNew(cfg.Seed)
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	eng, err := engine.New(defs, playerName, seed)
	if err != nil {
		config.Exitf("Error starting game: %v", err)
	}
	eng.Narrator = newNarrator(cfg)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Printf("warning: saving disabled: %v", err)
	}
	defer closeStore()

	if resume && store != nil {
		resumeGame(ctx, eng, store)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			config.Exitf("Error opening script: %v", err)
		}
		defer f.Close()
		c := cli.New(eng, store)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run(ctx)
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, store)
		c.Trace = trace
		c.Run(ctx)
		return
	}

	if err := tui.Run(ctx, eng, store); err != nil {
		config.Exitf("Error: %v", err)
	}
}

// loadContent loads the content directory, or the embedded game when none
// is configured.
func loadContent(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.LoadDefault()
	}
	return loader.Load(dir)
}

// newNarrator picks the Gemini narrator when an API key is configured and
// the offline storyteller otherwise.
func newNarrator(cfg config.Config) engine.Narrator {
	if cfg.GeminiAPIKey == "" {
		log.Printf("GEMINI_API_KEY not set; using offline narration")
		return narrative.Offline{}
	}
	return narrative.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, narrative.WithTimeout(cfg.NarratorTimeout))
}

// openStore opens the configured save backend. The returned close function
// is always safe to call.
func openStore(cfg config.Config) (save.Store, func(), error) {
	noop := func() {}
	switch cfg.SaveBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("create save dir: %w", err)
		}
		s, err := save.OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("warning: close save store: %v", err)
			}
		}, nil
	default:
		return save.NewFileStore(cfg.SaveDir), noop, nil
	}
}

// resumeGame restores the player's saved game, if there is one.
func resumeGame(ctx context.Context, eng *engine.Engine, store save.Store) {
	name := eng.Session.PlayerName
	sn, err := store.Load(ctx, name)
	switch {
	case errors.Is(err, save.ErrNoSavedGames), errors.Is(err, save.ErrSaveNotFound):
		log.Printf("no saved game for %s; starting a new one", name)
		return
	case err != nil:
		log.Printf("warning: %v; starting a new game", err)
		return
	}
	if err := eng.Restore(sn); err != nil {
		log.Printf("warning: %v; starting a new game", err)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
