// Package meta implements the slash commands shared by the terminal front
// ends: saving, loading, status and trace toggling. Replies are plain text
// lines; each front end decides how to style them.
package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/aiadventure/engine"
	"github.com/nathoo/aiadventure/engine/save"
)

// Handler runs meta-commands against one engine. A nil Store disables
// saving.
type Handler struct {
	Engine *engine.Engine
	Store  save.Store
	Trace  bool

	// ExtraHelp is appended to the /help output.
	ExtraHelp []string
}

// Reply is the outcome of one meta-command.
type Reply struct {
	Lines   []string
	Quit    bool
	Listing bool // reference output (help, status) rather than a notice
}

// IsCommand reports whether input is a meta-command rather than a game
// command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Handle dispatches one meta-command.
func (h *Handler) Handle(ctx context.Context, input string) Reply {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "/quit", "/exit":
		return Reply{Lines: []string{"Goodbye."}, Quit: true}
	case "/save":
		return Reply{Lines: h.Save(ctx)}
	case "/load":
		return Reply{Lines: h.Load(ctx, arg)}
	case "/saves":
		return Reply{Lines: h.List(ctx)}
	case "/status":
		return Reply{Lines: h.Engine.StatusLines(), Listing: true}
	case "/help":
		return Reply{Lines: h.Help(), Listing: true}
	case "/trace":
		h.Trace = !h.Trace
		if h.Trace {
			return Reply{Lines: []string{"Trace output enabled."}}
		}
		return Reply{Lines: []string{"Trace output disabled."}}
	default:
		return Reply{Lines: []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}}
	}
}

// Save stores the current game under the player's name.
func (h *Handler) Save(ctx context.Context) []string {
	if h.Store == nil {
		return []string{"Saving is disabled."}
	}
	sn := h.Engine.Snapshot()
	if err := h.Store.Save(ctx, sn); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Game saved for %s.", sn.PlayerName)}
}

// Load restores the named save, defaulting to the current player's.
func (h *Handler) Load(ctx context.Context, name string) []string {
	if h.Store == nil {
		return []string{"Saving is disabled."}
	}
	if name == "" {
		name = h.Engine.Session.PlayerName
	}

	sn, err := h.Store.Load(ctx, name)
	switch {
	case errors.Is(err, save.ErrNoSavedGames):
		return []string{"No saved games found."}
	case errors.Is(err, save.ErrSaveNotFound):
		return append([]string{fmt.Sprintf("No save for %s.", name)}, h.List(ctx)...)
	case err != nil:
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	if err := h.Engine.Restore(sn); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	out := []string{fmt.Sprintf("Game loaded for %s.", sn.PlayerName)}
	if h.Engine.InBattle() {
		return append(out, fmt.Sprintf("You are still fighting %s!", h.Engine.Session.Enemy.Name()))
	}
	return append(out, h.Engine.Session.Scene)
}

// List names the saved games.
func (h *Handler) List(ctx context.Context) []string {
	if h.Store == nil {
		return []string{"Saving is disabled."}
	}
	names, err := h.Store.List(ctx)
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(names) == 0 {
		return []string{"No saved games found."}
	}
	return []string{"Saved games: " + strings.Join(names, ", ")}
}

var systemHelp = []string{
	"System:",
	"  /save         Save the game under your player name",
	"  /load [name]  Load a game (default: your player name)",
	"  /saves        List saved games",
	"  /status       Show both combatants",
	"  /quit         Exit without saving",
	"  /help         Show this help",
	"  /trace        Toggle event trace output",
	"",
}

// Help lists meta-commands followed by the game commands.
func (h *Handler) Help() []string {
	out := append([]string{}, systemHelp...)
	out = append(out, engine.Help()...)
	out = append(out, "  again (g)  Repeat your last command")
	if len(h.ExtraHelp) > 0 {
		out = append(out, "")
		out = append(out, h.ExtraHelp...)
	}
	return out
}
