// Package tui provides a Bubble Tea terminal UI for the adventure engine.
package tui

import "strings"

// History keeps recent commands for Up/Down recall. Commands are matched
// case-insensitively, so re-entering a command moves it to the newest slot
// instead of storing it twice.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, 0..len-1 = position in entries
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a command as the newest entry.
func (h *History) Push(cmd string) {
	for i, e := range h.entries {
		if strings.EqualFold(e, cmd) {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Len reports the number of stored commands.
func (h *History) Len() int { return len(h.entries) }

// Prev returns the previous (older) entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next returns the next (newer) entry. It reports false once past the
// newest, which means the input should be cleared.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
