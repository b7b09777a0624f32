package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusLow = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("203")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleScene = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleVictory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleCombatant = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindScene lineKind = iota
	kindHelp
	kindDamage
	kindGain
	kindVictory
	kindCombatant
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "- '"), strings.HasPrefix(line, "Commands you can use"):
		return kindHelp
	case strings.HasPrefix(line, "Invalid action"),
		strings.HasPrefix(line, "Not enough"),
		strings.HasPrefix(line, "There is nothing to fight"),
		strings.HasPrefix(line, "The story falters"),
		strings.HasPrefix(line, "You have been defeated"):
		return kindError
	case strings.HasPrefix(line, "You defeated"),
		strings.HasPrefix(line, "Congratulations"),
		strings.HasPrefix(line, "You encountered"):
		return kindVictory
	case strings.Contains(line, " HP: "):
		return kindCombatant
	case strings.Contains(line, "damage!"), strings.HasSuffix(line, "grows stronger!"):
		return kindDamage
	case strings.HasPrefix(line, "You gain"),
		strings.HasPrefix(line, "You bought"),
		strings.HasPrefix(line, "You use a potion"),
		strings.HasPrefix(line, "You come to your senses"):
		return kindGain
	default:
		return kindScene
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHelp:
		return styleHelp.Render(line)
	case kindDamage:
		return styleDamage.Render(line)
	case kindGain:
		return styleGain.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	case kindCombatant:
		return styleCombatant.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleScene.Render(line)
	}
}
