package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// lowHPFraction is the share of max HP below which the player's HP is
// highlighted.
var lowHPFraction = decimal.NewFromFloat(0.25)

// statusParts builds the left and right halves of the status bar: the
// player's vitals on the left, the opponent (or the current mode) on the
// right.
func (m Model) statusParts() (left, right string, low bool) {
	p := m.engine.Session.Player.Status()
	left = fmt.Sprintf(" %s Lv%d | HP %s/%s | ST %s | Gold %s",
		p.Name, p.Level, p.HP, p.MaxHP, p.Stamina, p.Gold)
	low = p.HP.LessThanOrEqual(p.MaxHP.Mul(lowHPFraction))

	if m.engine.InBattle() {
		en := m.engine.Session.Enemy.Status()
		right = fmt.Sprintf("vs %s HP %s/%s ", en.Name, en.HP, en.MaxHP)
		return left, right, low
	}

	right = "Exploring "
	if n := m.engine.Session.Player.Inventory().Len(); n > 0 {
		candidate := fmt.Sprintf("Items: %s | Exploring ", strings.Join(m.engine.Session.Player.Inventory().Names(), ", "))
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Items: %d | Exploring ", n)
		}
	}
	return left, right, low
}

// renderStatusBar produces a full-width inverted status line.
func (m Model) renderStatusBar() string {
	left, right, low := m.statusParts()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	if low {
		return styleStatusLow.Width(m.width).Render(bar)
	}
	return styleStatusBar.Width(m.width).Render(bar)
}
