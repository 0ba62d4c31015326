package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const (
	progressCellDone = "━"
	progressCellTodo = "─"
	minProgressCells = 4
)

// ProgressBar is a single-line bar with a leading label and a trailing
// whole-number percentage.
type ProgressBar struct {
	Label    string
	Fraction float64
	Width    int
}

// NewProgressBar clamps fraction to [0, 1].
func NewProgressBar(label string, fraction float64, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Fraction: max(0, min(fraction, 1)),
		Width:    width,
	}
}

// Percent is the fraction as a whole number, rounded down.
func (p ProgressBar) Percent() int {
	return int(p.Fraction * 100)
}

func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	pct := theme.Hint.Italic(false).Render(fmt.Sprintf("  %3d%%", p.Percent()))

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct), minProgressCells)
	done := min(int(float64(cells)*p.Fraction), cells)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(progressCellDone, done)) +
		theme.ProgressEmpty.Render(strings.Repeat(progressCellTodo, cells-done)) +
		pct
}
