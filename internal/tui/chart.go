package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"budget/internal/core"
)

const chartLabelWidth = 14

// renderBars draws one proportional bar per category. The largest total
// fills barWidth cells; any non-zero total gets at least one.
func renderBars(totals []core.CategoryAmount, barWidth int, style lipgloss.Style) string {
	if len(totals) == 0 {
		return mutedStyle.Render("No data")
	}
	if barWidth < 1 {
		barWidth = 1
	}
	var max int64
	for _, t := range totals {
		if t.Amount.Cents > max {
			max = t.Amount.Cents
		}
	}

	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		n := 0
		if max > 0 {
			n = int(float64(t.Amount.Cents) / float64(max) * float64(barWidth))
			if n == 0 && t.Amount.Cents > 0 {
				n = 1
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			pad(t.Name, chartLabelWidth),
			style.Render(strings.Repeat("█", n)),
			t.Amount.Format()))
	}
	return strings.Join(lines, "\n")
}

// pad truncates or right-pads s to exactly w terminal cells.
func pad(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	if gap := w - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
