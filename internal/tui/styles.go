package tui

import (
	"github.com/charmbracelet/lipgloss"

	"budget/internal/nav"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorMuted   = lipgloss.Color("#7f849c")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorExpense = lipgloss.Color("#f38ba8")
	colorIncome  = lipgloss.Color("#a6e3a1")
	colorWarn    = lipgloss.Color("#f9e2af")
	colorBorder  = lipgloss.Color("#45475a")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	expenseStyle = lipgloss.NewStyle().Foreground(colorExpense)
	incomeStyle  = lipgloss.NewStyle().Foreground(colorIncome)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	selectStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorMuted).Underline(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

func messageStyle(m nav.Message) lipgloss.Style {
	if m.Err {
		return expenseStyle
	}
	return incomeStyle
}

func lineStyle(s nav.LineStyle) lipgloss.Style {
	switch s {
	case nav.StyleDim:
		return mutedStyle
	case nav.StyleCommand:
		return titleStyle
	case nav.StyleOK:
		return incomeStyle
	case nav.StyleInfo:
		return warnStyle
	case nav.StyleError:
		return expenseStyle
	default:
		return textStyle
	}
}
