package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"budget/internal/core"
	"budget/internal/nav"
)

const (
	dashboardHelp = "e/i add · E/I edit · d/D delete · c command · ←/→ month · t today · r refresh · q quit"
	modalHelp     = "tab next field · enter submit · esc back"
	listHelp      = "tab next field · ↑/↓ select · enter load/submit · esc back"
	consoleLines  = 16
)

func (m *Model) View() string {
	if m.ctrl.Quitting() {
		return ""
	}
	switch m.ctrl.Screen() {
	case nav.Dashboard:
		return m.dashboardView()
	case nav.AddExpense, nav.AddIncome:
		return m.addView()
	case nav.EditExpense, nav.EditIncome:
		return m.editView()
	case nav.DeleteExpense, nav.DeleteIncome:
		return m.deleteView()
	case nav.CommandConsole:
		return m.consoleView()
	}
	return ""
}

func (m *Model) dashboardView() string {
	v := m.ctrl.View()
	half := m.width/2 - 2
	if half < 30 {
		half = 30
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Budget Tracker") + "  " + textStyle.Render(v.Title()) + "\n")
	b.WriteString(summaryLine(v.Summary) + "\n")

	tables := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(half).Render(listingView(v.Expenses, half-4, expenseStyle)),
		paneStyle.Width(half).Render(listingView(v.Incomes, half-4, incomeStyle)),
	)
	b.WriteString(tables + "\n")

	barWidth := half - chartLabelWidth - 20
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(half).Render(titleStyle.Render("Expenses by category")+"\n"+renderBars(v.ExpenseTotals, barWidth, expenseStyle)),
		paneStyle.Width(half).Render(titleStyle.Render("Incomes by category")+"\n"+renderBars(v.IncomeTotals, barWidth, incomeStyle)),
	)
	b.WriteString(charts + "\n")

	if st := m.ctrl.Status(); st.Text != "" {
		b.WriteString(messageStyle(st).Render(st.Text) + "\n")
	}
	b.WriteString(mutedStyle.Render(dashboardHelp))
	return b.String()
}

func summaryLine(s core.MonthSummary) string {
	balance := incomeStyle
	if s.Balance.Cents < 0 {
		balance = expenseStyle
	}
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		mutedStyle.Render("Expenses:"), expenseStyle.Render(s.TotalExpenses.Format()),
		mutedStyle.Render("Incomes:"), incomeStyle.Render(s.TotalIncomes.Format()),
		mutedStyle.Render("Balance:"), balance.Render(s.Balance.Format()))
}

func listingView(l nav.Listing, width int, amount lipgloss.Style) string {
	title := l.Kind.Title() + "s"
	if l.Substituted {
		title += " " + warnStyle.Render("("+l.Note+")")
	}
	lines := []string{titleStyle.Render(title)}
	lines = append(lines, rowLines(l.Rows, -1, width, amount)...)
	return strings.Join(lines, "\n")
}

// rowLines renders transactions as fixed-width rows. selected marks the
// row under the cursor, -1 for none.
func rowLines(rows []core.Transaction, selected, width int, amount lipgloss.Style) []string {
	if len(rows) == 0 {
		return []string{mutedStyle.Render("No records")}
	}
	descWidth := width - 10 - 12 - 12 - 6
	if descWidth < 8 {
		descWidth = 8
	}
	lines := []string{headerStyle.Render(fmt.Sprintf("  %s %s %s %s",
		pad("Date", 10), pad("Description", descWidth), pad("Category", 12), "Amount"))}
	for i, r := range rows {
		prefix := "  "
		if i == selected {
			prefix = selectStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s %s",
			prefix,
			r.Date.String(),
			pad(r.Description, descWidth),
			pad(r.Category, 12),
			amount.Render(r.Amount.Format())))
	}
	return lines
}

func (m *Model) fieldLines() []string {
	fields := m.fields()
	lines := make([]string, 0, len(fields))
	for i, f := range fields {
		if i >= len(m.inputs) {
			break
		}
		label := mutedStyle.Render(pad(f.label, 16))
		if i == m.focus && !m.listFocus {
			label = selectStyle.Render(pad(f.label, 16))
		}
		lines = append(lines, label+" "+m.inputs[i].View())
	}
	return lines
}

func modal(title string, body []string, msg nav.Message, help string) string {
	lines := []string{titleStyle.Render(title), ""}
	lines = append(lines, body...)
	if msg.Text != "" {
		lines = append(lines, "", messageStyle(msg).Render(msg.Text))
	}
	lines = append(lines, "", mutedStyle.Render(help))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) addView() string {
	f := m.ctrl.AddForm()
	body := m.fieldLines()
	if len(f.Suggestions) > 0 {
		body = append(body, mutedStyle.Render("Used: "+ansi.Truncate(strings.Join(f.Suggestions, ", "), 60, "…")))
	}
	return modal(m.ctrl.Screen().String(), body, f.Message, modalHelp)
}

func kindStyle(k core.Kind) lipgloss.Style {
	if k == core.Income {
		return incomeStyle
	}
	return expenseStyle
}

func (m *Model) editView() string {
	f := m.ctrl.EditForm()
	body := m.fieldLines()
	body = append(body, "")
	body = append(body, rowLines(f.Rows, f.Cursor, 70, kindStyle(f.Kind))...)
	return modal(m.ctrl.Screen().String(), body, f.Message, listHelp)
}

func (m *Model) deleteView() string {
	f := m.ctrl.DeleteForm()
	body := m.fieldLines()
	body = append(body, "")
	body = append(body, rowLines(f.Rows, f.Cursor, 70, kindStyle(f.Kind))...)
	return modal(m.ctrl.Screen().String(), body, f.Message, listHelp)
}

func (m *Model) consoleView() string {
	c := m.ctrl.Console()
	lines := c.Lines
	if len(lines) > consoleLines {
		lines = lines[len(lines)-consoleLines:]
	}
	body := make([]string, 0, len(lines)+3)
	for _, l := range lines {
		body = append(body, lineStyle(l.Style).Render(ansi.Truncate(l.Text, m.width-8, "…")))
	}
	body = append(body, "")
	body = append(body, m.fieldLines()...)
	if c.Running {
		body = append(body, warnStyle.Render("running…"))
	}
	return modal(m.ctrl.Screen().String(), body, nav.Message{}, modalHelp)
}
