package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/ledger/memory"
	"budget/internal/nav"
	"budget/internal/runner"
	"budget/internal/services"
)

type stubRunner struct{}

func (stubRunner) Run(_ context.Context, command string) (runner.Result, error) {
	return runner.Result{Stdout: "ran " + command}, nil
}

func newTestModel(t *testing.T) (*Model, *memory.Store) {
	t.Helper()
	store := memory.New()
	now := func() time.Time { return time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC) }
	s := nav.NewSession(services.NewLedgerService(store, nil), now)
	s.Runner = stubRunner{}
	ctrl, err := nav.NewController(context.Background(), s)
	require.NoError(t, err)
	return New(context.Background(), ctrl), store
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func plain(m *Model) string {
	return ansi.Strip(m.View())
}

func TestModel_AddExpense(t *testing.T) {
	m, store := newTestModel(t)

	press(m, runes("e"))
	require.Equal(t, nav.AddExpense, m.ctrl.Screen())
	assert.Contains(t, plain(m), "Add Expense")

	press(m, runes("Coffee"), tab, runes("3.50"), enter)
	assert.Equal(t, nav.AddExpense, m.ctrl.Screen())
	assert.Contains(t, plain(m), "✓ Expense added successfully!")
	assert.Empty(t, m.inputs[1].Value())
	assert.Equal(t, "2024-11-15", m.inputs[0].Value())

	rows, err := store.List(context.Background(), core.Expense, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Description)
	assert.Equal(t, int64(350), rows[0].Amount.Cents)
	assert.Equal(t, "Other", rows[0].Category)

	press(m, esc)
	assert.Equal(t, nav.Dashboard, m.ctrl.Screen())
	view := plain(m)
	assert.Contains(t, view, "November 2024")
	assert.Contains(t, view, "Coffee")
	assert.Contains(t, view, "$3.50")
}

func TestModel_AddValidationKeepsInput(t *testing.T) {
	m, store := newTestModel(t)
	press(m, runes("i"), runes("Salary"), tab, runes("lots"), enter)

	assert.Equal(t, nav.AddIncome, m.ctrl.Screen())
	assert.Contains(t, plain(m), "✗ Invalid input")
	assert.Equal(t, "Salary", m.inputs[1].Value())

	rows, err := store.List(context.Background(), core.Income, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestModel_EditAndDelete(t *testing.T) {
	m, store := newTestModel(t)
	ctx := context.Background()
	tx, err := store.Add(ctx, core.Expense, core.NewTransaction{
		Date: core.NewDate(2024, 11, 15), Description: "Tea", Amount: core.FromCents(200), Category: "Food",
	})
	require.NoError(t, err)

	press(m, runes("E"), enter)
	require.Equal(t, nav.EditExpense, m.ctrl.Screen())
	require.Len(t, m.ctrl.EditForm().Rows, 1)
	assert.Equal(t, 1, m.focus)

	press(m, tab, runes("Latte"), enter)
	assert.Contains(t, plain(m), "✓ Expense updated successfully.")
	got, found, err := store.FindByID(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Latte", got.Description)

	press(m, esc, runes("d"), enter)
	require.Equal(t, nav.DeleteExpense, m.ctrl.Screen())
	assert.True(t, m.listFocus)
	press(m, enter)
	assert.Contains(t, plain(m), "✓ Expense deleted: Latte $2.00")

	_, found, err = store.FindByID(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestModel_Console(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runes("c"))
	require.Equal(t, nav.CommandConsole, m.ctrl.Screen())

	assert.Nil(t, press(m, runes("stats"), enter))
	assert.Contains(t, plain(m), "Total Expenses: 0")

	cmd := press(m, runes("echo hi"), enter)
	require.NotNil(t, cmd)
	assert.True(t, m.ctrl.Console().Running)

	m.Update(cmd())
	assert.False(t, m.ctrl.Console().Running)
	view := plain(m)
	assert.Contains(t, view, "ran echo hi")
	assert.Contains(t, view, "✓ Command completed successfully")
}

func TestModel_ConsoleClosedWhileCommandRuns(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, runes("c"), runes("echo hi"), enter)
	require.NotNil(t, cmd)

	press(m, esc)
	require.Equal(t, nav.Dashboard, m.ctrl.Screen())

	m.Update(cmd())
	assert.Nil(t, m.ctrl.Console())
	assert.Contains(t, plain(m), "✓ Command finished: echo hi")
}

func TestModel_MonthKeysAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, core.Month{Year: 2024, Month: 10}, m.ctrl.View().Month)
	assert.Contains(t, plain(m), "October 2024")

	press(m, runes("t"))
	assert.Equal(t, core.Month{Year: 2024, Month: 11}, m.ctrl.View().Month)
	assert.Contains(t, plain(m), "Showing current month")

	press(m, runes("r"))
	assert.Contains(t, plain(m), "Data refreshed!")

	cmd := press(m, runes("q"))
	assert.NotNil(t, cmd)
	assert.True(t, m.ctrl.Quitting())
	assert.Empty(t, m.View())
}

func TestRenderBars(t *testing.T) {
	out := ansi.Strip(renderBars([]core.CategoryAmount{
		{Name: "Food", Amount: core.FromCents(10000)},
		{Name: "A very long category name", Amount: core.FromCents(5000)},
		{Name: "Tiny", Amount: core.FromCents(1)},
	}, 10, expenseStyle))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Food           "+strings.Repeat("█", 10)+" $100.00", lines[0])
	assert.Contains(t, lines[1], strings.Repeat("█", 5)+" $50.00")
	assert.Equal(t, chartLabelWidth, ansi.StringWidth(strings.SplitN(lines[1], " █", 2)[0]))
	assert.Contains(t, lines[2], " █ $0.01")

	assert.Equal(t, "No data", ansi.Strip(renderBars(nil, 10, expenseStyle)))
}
