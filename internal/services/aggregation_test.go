package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/ledger/memory"
)

type seed struct {
	kind     core.Kind
	date     core.Date
	desc     string
	cents    int64
	category string
}

func seeded(t *testing.T, rows ...seed) (*memory.Store, *Engine) {
	t.Helper()
	store := memory.New()
	for _, r := range rows {
		_, err := store.Add(context.Background(), r.kind, core.NewTransaction{
			Date:        r.date,
			Description: r.desc,
			Amount:      core.FromCents(r.cents),
			Category:    r.category,
		})
		require.NoError(t, err)
	}
	return store, NewEngine(store)
}

func TestEngine_MonthlySummary(t *testing.T) {
	_, engine := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 1), "Test Expense", 5000, "Food"},
		seed{core.Income, core.NewDate(2024, 11, 1), "Test Income", 100000, "Salary"},
	)

	got, err := engine.MonthlySummary(context.Background(), core.Month{Year: 2024, Month: 11})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), got.TotalExpenses.Cents)
	assert.Equal(t, int64(100000), got.TotalIncomes.Cents)
	assert.Equal(t, int64(95000), got.Balance.Cents)
	assert.Equal(t, "$950.00", got.Balance.Format())
}

func TestEngine_MonthlyWindow(t *testing.T) {
	_, engine := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 30), "nov", 100, ""},
		seed{core.Expense, core.NewDate(2024, 12, 1), "dec first", 100, ""},
		seed{core.Expense, core.NewDate(2024, 12, 31), "dec last", 100, ""},
		seed{core.Expense, core.NewDate(2025, 1, 1), "jan", 100, ""},
		seed{core.Income, core.NewDate(2024, 12, 15), "other kind", 100, ""},
	)
	ctx := context.Background()

	tests := []struct {
		name  string
		month core.Month
		want  []string
	}{
		{"december rolls into next year", core.Month{Year: 2024, Month: 12}, []string{"dec last", "dec first"}},
		{"november stops before december", core.Month{Year: 2024, Month: 11}, []string{"nov"}},
		{"january of next year", core.Month{Year: 2025, Month: 1}, []string{"jan"}},
		{"empty month yields empty slice", core.Month{Year: 2023, Month: 6}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := engine.MonthlyWindow(ctx, core.Expense, tt.month)
			require.NoError(t, err)
			got := make([]string, 0, len(txs))
			for _, tx := range txs {
				got = append(got, tx.Description)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := engine.MonthlyWindow(ctx, core.Expense, core.Month{Year: 2024, Month: 13})
	assert.True(t, core.IsValidation(err))
}

func TestEngine_CategoryTotals(t *testing.T) {
	_, engine := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 3), "lunch", 1000, "Food"},
		seed{core.Expense, core.NewDate(2024, 11, 4), "snack", 500, "Food"},
		seed{core.Expense, core.NewDate(2024, 11, 5), "bus", 2000, "Transport"},
		seed{core.Expense, core.NewDate(2024, 10, 5), "old", 700, "Books"},
	)
	ctx := context.Background()
	nov := core.Month{Year: 2024, Month: 11}

	got, err := engine.CategoryTotals(ctx, core.Expense, &nov)
	require.NoError(t, err)
	assert.Equal(t, map[string]core.Money{
		"Food":      core.FromCents(1500),
		"Transport": core.FromCents(2000),
	}, got)

	all, err := engine.CategoryTotals(ctx, core.Expense, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, core.FromCents(700), all["Books"])

	window, err := engine.MonthlyWindow(ctx, core.Expense, nov)
	require.NoError(t, err)
	var sum core.Money
	for _, v := range got {
		sum = sum.Add(v)
	}
	assert.Equal(t, core.Total(window), sum, "category totals add up to the window total")

	none, err := engine.CategoryTotals(ctx, core.Income, &nov)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEngine_DistinctCategories(t *testing.T) {
	_, engine := seeded(t,
		seed{core.Income, core.NewDate(2024, 11, 1), "pay", 1, ""},
		seed{core.Income, core.NewDate(2024, 11, 2), "gift", 1, "Gifts"},
		seed{core.Income, core.NewDate(2024, 11, 3), "pay", 1, ""},
	)
	got, err := engine.DistinctCategories(context.Background(), core.Income)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gifts", "Salary"}, got)
}

func TestEngine_SummaryIsRecomputedAfterMutation(t *testing.T) {
	store, engine := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 1), "a", 1000, ""},
	)
	ctx := context.Background()
	nov := core.Month{Year: 2024, Month: 11}

	before, err := engine.MonthlySummary(ctx, nov)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), before.TotalExpenses.Cents)

	_, err = store.Add(ctx, core.Expense, core.NewTransaction{Date: core.NewDate(2024, 11, 9), Description: "b", Amount: core.FromCents(250)})
	require.NoError(t, err)

	after, err := engine.MonthlySummary(ctx, nov)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), after.TotalExpenses.Cents)
}

func TestEngine_Stats(t *testing.T) {
	_, engine := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 1), "a", 1, ""},
		seed{core.Expense, core.NewDate(2024, 10, 1), "b", 1, ""},
		seed{core.Income, core.NewDate(2024, 11, 1), "c", 1, ""},
	)
	st, err := engine.Stats(context.Background(), core.Month{Year: 2024, Month: 11})
	require.NoError(t, err)

	assert.Equal(t, 2, st.TotalExpenses)
	assert.Equal(t, 1, st.TotalIncomes)
	assert.Equal(t, 1, st.MonthlyExpenses)
	assert.Equal(t, 1, st.MonthlyIncomes)
	assert.Equal(t, []string{
		"Total Expenses: 2",
		"Total Incomes: 1",
		"November 2024 - Expenses: 1, Incomes: 1",
	}, st.Lines())
}
