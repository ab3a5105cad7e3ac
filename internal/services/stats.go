package services

import (
	"context"
	"fmt"

	"budget/internal/core"
)

// Stats is the record count report shown by the console's "stats" command.
type Stats struct {
	Month           core.Month
	TotalExpenses   int
	TotalIncomes    int
	MonthlyExpenses int
	MonthlyIncomes  int
}

// Stats counts all records and the records inside m.
func (e *Engine) Stats(ctx context.Context, m core.Month) (Stats, error) {
	st := Stats{Month: m}
	counts := []struct {
		kind         core.Kind
		total, month *int
	}{
		{core.Expense, &st.TotalExpenses, &st.MonthlyExpenses},
		{core.Income, &st.TotalIncomes, &st.MonthlyIncomes},
	}
	for _, c := range counts {
		all, err := e.store.List(ctx, c.kind, 0)
		if err != nil {
			return Stats{}, fmt.Errorf("stats: %w", err)
		}
		window, err := e.MonthlyWindow(ctx, c.kind, m)
		if err != nil {
			return Stats{}, fmt.Errorf("stats: %w", err)
		}
		*c.total = len(all)
		*c.month = len(window)
	}
	return st, nil
}

// Lines renders the report one fact per line.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Total Expenses: %d", s.TotalExpenses),
		fmt.Sprintf("Total Incomes: %d", s.TotalIncomes),
		fmt.Sprintf("%s - Expenses: %d, Incomes: %d", s.Month.Label(), s.MonthlyExpenses, s.MonthlyIncomes),
	}
}
