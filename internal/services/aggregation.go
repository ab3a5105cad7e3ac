package services

import (
	"context"
	"fmt"

	"budget/internal/core"
	"budget/internal/ledger"
)

// Engine derives read-only views over the ledger. It never writes and never
// caches: every call reads the store again.
type Engine struct {
	store ledger.Store
}

func NewEngine(store ledger.Store) *Engine {
	return &Engine{store: store}
}

// MonthlyWindow returns the transactions of kind dated inside m's half-open window.
func (e *Engine) MonthlyWindow(ctx context.Context, kind core.Kind, m core.Month) ([]core.Transaction, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	from, to := m.Window()
	txs, err := e.store.ListRange(ctx, kind, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly window %s %s: %w", kind, m, err)
	}
	return txs, nil
}

// CategoryTotals sums amounts per category. With a month it covers only that
// month's window, otherwise every record of kind. Categories without records
// are absent.
func (e *Engine) CategoryTotals(ctx context.Context, kind core.Kind, m *core.Month) (map[string]core.Money, error) {
	var (
		txs []core.Transaction
		err error
	)
	if m != nil {
		txs, err = e.MonthlyWindow(ctx, kind, *m)
	} else {
		txs, err = e.store.List(ctx, kind, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return SumByCategory(txs), nil
}

// SumByCategory groups txs by category.
func SumByCategory(txs []core.Transaction) map[string]core.Money {
	totals := make(map[string]core.Money)
	for _, t := range txs {
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return totals
}

// DistinctCategories lists every category seen for kind. It feeds input
// suggestions only; any category text is accepted on entry.
func (e *Engine) DistinctCategories(ctx context.Context, kind core.Kind) ([]string, error) {
	cats, err := e.store.Categories(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	return cats, nil
}

// MonthlySummary totals both kinds for m and derives the balance.
func (e *Engine) MonthlySummary(ctx context.Context, m core.Month) (core.MonthSummary, error) {
	expenses, err := e.MonthlyWindow(ctx, core.Expense, m)
	if err != nil {
		return core.MonthSummary{}, err
	}
	incomes, err := e.MonthlyWindow(ctx, core.Income, m)
	if err != nil {
		return core.MonthSummary{}, err
	}
	return core.NewMonthSummary(m, core.Total(expenses), core.Total(incomes)), nil
}
