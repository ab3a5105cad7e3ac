package nav

import (
	"context"
	"fmt"

	"budget/internal/config"
	"budget/internal/core"
)

// Listing is one kind's transaction table on the dashboard.
type Listing struct {
	Kind core.Kind
	Rows []core.Transaction
	// Substituted is set when the month was empty and the rows are the most
	// recent records instead. Note says so in words.
	Substituted bool
	Note        string
}

// DashboardView is everything the dashboard shows, computed in one refresh.
type DashboardView struct {
	Month         core.Month
	Summary       core.MonthSummary
	Expenses      Listing
	Incomes       Listing
	ExpenseTotals []core.CategoryAmount
	IncomeTotals  []core.CategoryAmount
	// Generation increases with every refresh.
	Generation int
}

// Title is the month header, including any substitution notes.
func (v DashboardView) Title() string {
	title := v.Month.Label()
	for _, l := range []Listing{v.Expenses, v.Incomes} {
		if l.Note != "" {
			title += " (" + l.Note + ")"
		}
	}
	return title
}

// Listing returns the listing for kind.
func (v DashboardView) Listing(kind core.Kind) Listing {
	if kind == core.Income {
		return v.Incomes
	}
	return v.Expenses
}

// Totals returns the category totals for kind.
func (v DashboardView) Totals(kind core.Kind) []core.CategoryAmount {
	if kind == core.Income {
		return v.IncomeTotals
	}
	return v.ExpenseTotals
}

func buildView(ctx context.Context, s *Session, generation int) (DashboardView, error) {
	m := s.Cursor.Month()
	view := DashboardView{Month: m, Generation: generation}

	summary, err := s.Engine.MonthlySummary(ctx, m)
	if err != nil {
		return DashboardView{}, err
	}
	view.Summary = summary

	for _, kind := range core.Kinds() {
		listing, err := buildListing(ctx, s, kind, m)
		if err != nil {
			return DashboardView{}, err
		}
		totals, err := s.Engine.CategoryTotals(ctx, kind, &m)
		if err != nil {
			return DashboardView{}, err
		}
		sorted := core.SortedCategoryAmounts(totals)
		if kind == core.Income {
			view.Incomes, view.IncomeTotals = listing, sorted
		} else {
			view.Expenses, view.ExpenseTotals = listing, sorted
		}
	}
	return view, nil
}

func buildListing(ctx context.Context, s *Session, kind core.Kind, m core.Month) (Listing, error) {
	rows, err := s.Engine.MonthlyWindow(ctx, kind, m)
	if err != nil {
		return Listing{}, err
	}
	listing := Listing{Kind: kind, Rows: rows}
	if s.Policy.ListLimit > 0 && len(rows) > s.Policy.ListLimit {
		listing.Rows = rows[:s.Policy.ListLimit]
	}
	if len(rows) > 0 || s.Policy.Fallback != config.FallbackRecent {
		return listing, nil
	}

	limit := s.Policy.FallbackLimit
	if limit <= 0 {
		limit = 10
	}
	recent, err := s.Ledger.List(ctx, kind, limit)
	if err != nil {
		return Listing{}, err
	}
	if len(recent) == 0 {
		return listing, nil
	}
	listing.Rows = recent
	listing.Substituted = true
	listing.Note = fmt.Sprintf("showing last %d %ss", len(recent), kind)
	return listing, nil
}
