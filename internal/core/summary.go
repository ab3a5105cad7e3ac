package core

import (
	"sort"
	"time"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthSummary is the dashboard headline for a specific year+month.
type MonthSummary struct {
	Month         Month
	TotalExpenses Money
	TotalIncomes  Money
	Balance       Money
}

// NewMonthSummary derives the balance from the two totals.
func NewMonthSummary(m Month, expenses, incomes Money) MonthSummary {
	return MonthSummary{
		Month:         m,
		TotalExpenses: expenses,
		TotalIncomes:  incomes,
		Balance:       incomes.Sub(expenses),
	}
}

// Month identifies a calendar month. It is the dashboard's month cursor.
type Month struct {
	Year  int
	Month int // 1-12
}

// NewMonth normalises out-of-range months, so NewMonth(2024, 13) is 2025-01.
func NewMonth(year, month int) Month {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

func (m Month) Validate() error {
	if m.Month < 1 || m.Month > 12 || m.Year < 1 {
		return invalid("month", ErrInvalidDate)
	}
	return nil
}

// First returns the first day of the month.
func (m Month) First() Date {
	return NewDate(m.Year, m.Month, 1)
}

// Next returns the following month; December rolls to January of the next year.
func (m Month) Next() Month {
	if m.Month == 12 {
		return Month{Year: m.Year + 1, Month: 1}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month; January rolls back to December.
func (m Month) Prev() Month {
	if m.Month == 1 {
		return Month{Year: m.Year - 1, Month: 12}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Window returns the half-open range [first of month, first of next month).
func (m Month) Window() (from, to Date) {
	return m.First(), m.Next().First()
}

// Contains reports whether d falls inside the month's window.
func (m Month) Contains(d Date) bool {
	from, to := m.Window()
	return !d.Before(from.Time) && d.Before(to.Time)
}

// Label formats the month as "November 2024".
func (m Month) Label() string {
	return m.First().Format("January 2006")
}

func (m Month) String() string {
	return m.First().Format("2006-01")
}

// SortedCategoryAmounts flattens a totals map, largest amount first and
// name order on ties.
func SortedCategoryAmounts(totals map[string]Money) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Total sums the amounts of txs.
func Total(txs []Transaction) Money {
	var sum Money
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}
