// Package ledgertest holds the behavioural checks every ledger.Store
// implementation must pass.
package ledgertest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/ledger"
)

// Factory returns an empty store. The suite closes it.
type Factory func(t *testing.T) ledger.Store

// Run executes the store contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s ledger.Store)
	}{
		{"add then find returns submitted fields", testAddFind},
		{"add applies kind default category", testDefaultCategory},
		{"add rejects invalid input", testAddValidation},
		{"ids are per kind and never reused", testIDs},
		{"update changes only supplied fields", testUpdatePartial},
		{"update of missing id reports not found", testUpdateMissing},
		{"update validation leaves record unchanged", testUpdateValidation},
		{"delete is idempotent", testDeleteTwice},
		{"list orders by date then id descending", testListOrder},
		{"list by date matches exact day", testListByDate},
		{"list range is half open", testListRange},
		{"categories are distinct per kind", testCategories},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func add(t *testing.T, s ledger.Store, kind core.Kind, date core.Date, desc string, cents int64, category string) core.Transaction {
	t.Helper()
	tx, err := s.Add(context.Background(), kind, core.NewTransaction{
		Date:        date,
		Description: desc,
		Amount:      core.FromCents(cents),
		Category:    category,
	})
	require.NoError(t, err)
	return tx
}

func ids(txs []core.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func testAddFind(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	tx := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "Test Expense", 5000, "Food")

	got, found, err := s.FindByID(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, tx, got)
	assert.Equal(t, core.Expense, got.Kind)
	assert.Equal(t, core.NewDate(2024, 11, 1), got.Date)
	assert.Equal(t, "Test Expense", got.Description)
	assert.Equal(t, int64(5000), got.Amount.Cents)
	assert.Equal(t, "Food", got.Category)

	_, found, err = s.FindByID(ctx, core.Income, tx.ID)
	require.NoError(t, err)
	assert.False(t, found, "income namespace is independent")
}

func testDefaultCategory(t *testing.T, s ledger.Store) {
	exp := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "coffee", 300, "")
	inc := add(t, s, core.Income, core.NewDate(2024, 11, 1), "payday", 100000, "  ")

	assert.Equal(t, "Other", exp.Category)
	assert.Equal(t, "Salary", inc.Category)
}

func testAddValidation(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	bad := []core.NewTransaction{
		{Description: "no date", Amount: core.FromCents(1)},
		{Date: core.NewDate(2024, 1, 1), Description: "", Amount: core.FromCents(1)},
		{Date: core.NewDate(2024, 1, 1), Description: "neg", Amount: core.FromCents(-1)},
		{Date: core.NewDate(10000, 1, 1), Description: "far future", Amount: core.FromCents(1)},
		{Date: core.Date{Time: time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)}, Description: "time of day", Amount: core.FromCents(1)},
	}
	for i, n := range bad {
		_, err := s.Add(ctx, core.Expense, n)
		require.Error(t, err, "case %d", i)
		assert.True(t, core.IsValidation(err), "case %d: %v", i, err)
	}

	all, err := s.List(ctx, core.Expense, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Add(ctx, core.Kind("transfer"), core.NewTransaction{Date: core.NewDate(2024, 1, 1), Description: "x"})
	assert.True(t, core.IsValidation(err))
}

func testIDs(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	d := core.NewDate(2024, 5, 5)
	e1 := add(t, s, core.Expense, d, "a", 1, "")
	e2 := add(t, s, core.Expense, d, "b", 1, "")
	i1 := add(t, s, core.Income, d, "c", 1, "")

	assert.Greater(t, e2.ID, e1.ID)
	assert.Equal(t, e1.ID, i1.ID, "each kind starts its own sequence")

	ok, err := s.Delete(ctx, core.Expense, e2.ID)
	require.NoError(t, err)
	require.True(t, ok)

	e3 := add(t, s, core.Expense, d, "c", 1, "")
	assert.Greater(t, e3.ID, e2.ID, "deleted ids are retired")
}

func testUpdatePartial(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	tx := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "Test Expense", 5000, "Food")

	amount := core.FromCents(1234)
	got, found, err := s.Update(ctx, core.Expense, tx.ID, core.Patch{Amount: &amount})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1234), got.Amount.Cents)

	stored, _, err := s.FindByID(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
	assert.Equal(t, "Test Expense", stored.Description)
	assert.Equal(t, "Food", stored.Category)
	assert.Equal(t, tx.Date, stored.Date)

	desc, cat, date := "Groceries", "Home", core.NewDate(2024, 10, 31)
	got, found, err = s.Update(ctx, core.Expense, tx.ID, core.Patch{Description: &desc, Category: &cat, Date: &date})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, core.Transaction{
		ID: tx.ID, Kind: core.Expense, Date: date, Description: desc, Amount: amount, Category: cat,
	}, got)
}

func testUpdateMissing(t *testing.T, s ledger.Store) {
	desc := "x"
	_, found, err := s.Update(context.Background(), core.Income, 999, core.Patch{Description: &desc})
	require.NoError(t, err)
	assert.False(t, found)
}

func testUpdateValidation(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	tx := add(t, s, core.Income, core.NewDate(2024, 11, 1), "Test Income", 100000, "Salary")

	desc, neg := "changed", core.FromCents(-10)
	_, _, err := s.Update(ctx, core.Income, tx.ID, core.Patch{Description: &desc, Amount: &neg})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	far := core.NewDate(10000, 1, 1)
	_, _, err = s.Update(ctx, core.Income, tx.ID, core.Patch{Date: &far})
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	stored, _, err := s.FindByID(ctx, core.Income, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx, stored, "no partial field update")
}

func testDeleteTwice(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	tx := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "gone", 100, "")

	ok, err := s.Delete(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := s.FindByID(ctx, core.Expense, tx.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func testListOrder(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "a", 1, "")
	b := add(t, s, core.Expense, core.NewDate(2024, 11, 3), "b", 1, "")
	c := add(t, s, core.Expense, core.NewDate(2024, 11, 1), "c", 1, "")
	d := add(t, s, core.Expense, core.NewDate(2023, 12, 31), "d", 1, "")

	all, err := s.List(ctx, core.Expense, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, c.ID, a.ID, d.ID}, ids(all))

	top, err := s.List(ctx, core.Expense, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, c.ID}, ids(top))
}

func testListByDate(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	a := add(t, s, core.Income, core.NewDate(2024, 11, 1), "a", 1, "")
	add(t, s, core.Income, core.NewDate(2024, 11, 2), "b", 1, "")
	c := add(t, s, core.Income, core.NewDate(2024, 11, 1), "c", 1, "")

	got, err := s.ListByDate(ctx, core.Income, core.NewDate(2024, 11, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(got))

	none, err := s.ListByDate(ctx, core.Income, core.NewDate(2020, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testListRange(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	add(t, s, core.Expense, core.NewDate(2024, 11, 30), "before", 1, "")
	first := add(t, s, core.Expense, core.NewDate(2024, 12, 1), "first", 1, "")
	last := add(t, s, core.Expense, core.NewDate(2024, 12, 31), "last", 1, "")
	add(t, s, core.Expense, core.NewDate(2025, 1, 1), "after", 1, "")

	got, err := s.ListRange(ctx, core.Expense, core.NewDate(2024, 12, 1), core.NewDate(2025, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{last.ID, first.ID}, ids(got))
}

func testCategories(t *testing.T, s ledger.Store) {
	ctx := context.Background()
	d := core.NewDate(2024, 11, 1)
	add(t, s, core.Expense, d, "a", 1, "Food")
	add(t, s, core.Expense, d, "b", 1, "Transport")
	add(t, s, core.Expense, d, "c", 1, "Food")
	add(t, s, core.Income, d, "d", 1, "Bonus")

	got, err := s.Categories(ctx, core.Expense)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Transport"}, got)

	got, err = s.Categories(ctx, core.Income)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bonus"}, got)
}
