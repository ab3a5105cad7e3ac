package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/ledger/mocks"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []core.Transaction{
		{ID: 2, Date: core.NewDate(2024, 11, 2), Description: "Dinner, with friends", Amount: core.FromCents(4250), Category: "Food"},
		{ID: 1, Date: core.NewDate(2024, 11, 1), Description: "Bus", Amount: core.FromCents(250), Category: "Transport"},
	})
	require.NoError(t, err)

	want := "Date,Description,Amount,Category\n" +
		"2024-11-02,\"Dinner, with friends\",42.50,Food\n" +
		"2024-11-01,Bus,2.50,Transport\n"
	assert.Equal(t, want, buf.String())
}

func TestExporter_Export(t *testing.T) {
	store, _ := seeded(t,
		seed{core.Expense, core.NewDate(2024, 11, 1), "Test Expense", 5000, "Food"},
		seed{core.Income, core.NewDate(2024, 11, 1), "Test Income", 100000, ""},
	)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := NewExporter(store, dir, nil).Export(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "expenses_export.csv"),
		filepath.Join(dir, "incomes_export.csv"),
	}, paths)

	exp, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category\n2024-11-01,Test Expense,50.00,Food\n", string(exp))

	inc, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category\n2024-11-01,Test Income,1000.00,Salary\n", string(inc))
}

func TestExporter_StoreFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().List(gomock.Any(), core.Expense, 0).Return(nil, errors.New("locked"))
	dir := t.TempDir()

	_, err := NewExporter(store, dir, nil).Export(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporter_CancelledContextWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().List(gomock.Any(), core.Expense, 0).Return([]core.Transaction{}, nil)
	store.EXPECT().List(gomock.Any(), core.Income, 0).Return([]core.Transaction{}, nil)
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExporter(store, dir, nil).Export(ctx)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
