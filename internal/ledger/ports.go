// Package ledger defines the store that owns the expense and income
// collections. It is the only component allowed to mutate them.
package ledger

import (
	"context"

	"budget/internal/core"
)

// Store persists transactions of both kinds. Expense and income ids are
// independent sequences; an id is never reused after deletion.
//
// Absence is reported through the found/ok booleans, not as an error.
// Input problems are returned as *core.ValidationError and leave the
// store unchanged.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=ports.go Store
type Store interface {
	Add(ctx context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error)
	Update(ctx context.Context, kind core.Kind, id int64, p core.Patch) (tx core.Transaction, found bool, err error)
	Delete(ctx context.Context, kind core.Kind, id int64) (bool, error)

	// List returns transactions newest first. limit <= 0 means all of them.
	List(ctx context.Context, kind core.Kind, limit int) ([]core.Transaction, error)
	ListByDate(ctx context.Context, kind core.Kind, date core.Date) ([]core.Transaction, error)
	// ListRange returns transactions with from <= date < to, newest first.
	ListRange(ctx context.Context, kind core.Kind, from, to core.Date) ([]core.Transaction, error)
	FindByID(ctx context.Context, kind core.Kind, id int64) (tx core.Transaction, found bool, err error)
	Categories(ctx context.Context, kind core.Kind) ([]string, error)

	Close() error
}
