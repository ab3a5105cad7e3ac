package services

import (
	"context"
	"fmt"

	"budget/internal/core"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// LedgerService fronts the store for the screens: it logs every mutation
// and is the single place the navigation layer writes through.
type LedgerService struct {
	store  ledger.Store
	logger *applog.Logger
}

func NewLedgerService(store ledger.Store, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &LedgerService{
		store:  store,
		logger: logger.WithComponent(applog.ComponentLedger),
	}
}

// Store exposes the underlying store to read-only collaborators.
func (s *LedgerService) Store() ledger.Store {
	return s.store
}

// Add stores a new transaction.
func (s *LedgerService) Add(ctx context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error) {
	tx, err := s.store.Add(ctx, kind, n)
	if err != nil {
		s.logFailure(ctx, applog.OpCreate, kind, 0, err)
		return core.Transaction{}, fmt.Errorf("add %s: %w", kind, err)
	}
	s.logger.InfoContext(ctx, "Transaction added",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(kind.String(), tx.ID, tx.Amount.Cents, tx.Category).
			ToSlice()...)
	return tx, nil
}

// Update applies p to the transaction with id. found is false when no such
// transaction exists.
func (s *LedgerService) Update(ctx context.Context, kind core.Kind, id int64, p core.Patch) (core.Transaction, bool, error) {
	tx, found, err := s.store.Update(ctx, kind, id, p)
	if err != nil {
		s.logFailure(ctx, applog.OpUpdate, kind, id, err)
		return core.Transaction{}, false, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	if !found {
		s.logger.WarnContext(ctx, "Update target not found", applog.FieldKind, kind, applog.FieldID, id)
		return core.Transaction{}, false, nil
	}
	s.logger.InfoContext(ctx, "Transaction updated",
		applog.NewFields().
			WithOperation(applog.OpUpdate).
			WithTransaction(kind.String(), tx.ID, tx.Amount.Cents, tx.Category).
			ToSlice()...)
	return tx, true, nil
}

// Delete removes the transaction with id and reports whether it existed.
func (s *LedgerService) Delete(ctx context.Context, kind core.Kind, id int64) (bool, error) {
	ok, err := s.store.Delete(ctx, kind, id)
	if err != nil {
		s.logFailure(ctx, applog.OpDelete, kind, id, err)
		return false, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	s.logger.InfoContext(ctx, "Transaction delete", applog.FieldKind, kind, applog.FieldID, id, "removed", ok)
	return ok, nil
}

func (s *LedgerService) List(ctx context.Context, kind core.Kind, limit int) ([]core.Transaction, error) {
	return s.store.List(ctx, kind, limit)
}

func (s *LedgerService) ListByDate(ctx context.Context, kind core.Kind, date core.Date) ([]core.Transaction, error) {
	return s.store.ListByDate(ctx, kind, date)
}

func (s *LedgerService) FindByID(ctx context.Context, kind core.Kind, id int64) (core.Transaction, bool, error) {
	return s.store.FindByID(ctx, kind, id)
}

// Close closes the store.
func (s *LedgerService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close ledger service: %w", err)
	}
	return nil
}

func (s *LedgerService) logFailure(ctx context.Context, op string, kind core.Kind, id int64, err error) {
	errType := applog.ErrorTypeDatabase
	if core.IsValidation(err) {
		errType = applog.ErrorTypeValidation
	}
	s.logger.WarnContext(ctx, "Ledger operation failed",
		applog.FieldOperation, op,
		applog.FieldKind, kind,
		applog.FieldID, id,
		"error_type", errType,
		applog.FieldError, err)
}
