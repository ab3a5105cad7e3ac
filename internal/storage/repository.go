package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budget/internal/core"
	applog "budget/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable ledger.Store. One connection is opened at
// startup and every read and write goes through it in turn.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func table(kind core.Kind) (string, error) {
	switch kind {
	case core.Expense:
		return "expenses", nil
	case core.Income:
		return "incomes", nil
	default:
		return "", kind.Validate()
	}
}

const columns = "id, date, description, amount_cents, category"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(kind core.Kind, row rowScanner) (core.Transaction, error) {
	var (
		tx   core.Transaction
		date string
	)
	if err := row.Scan(&tx.ID, &date, &tx.Description, &tx.Amount.Cents, &tx.Category); err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date for id %d: %w", tx.ID, err)
	}
	tx.Date = d
	tx.Kind = kind
	return tx, nil
}

func (r *SQLiteRepository) query(ctx context.Context, kind core.Kind, tail string, args ...any) ([]core.Transaction, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM "+tbl+" "+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tbl, err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", tbl, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", tbl, err)
	}
	return out, nil
}

// Add implements ledger.Store
func (r *SQLiteRepository) Add(ctx context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error) {
	tbl, err := table(kind)
	if err != nil {
		return core.Transaction{}, err
	}
	n = n.Normalize(kind)
	if err := n.Validate(); err != nil {
		return core.Transaction{}, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO "+tbl+" (date, description, amount_cents, category) VALUES (?, ?, ?, ?)",
		n.Date.String(), n.Description, n.Amount.Cents, n.Category)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldKind, kind,
		applog.FieldID, id,
		applog.FieldAmountCents, n.Amount.Cents,
		applog.FieldCategory, n.Category)

	return core.Transaction{
		ID:          id,
		Kind:        kind,
		Date:        n.Date,
		Description: n.Description,
		Amount:      n.Amount,
		Category:    n.Category,
	}, nil
}

// Update implements ledger.Store. The row is read, patched and written back
// inside one transaction.
func (r *SQLiteRepository) Update(ctx context.Context, kind core.Kind, id int64, p core.Patch) (core.Transaction, bool, error) {
	tbl, err := table(kind)
	if err != nil {
		return core.Transaction{}, false, err
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return core.Transaction{}, false, err
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("begin update: %w", err)
	}
	defer dbtx.Rollback()

	current, err := scanTransaction(kind, dbtx.QueryRowContext(ctx,
		"SELECT "+columns+" FROM "+tbl+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("load %s %d: %w", kind, id, err)
	}

	updated := p.Apply(current)
	if _, err := dbtx.ExecContext(ctx,
		"UPDATE "+tbl+" SET date = ?, description = ?, amount_cents = ?, category = ? WHERE id = ?",
		updated.Date.String(), updated.Description, updated.Amount.Cents, updated.Category, id); err != nil {
		return core.Transaction{}, false, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	if err := dbtx.Commit(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("commit update: %w", err)
	}

	slog.InfoContext(ctx, "Transaction updated",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldKind, kind,
		applog.FieldID, id)

	return updated, true, nil
}

// Delete implements ledger.Store
func (r *SQLiteRepository) Delete(ctx context.Context, kind core.Kind, id int64) (bool, error) {
	tbl, err := table(kind)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+tbl+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Transaction deleted",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldKind, kind,
			applog.FieldID, id)
	}
	return n > 0, nil
}

// List implements ledger.Store
func (r *SQLiteRepository) List(ctx context.Context, kind core.Kind, limit int) ([]core.Transaction, error) {
	if limit > 0 {
		return r.query(ctx, kind, "ORDER BY date DESC, id DESC LIMIT ?", limit)
	}
	return r.query(ctx, kind, "ORDER BY date DESC, id DESC")
}

// ListByDate implements ledger.Store
func (r *SQLiteRepository) ListByDate(ctx context.Context, kind core.Kind, date core.Date) ([]core.Transaction, error) {
	return r.query(ctx, kind, "WHERE date = ? ORDER BY id DESC", date.String())
}

// ListRange implements ledger.Store. Dates are stored as YYYY-MM-DD so string
// comparison matches calendar order.
func (r *SQLiteRepository) ListRange(ctx context.Context, kind core.Kind, from, to core.Date) ([]core.Transaction, error) {
	return r.query(ctx, kind, "WHERE date >= ? AND date < ? ORDER BY date DESC, id DESC", from.String(), to.String())
}

// FindByID implements ledger.Store
func (r *SQLiteRepository) FindByID(ctx context.Context, kind core.Kind, id int64) (core.Transaction, bool, error) {
	txs, err := r.query(ctx, kind, "WHERE id = ?", id)
	if err != nil {
		return core.Transaction{}, false, err
	}
	if len(txs) == 0 {
		return core.Transaction{}, false, nil
	}
	return txs[0], true, nil
}

// Categories implements ledger.Store
func (r *SQLiteRepository) Categories(ctx context.Context, kind core.Kind) ([]string, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM "+tbl+" ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("get %s categories: %w", kind, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
