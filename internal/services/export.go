package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"budget/internal/core"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

var csvHeader = []string{"Date", "Description", "Amount", "Category"}

// ExportFileName returns the file the exporter writes for kind.
func ExportFileName(kind core.Kind) string {
	return kind.String() + "s_export.csv"
}

// WriteCSV writes txs in the given order with a Date,Description,Amount,Category header.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range txs {
		if err := cw.Write([]string{t.Date.String(), t.Description, t.Amount.String(), t.Category}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Exporter dumps both collections to CSV files in a directory.
type Exporter struct {
	store  ledger.Store
	dir    string
	logger *applog.Logger
}

func NewExporter(store ledger.Store, dir string, logger *applog.Logger) *Exporter {
	if logger == nil {
		logger = applog.Discard()
	}
	if dir == "" {
		dir = "."
	}
	return &Exporter{store: store, dir: dir, logger: logger.WithComponent(applog.ComponentExport)}
}

// Export reads both listings from the store and writes one file per kind.
// It returns the written paths in Kinds() order.
func (e *Exporter) Export(ctx context.Context) ([]string, error) {
	kinds := core.Kinds()
	listings := make([][]core.Transaction, len(kinds))
	for i, kind := range kinds {
		txs, err := e.store.List(ctx, kind, 0)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", kind, err)
		}
		listings[i] = txs
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	paths := make([]string, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		path := filepath.Join(e.dir, ExportFileName(kind))
		paths[i] = path
		txs := listings[i]
		g.Go(func() error {
			return writeCSVFile(gctx, path, txs)
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Export failed", applog.FieldOperation, applog.OpExport, applog.FieldError, err)
		return nil, err
	}

	e.logger.InfoContext(ctx, "Exported ledger",
		applog.FieldPath, e.dir,
		"expenses", len(listings[0]),
		"incomes", len(listings[1]))
	return paths, nil
}

func writeCSVFile(ctx context.Context, path string, txs []core.Transaction) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := WriteCSV(f, txs); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
