package main

import (
	"context"
	"fmt"
	"os"

	"budget/internal/cli"
	applog "budget/internal/log"
	"budget/internal/nav"
	"budget/internal/runner"
	"budget/internal/services"
	"budget/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "budget:", err)
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	store, err := cli.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	ledgerSvc := services.NewLedgerService(store, logger)
	defer func() {
		if err := ledgerSvc.Close(); err != nil {
			logger.Error("Failed to close ledger store", applog.FieldError, err)
		}
	}()

	session := nav.NewSession(ledgerSvc, nil)
	session.Exporter = services.NewExporter(store, cfg.ExportDir, logger)
	session.Runner = runner.New(cfg.CommandTimeout, logger)
	session.Policy = nav.PolicyFromConfig(cfg)
	session.Logger = logger

	ctrl, err := nav.NewController(ctx, session)
	if err != nil {
		return err
	}

	logger.Info("Budget tracker started", applog.FieldOperation, applog.OpStartup, "backend", cfg.DataBackend, applog.FieldMonth, session.Cursor.Month().String())
	if err := tui.Run(ctx, ctrl); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	logger.Info("Budget tracker stopped", applog.FieldOperation, applog.OpShutdown)
	return nil
}
