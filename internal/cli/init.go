// Package cli provides the process bootstrap used by cmd/budget: environment,
// configuration, the log file and the ledger store.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"budget/internal/backend"
	"budget/internal/config"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger opens the log file named by cfg and makes it the default
// logger. The terminal belongs to the UI, so nothing is logged to stdout.
func SetupLogger(cfg *config.Config) (*applog.Logger, io.Closer, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := applog.OpenFile(cfg.LogFile, level)
	if err != nil {
		return nil, nil, err
	}
	applog.SetDefault(logger)
	return logger, closer, nil
}

// OpenStore opens the ledger store selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config, logger *applog.Logger) (ledger.Store, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	store, err := backend.NewFactory(logger).Open(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open ledger store", applog.FieldError, err, applog.FieldPath, cfg.SQLiteDBPath)
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
