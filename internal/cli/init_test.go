package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/config"
	"budget/internal/core"
	applog "budget/internal/log"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BUDGET_CLI_TEST_VALUE=from-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BUDGET_CLI_TEST_VALUE") })

	LoadEnvFile(path)
	assert.Equal(t, "from-dotenv", os.Getenv("BUDGET_CLI_TEST_VALUE"))

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SQLITE_DB_PATH", filepath.Join(dir, "db", "budget.db"))
	t.Setenv("LOG_FILE", filepath.Join(dir, "budget.log"))
	t.Setenv("EMPTY_MONTH_FALLBACK", "recent")

	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, config.FallbackRecent, cfg.EmptyMonthFallback)

	t.Setenv("DATA_BACKEND", "postgres")
	_, err = LoadAndValidateConfig()
	assert.Error(t, err)
}

func TestSetupLoggerAndOpenStore(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(dir, "budget.db"),
		LogFile:      filepath.Join(dir, "logs", "budget.log"),
		LogLevel:     "debug",
	}

	logger, closer, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		applog.SetDefault(applog.Discard())
		closer.Close()
	})

	ctx := context.Background()
	store, err := OpenStore(ctx, cfg, logger)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Add(ctx, core.Expense, core.NewTransaction{
		Date: core.NewDate(2024, 11, 1), Description: "Coffee", Amount: core.FromCents(350),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Initialized SQLite backend")
}

func TestSetupLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := SetupLogger(&config.Config{LogFile: filepath.Join(t.TempDir(), "x.log"), LogLevel: "loud"})
	assert.Error(t, err)
}
