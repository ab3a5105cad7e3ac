package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DataBackend:             "sqlite",
		SQLiteDBPath:            filepath.Join(dir, "budget.db"),
		LogFile:                 filepath.Join(dir, "budget.log"),
		LogLevel:                "info",
		CommandTimeout:          30 * time.Second,
		ExportDir:               ".",
		EmptyMonthFallback:      FallbackNone,
		EmptyMonthFallbackLimit: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid sqlite backend config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid memory backend ignores db path",
			mutate: func(c *Config) { c.DataBackend = "memory"; c.SQLiteDBPath = "" },
		},
		{
			name:   "valid recent fallback",
			mutate: func(c *Config) { c.EmptyMonthFallback = FallbackRecent },
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [sqlite memory]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "empty log file",
			mutate:      func(c *Config) { c.LogFile = "" },
			wantErr:     true,
			errorString: "log file path cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "command timeout too short",
			mutate:      func(c *Config) { c.CommandTimeout = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid command timeout 500ms: must be at least 1 second",
		},
		{
			name:        "command timeout too long",
			mutate:      func(c *Config) { c.CommandTimeout = time.Hour },
			wantErr:     true,
			errorString: "invalid command timeout 1h0m0s: must be at most 10 minutes",
		},
		{
			name:        "unknown fallback policy",
			mutate:      func(c *Config) { c.EmptyMonthFallback = "guess" },
			wantErr:     true,
			errorString: "invalid empty month fallback 'guess'",
		},
		{
			name:        "fallback limit too small",
			mutate:      func(c *Config) { c.EmptyMonthFallbackLimit = 0 },
			wantErr:     true,
			errorString: "invalid empty month fallback limit 0: must be at least 1",
		},
		{
			name:        "negative list limit",
			mutate:      func(c *Config) { c.DashboardListLimit = -1 },
			wantErr:     true,
			errorString: "invalid dashboard list limit -1: must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.DataBackend = "nope"
	cfg.LogLevel = "nope"
	cfg.EmptyMonthFallback = "nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 reported problems, got %d: %v", got, err)
	}
}

func TestConfig_ValidateCreatesDatabaseDirectory(t *testing.T) {
	cfg := validConfig(t)
	dir := filepath.Join(t.TempDir(), "a", "b")
	cfg.SQLiteDBPath = filepath.Join(dir, "budget.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected %s to be created: %v", dir, err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"DATA_BACKEND", "SQLITE_DB_PATH", "LOG_FILE", "LOG_LEVEL", "COMMAND_TIMEOUT",
		"EXPORT_DIR", "EMPTY_MONTH_FALLBACK", "EMPTY_MONTH_FALLBACK_LIMIT", "DASHBOARD_LIST_LIMIT",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/budget.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/budget.db", cfg.SQLiteDBPath)
		}
		if cfg.CommandTimeout != 30*time.Second {
			t.Errorf("Load() CommandTimeout = %v, want 30s", cfg.CommandTimeout)
		}
		if cfg.EmptyMonthFallback != FallbackNone {
			t.Errorf("Load() EmptyMonthFallback = %v, want none", cfg.EmptyMonthFallback)
		}
		if cfg.EmptyMonthFallbackLimit != 10 {
			t.Errorf("Load() EmptyMonthFallbackLimit = %v, want 10", cfg.EmptyMonthFallbackLimit)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("COMMAND_TIMEOUT", "45s")
		t.Setenv("EMPTY_MONTH_FALLBACK", "recent")
		t.Setenv("EMPTY_MONTH_FALLBACK_LIMIT", "5")

		cfg := Load()

		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.CommandTimeout != 45*time.Second {
			t.Errorf("Load() CommandTimeout = %v, want 45s", cfg.CommandTimeout)
		}
		if cfg.EmptyMonthFallback != FallbackRecent || cfg.EmptyMonthFallbackLimit != 5 {
			t.Errorf("Load() fallback = %v/%d, want recent/5", cfg.EmptyMonthFallback, cfg.EmptyMonthFallbackLimit)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("COMMAND_TIMEOUT", "invalid")
		t.Setenv("EMPTY_MONTH_FALLBACK_LIMIT", "invalid")

		cfg := Load()

		if cfg.CommandTimeout != 30*time.Second {
			t.Errorf("Load() CommandTimeout = %v, want 30s (default for invalid input)", cfg.CommandTimeout)
		}
		if cfg.EmptyMonthFallbackLimit != 10 {
			t.Errorf("Load() EmptyMonthFallbackLimit = %v, want 10 (default for invalid input)", cfg.EmptyMonthFallbackLimit)
		}
	})
}
