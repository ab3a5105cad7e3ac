package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	applog "budget/internal/log"
)

// Empty-month presentation policies for the dashboard listings.
const (
	FallbackNone   = "none"
	FallbackRecent = "recent"
)

type Config struct {
	// Storage
	DataBackend  string
	SQLiteDBPath string

	// Logging
	LogFile  string
	LogLevel string

	// Command console
	CommandTimeout time.Duration
	ExportDir      string

	// Dashboard
	EmptyMonthFallback      string
	EmptyMonthFallbackLimit int
	DashboardListLimit      int
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budget.db"),

		LogFile:  getEnv("LOG_FILE", "./data/budget.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CommandTimeout: getEnvDuration("COMMAND_TIMEOUT", 30*time.Second),
		ExportDir:      getEnv("EXPORT_DIR", "."),

		EmptyMonthFallback:      getEnv("EMPTY_MONTH_FALLBACK", FallbackNone),
		EmptyMonthFallbackLimit: getEnvInt("EMPTY_MONTH_FALLBACK_LIMIT", 10),
		DashboardListLimit:      getEnvInt("DASHBOARD_LIST_LIMIT", 0),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.LogFile == "" {
		errors = append(errors, "log file path cannot be empty")
	}
	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.CommandTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid command timeout %v: must be at least 1 second", c.CommandTimeout))
	} else if c.CommandTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid command timeout %v: must be at most 10 minutes", c.CommandTimeout))
	}

	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	switch c.EmptyMonthFallback {
	case FallbackNone, FallbackRecent:
	default:
		errors = append(errors, fmt.Sprintf("invalid empty month fallback '%s': must be '%s' or '%s'", c.EmptyMonthFallback, FallbackNone, FallbackRecent))
	}
	if c.EmptyMonthFallbackLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid empty month fallback limit %d: must be at least 1", c.EmptyMonthFallbackLimit))
	} else if c.EmptyMonthFallbackLimit > 1000 {
		errors = append(errors, fmt.Sprintf("invalid empty month fallback limit %d: must be at most 1000", c.EmptyMonthFallbackLimit))
	}
	if c.DashboardListLimit < 0 {
		errors = append(errors, fmt.Sprintf("invalid dashboard list limit %d: must not be negative", c.DashboardListLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
