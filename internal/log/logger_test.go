package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{
		Component: ComponentLedger,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})

	l.Info("saved", FieldID, 3)
	l.WithComponent(ComponentNav).Warn("popped")

	out := buf.String()
	assert.Contains(t, out, "component=ledger")
	assert.Contains(t, out, "id=3")
	assert.Contains(t, out, "component=nav")
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "budget.log")
	l, closer, err := OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("visible", FieldKind, "expense")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.Contains(t, string(data), "kind=expense")
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentStorage).
		WithOperation(OpCreate).
		WithTransaction("expense", 4, 5000, "Food").
		WithMonth(2024, 11)

	assert.Equal(t, "storage", f[FieldComponent])
	assert.Equal(t, int64(4), f[FieldID])
	assert.Equal(t, 2024, f[FieldYear])
	assert.Len(t, f.ToSlice(), len(f)*2)
}
