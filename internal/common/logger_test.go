package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "unknown", input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	logger.Info("loaded source", "records", 3)
	assert.Contains(t, buf.String(), `"records":3`)

	buf.Reset()
	logger, err = NewLogger(&buf, slog.LevelWarn, "console")
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	err := NewUserError("no wallets to score", ErrNoData)

	assert.Equal(t, "no wallets to score: no transaction data loaded", err.Error())
	assert.True(t, errors.Is(err, ErrNoData))
	assert.True(t, IsNoData(err))
	assert.False(t, IsNoData(ErrExportFailed))
}

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	LogInfo("Exported rankings", Fields{"rows": 3})
	LogError(errors.New("disk full"), "Failed to close database", Fields{"path": "scores.db"})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "rows=3")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=\"disk full\"")
	assert.Contains(t, out, "path=scores.db")
}
