package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"golang.org/x/exp/slog"

	"blogcanvas/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{name: "local environment", env: config.EnvLocal, expectedLevel: slog.LevelDebug},
		{name: "dev environment", env: config.EnvDev, expectedLevel: slog.LevelDebug},
		{name: "prod environment", env: config.EnvProd, expectedLevel: slog.LevelInfo},
		{name: "unknown environment", env: "staging", expectedLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Warn("layout updated", "version", 3)

	out := buf.String()
	assert.Contains(t, out, "layout updated")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"version": 3`)
}

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "", Err(nil).Value.String())
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	prod := NewWithLevel(config.EnvProd, "warn")
	assert.False(t, prod.Enabled(ctx, slog.LevelInfo))
	assert.True(t, prod.Enabled(ctx, slog.LevelWarn))

	dev := NewWithLevel(config.EnvDev, "error")
	assert.True(t, dev.Enabled(ctx, slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
