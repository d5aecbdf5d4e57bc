package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_UsesConfiguredLevelAndFormat(t *testing.T) {
	cfg, err := NewConfig(Config{TestcasesDir: "tc", ResultsDir: "res", LogLevel: "warn", LogFormat: "json"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewConfig_DefaultsToInfoLevel(t *testing.T) {
	cfg, err := NewConfig(Config{TestcasesDir: "tc", ResultsDir: "res"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Info("text line")
	assert.Contains(t, buf.String(), `msg="text line"`)
}
