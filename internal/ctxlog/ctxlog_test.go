package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestWithCapture_TeesToParentAndCapture(t *testing.T) {
	var parentOut bytes.Buffer
	parent := slog.New(slog.NewTextHandler(&parentOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := WithLogger(context.Background(), parent.With("run_id", "r1"))

	stepCtx, capture := WithCapture(ctx)
	logger := FromContext(stepCtx)
	logger.Info("Set Power Supply: 12V", "volts", 12)
	logger.Debug("below parent level")

	captured := capture.String()
	assert.Contains(t, captured, "INFO - Set Power Supply: 12V volts=12")
	assert.Contains(t, captured, "DEBUG - below parent level")
	assert.NotContains(t, captured, "run_id", "run-wide attributes stay out of the step log")

	assert.Contains(t, parentOut.String(), "Set Power Supply: 12V")
	assert.Contains(t, parentOut.String(), "run_id=r1")
	assert.NotContains(t, parentOut.String(), "below parent level")
}

func TestWithCapture_IsScopedToTheReturnedContext(t *testing.T) {
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	firstCtx, first := WithCapture(ctx)
	FromContext(firstCtx).Info("first step")

	secondCtx, second := WithCapture(ctx)
	FromContext(secondCtx).Info("second step")
	FromContext(ctx).Info("outside any step")

	assert.Contains(t, first.String(), "first step")
	assert.NotContains(t, first.String(), "second step")
	assert.Contains(t, second.String(), "second step")
	assert.NotContains(t, second.String(), "outside any step")
}

func TestWithCapture_GroupsAndAttrs(t *testing.T) {
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	stepCtx, capture := WithCapture(ctx)

	FromContext(stepCtx).With("device", "dut1").WithGroup("adb").Info("command finished", "exit", 0)

	assert.Contains(t, capture.String(), "command finished device=dut1 adb.exit=0")
}
