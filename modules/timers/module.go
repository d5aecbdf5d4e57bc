// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package timers provides the "Sleep (time)" block and the cancellable wait
// other modules use to let hardware settle.
package timers

import (
	"context"
	"time"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Wait blocks for d or until ctx is done, whichever comes first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// OnRunSleep pauses the sequence for the "sec" input.
func OnRunSleep(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	d, err := in.Seconds("sec")
	if err != nil {
		return model.Outcome{}, err
	}

	ctxlog.FromContext(ctx).Info("Test will sleep", "duration", d)
	if err := Wait(ctx, d); err != nil {
		return model.Fail("sleep interrupted after less than %s: %v", d, err), nil
	}
	return model.Pass("slept for %s", d), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("TimersSleep", OnRunSleep)
}
