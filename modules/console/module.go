// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package console provides blocks that write to the run log. They need no
// hardware and are handy for annotating a sequence or forcing a failure while
// building one.
package console

import (
	"context"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// OnRunPrint logs the "message" input.
func OnRunPrint(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	msg, err := in.String("message")
	if err != nil {
		return model.Outcome{}, err
	}
	ctxlog.FromContext(ctx).Info(msg)
	return model.Pass("printed %q", msg), nil
}

// OnRunFail logs the "message" input and fails the step.
func OnRunFail(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	msg, err := in.String("message")
	if err != nil {
		return model.Outcome{}, err
	}
	ctxlog.FromContext(ctx).Error(msg)
	return model.Fail("%s", msg), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("ConsolePrint", OnRunPrint)
	h.RegisterHandler("ConsoleFail", OnRunFail)
}
