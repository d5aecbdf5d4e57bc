// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package wakeup provides the wake-up monitor blocks.
package wakeup

import (
	"context"
	"slices"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Sources are the wake-up sources the device supports.
var Sources = []string{"Power", "Network", "User Input"}

// Module implements the handlers.Module interface for this package.
type Module struct{}

func onRunStatus(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	ctxlog.FromContext(ctx).Info("Wakeup Monitor Status: Active")
	return model.Pass("wakeup monitor active"), nil
}

func onRunMonitor(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range Sources {
		if err := ctx.Err(); err != nil {
			return model.Outcome{}, err
		}
		logger.Info("Monitoring wakeup signal", "source", s)
	}
	return model.Pass("monitored %d wakeup sources", len(Sources)), nil
}

func onRunCheckSource(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	source, err := in.String("source")
	if err != nil {
		return model.Outcome{}, err
	}
	valid := slices.Contains(Sources, source)
	status := "Valid"
	if !valid {
		status = "Invalid"
	}
	ctxlog.FromContext(ctx).Info("Wakeup source checked", "source", source, "status", status)
	return model.PassIf(valid,
		"Wakeup source: "+source+". Status: Valid",
		"Wakeup source: "+source+". Status: Invalid"), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("WakeupPrintStatus", onRunStatus)
	h.RegisterHandler("WakeupMonitor", onRunMonitor)
	h.RegisterHandler("WakeupCheckSource", onRunCheckSource)
}
