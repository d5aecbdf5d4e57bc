// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package ssm provides the system state manager health blocks.
package ssm

import (
	"context"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// HealthyScore is the lowest health score reported as good.
const HealthyScore = 80

// Parameters are the quantities the monitor block watches.
var Parameters = []string{"Voltage", "Current", "Temperature"}

// Module implements the handlers.Module interface for this package.
type Module struct{}

func onRunStatus(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	ctxlog.FromContext(ctx).Info("SSM Status: Operational")
	return model.Pass("SSM operational"), nil
}

func onRunMonitor(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	for _, p := range Parameters {
		logger.Info("Monitoring SSM parameter", "parameter", p)
	}
	return model.Pass("monitored %d parameters", len(Parameters)), nil
}

func onRunCheckHealth(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	score, err := in.Int("health_score")
	if err != nil {
		return model.Outcome{}, err
	}
	if score >= HealthyScore {
		ctxlog.FromContext(ctx).Info("SSM health", "score", score, "status", "Good")
		return model.Pass("SSM Health Score: %d. Status: Good", score), nil
	}
	ctxlog.FromContext(ctx).Warn("SSM health", "score", score, "status", "Needs Attention")
	return model.Fail("SSM Health Score: %d. Status: Needs Attention", score), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("SSMPrintStatus", onRunStatus)
	h.RegisterHandler("SSMMonitor", onRunMonitor)
	h.RegisterHandler("SSMCheckHealth", onRunCheckHealth)
}
