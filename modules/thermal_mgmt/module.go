// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package thermal_mgmt provides the thermal management blocks.
package thermal_mgmt

import (
	"context"
	"time"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/modules/timers"
)

const (
	// LimitCelsius is the highest temperature reported as normal.
	LimitCelsius = 30.0

	defaultSamples = 10
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Samples is the number of readings "Monitor Temperature" takes.
	Samples int

	// Interval separates two readings.
	Interval time.Duration

	// Read returns the i-th reading (1-based). A nil Read simulates a sensor
	// warming up by one degree per reading from 20°C.
	Read func(i int) float64
}

func (m *Module) read(i int) float64 {
	if m.Read != nil {
		return m.Read(i)
	}
	return 20 + float64(i)
}

func onRunStatus(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	ctxlog.FromContext(ctx).Info("Thermal System Status: Active")
	return model.Pass("thermal system active"), nil
}

func (m *Module) onRunMonitor(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	samples := m.Samples
	if samples <= 0 {
		samples = defaultSamples
	}

	peak := 0.0
	for i := 1; i <= samples; i++ {
		if i > 1 {
			if err := timers.Wait(ctx, m.Interval); err != nil {
				return model.Outcome{}, err
			}
		}
		c := m.read(i)
		logger.Info("Temperature reading", "n", i, "celsius", c)
		if i == 1 || c > peak {
			peak = c
		}
	}
	return model.PassIf(peak <= LimitCelsius,
		"temperature stayed within limit",
		"temperature exceeded limit"), nil
}

func onRunCheck(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	temp, err := in.Number("temp")
	if err != nil {
		return model.Outcome{}, err
	}
	logger := ctxlog.FromContext(ctx)
	if temp <= LimitCelsius {
		logger.Info("Temperature check", "celsius", temp, "status", "Normal")
		return model.Pass("Temperature: %g°C. Status: Normal", temp), nil
	}
	logger.Warn("Temperature check", "celsius", temp, "status", "High - Cooling needed")
	return model.Fail("Temperature: %g°C. Status: High - Cooling needed", temp), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("ThermalPrintStatus", onRunStatus)
	h.RegisterHandler("ThermalMonitor", m.onRunMonitor)
	h.RegisterHandler("ThermalCheck", onRunCheck)
}
