// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package power_supply provides the blocks that switch and adjust the bench
// power supply feeding the device under test.
package power_supply

import (
	"context"
	"time"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/modules/timers"
)

// MaxVoltage is the highest output the supply accepts.
const MaxVoltage = 60.0

// Module implements the handlers.Module interface for this package.
type Module struct {
	Supply *Supply

	// Settle is waited after every change so the output is stable before the
	// next step.
	Settle time.Duration

	// OnVoltage is the level "Turn ON" applies.
	OnVoltage float64
}

func (m *Module) apply(ctx context.Context, volts float64) (model.Outcome, error) {
	if volts < 0 || volts > MaxVoltage {
		return model.Fail("voltage %gV outside the supply range 0..%gV", volts, MaxVoltage), nil
	}
	m.Supply.SetVoltage(ctx, volts)
	if err := timers.Wait(ctx, m.Settle); err != nil {
		return model.Outcome{}, err
	}
	return model.Pass("Set Power Supply: %gV", volts), nil
}

func (m *Module) onRunOff(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	return m.apply(ctx, 0)
}

func (m *Module) onRunOn(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	return m.apply(ctx, m.OnVoltage)
}

func (m *Module) onRunSetVoltage(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	v, err := in.Number("voltage")
	if err != nil {
		return model.Outcome{}, err
	}
	return m.apply(ctx, v)
}

func (m *Module) onRunSetCurrent(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	a, err := in.Number("current")
	if err != nil {
		return model.Outcome{}, err
	}
	if a <= 0 {
		return model.Fail("current limit must be positive, got %gA", a), nil
	}
	m.Supply.SetCurrentLimit(ctx, a)
	return model.Pass("Set Power Supply current limit: %gA", a), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Supply == nil {
		m.Supply = NewSupply()
	}
	h.RegisterHandler("PowerSupplyOff", m.onRunOff)
	h.RegisterHandler("PowerSupplyOn", m.onRunOn)
	h.RegisterHandler("PowerSupplySetVoltage", m.onRunSetVoltage)
	h.RegisterHandler("PowerSupplySetCurrent", m.onRunSetCurrent)
}
