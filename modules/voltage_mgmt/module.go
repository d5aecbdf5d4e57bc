// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package voltage_mgmt provides one block per supply voltage class of the
// device's voltage management (power loss, critical low, low, normal, high,
// critical high). Each block drives the shared bench supply to the class's
// reference level.
package voltage_mgmt

import (
	"context"
	"time"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/modules/power_supply"
	"github.com/specialistvlad/hilseq/modules/timers"
)

// Level is a named voltage class.
type Level struct {
	Handler string
	Name    string
	Volts   float64
}

// Levels are the reference points of the voltage classes, lowest first.
var Levels = []Level{
	{Handler: "VoltagePowerLoss", Name: "Power Loss", Volts: 3},
	{Handler: "VoltageCriticalLow", Name: "Critical Low", Volts: 6.7},
	{Handler: "VoltageLow", Name: "Low", Volts: 7},
	{Handler: "VoltageNormal", Name: "Normal", Volts: 13},
	{Handler: "VoltageHigh", Name: "High", Volts: 18},
	{Handler: "VoltageCriticalHigh", Name: "Critical High", Volts: 25},
}

// Module implements the handlers.Module interface for this package.
type Module struct {
	Supply *power_supply.Supply
	Settle time.Duration
}

func (m *Module) action(l Level) model.Action {
	return func(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
		m.Supply.SetVoltage(ctx, l.Volts)
		ctxlog.FromContext(ctx).Info("Voltage Status: Stable", "level", l.Name, "voltage", l.Volts)
		if err := timers.Wait(ctx, m.Settle); err != nil {
			return model.Outcome{}, err
		}
		return model.Pass("%s: supply at %gV", l.Name, l.Volts), nil
	}
}

// Register registers one handler per voltage class.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Supply == nil {
		m.Supply = power_supply.NewSupply()
	}
	for _, l := range Levels {
		h.RegisterHandler(l.Handler, m.action(l))
	}
}
