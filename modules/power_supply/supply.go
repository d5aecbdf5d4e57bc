// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package power_supply

import (
	"context"
	"sync"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
)

// Supply is the bench power supply as seen by the blocks. Voltage management
// blocks drive the same Supply, so every module observes one output level.
type Supply struct {
	mu      sync.Mutex
	voltage float64
	current float64
	history []float64
}

// NewSupply returns a supply with its output off.
func NewSupply() *Supply {
	return &Supply{}
}

// SetVoltage changes the output voltage. Zero turns the output off.
func (s *Supply) SetVoltage(ctx context.Context, volts float64) {
	s.mu.Lock()
	s.voltage = volts
	s.history = append(s.history, volts)
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Info("Set Power Supply", "voltage", volts)
}

// SetCurrentLimit changes the output current limit in amperes.
func (s *Supply) SetCurrentLimit(ctx context.Context, amps float64) {
	s.mu.Lock()
	s.current = amps
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Info("Set Power Supply current limit", "current", amps)
}

// Voltage returns the present output voltage.
func (s *Supply) Voltage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voltage
}

// CurrentLimit returns the present current limit.
func (s *Supply) CurrentLimit() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// On reports whether the output is enabled.
func (s *Supply) On() bool {
	return s.Voltage() > 0
}

// History returns every voltage set so far, oldest first.
func (s *Supply) History() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.history))
	copy(out, s.history)
	return out
}
