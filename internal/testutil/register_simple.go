// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// SimpleModule registers canned handlers and records every invocation.
type SimpleModule struct {
	// Outcomes maps handler names to the outcome they return.
	Outcomes map[string]model.Outcome

	mu    sync.Mutex
	calls []string
}

// Register implements the handlers.Module interface.
func (m *SimpleModule) Register(h *handlers.Handlers) {
	for name, outcome := range m.Outcomes {
		h.RegisterHandler(name, func(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
			m.mu.Lock()
			m.calls = append(m.calls, name)
			m.mu.Unlock()
			return outcome, nil
		})
	}
}

// Calls returns the handler names invoked so far, in order.
func (m *SimpleModule) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
