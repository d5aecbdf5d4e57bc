// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package handlers stores the compiled Go actions that block manifests refer
// to by name through their `on_run` attribute.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/hilseq/internal/model"
)

// Module is the interface that every block module implements to contribute
// its actions.
type Module interface {
	Register(h *Handlers)
}

// Handlers holds all the registered actions.
type Handlers struct {
	all map[string]model.Action
}

// New creates and initializes a new Handlers instance.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]model.Action),
	}
}

// NewFromModules creates a Handlers instance and lets every module register
// its actions.
func NewFromModules(modules ...Module) *Handlers {
	h := New()
	for _, m := range modules {
		m.Register(h)
	}
	return h
}

// RegisterHandler registers a Go function under the name used by manifests.
// Registering the same name twice is a programming error.
func (h *Handlers) RegisterHandler(name string, fn model.Action) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	if fn == nil {
		panic(fmt.Sprintf("handler '%s' has a nil action", name))
	}
	slog.Debug("Registering block handler.", "name", name)
	h.all[name] = fn
}

// Get returns the action registered under name.
func (h *Handlers) Get(name string) (model.Action, bool) {
	fn, ok := h.all[name]
	return fn, ok
}

// Names returns every registered handler name in sorted order.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered handlers.
func (h *Handlers) Len() int {
	return len(h.all)
}
