// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Module is a named group of blocks, kept in manifest declaration order.
type Module struct {
	Name        string
	Description string

	// Source is the manifest unit the module was loaded from.
	Source string
	Blocks []*model.Block
}

// Block returns the block with the given label.
func (m *Module) Block(name string) (*model.Block, bool) {
	for _, b := range m.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Registry holds every loaded module. It is read-only once Load returns.
type Registry struct {
	modules  []*Module
	byName   map[string]*Module
	warnings *multierror.Error
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Module)}
}

// Add registers a module. The module name must be new and its block labels
// unique.
func (r *Registry) Add(m *Module) error {
	if _, exists := r.byName[m.Name]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateModule, m.Name)
	}
	seen := make(map[string]bool, len(m.Blocks))
	for _, b := range m.Blocks {
		if seen[b.Name] {
			return fmt.Errorf("%w: '%s' in module '%s'", ErrDuplicateBlock, b.Name, m.Name)
		}
		seen[b.Name] = true
	}
	r.modules = append(r.modules, m)
	r.byName[m.Name] = m
	return nil
}

// Lookup resolves a block reference. It implements model.Resolver.
func (r *Registry) Lookup(ref model.BlockRef) (*model.Block, bool) {
	m, ok := r.byName[ref.Module]
	if !ok {
		return nil, false
	}
	return m.Block(ref.Block)
}

// Block returns the block registered under module and name.
func (r *Registry) Block(module, name string) (*model.Block, error) {
	b, ok := r.Lookup(model.BlockRef{Module: module, Block: name})
	if !ok {
		return nil, fmt.Errorf("%w: %s:%s", ErrBlockNotFound, module, name)
	}
	return b, nil
}

// Modules returns the loaded modules in load order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Module returns a module by name.
func (r *Registry) Module(name string) (*Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Blocks returns the blocks of a module, or nil for an unknown module.
func (r *Registry) Blocks(module string) []*model.Block {
	m, ok := r.byName[module]
	if !ok {
		return nil
	}
	out := make([]*model.Block, len(m.Blocks))
	copy(out, m.Blocks)
	return out
}

// Len returns the total number of registered blocks.
func (r *Registry) Len() int {
	n := 0
	for _, m := range r.modules {
		n += len(m.Blocks)
	}
	return n
}

// Warnings returns every unit that was skipped during Load, or nil.
func (r *Registry) Warnings() error {
	return r.warnings.ErrorOrNil()
}

func (r *Registry) warn(err error) {
	r.warnings = multierror.Append(r.warnings, err)
}
