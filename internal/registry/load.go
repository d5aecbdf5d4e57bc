// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/fsutil"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Load builds a Registry from every *.hcl unit in fsys, binding each block to
// the action its manifest names in h. Units are visited in lexical path order.
//
// A unit that fails to parse, names an unknown handler or redeclares a module
// is skipped as a whole and recorded as a warning. Only a failure to walk fsys
// is returned as an error.
func Load(ctx context.Context, fsys fs.FS, h *handlers.Handlers) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(fsys, ".", ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk block manifests: %w", err)
	}
	if len(paths) == 0 {
		logger.Warn("No .hcl block manifests found")
	}

	reg := New()
	parser := hclparse.NewParser()

	for _, path := range paths {
		if err := reg.loadUnit(ctx, parser, fsys, path, h); err != nil {
			logger.Warn("Skipping block manifest", "file", path, "error", err)
			reg.warn(fmt.Errorf("%s: %w", path, err))
		}
	}

	logger.Info("Block registry loaded.", "modules", len(reg.modules), "blocks", reg.Len())
	return reg, nil
}

// loadUnit registers all modules of one unit or none of them.
func (r *Registry) loadUnit(ctx context.Context, parser *hclparse.Parser, fsys fs.FS, path string, h *handlers.Handlers) error {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}

	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return diags
	}

	defs, diags := parseManifest(ctx, file, path)
	if diags.HasErrors() {
		return diags
	}

	modules := make([]*Module, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if _, exists := r.byName[def.Name]; exists || seen[def.Name] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateModule, def.Name)
		}
		seen[def.Name] = true

		m, err := bindModule(def, path, h)
		if err != nil {
			return err
		}
		modules = append(modules, m)
	}

	for _, m := range modules {
		if err := r.Add(m); err != nil {
			return err
		}
	}
	return nil
}

func bindModule(def moduleDef, path string, h *handlers.Handlers) (*Module, error) {
	m := &Module{Name: def.Name, Description: def.Description, Source: path}
	for _, bd := range def.Blocks {
		action, ok := h.Get(bd.OnRun)
		if !ok {
			return nil, fmt.Errorf("%w: block '%s' of module '%s' names handler '%s'",
				ErrUnknownHandler, bd.Name, def.Name, bd.OnRun)
		}
		m.Blocks = append(m.Blocks, &model.Block{
			Module:      def.Name,
			Name:        bd.Name,
			Description: bd.Description,
			Handler:     bd.OnRun,
			Inputs:      bd.Inputs,
			Action:      action,
		})
	}
	return m, nil
}
