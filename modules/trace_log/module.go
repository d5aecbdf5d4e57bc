// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package trace_log captures the trace output the device prints on its trace
// serial line and provides the blocks to clear and save it.
package trace_log

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/fsutil"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	Collector *Collector
}

func (m *Module) onRunClear(ctx context.Context, _ model.Inputs) (model.Outcome, error) {
	n := len(m.Collector.Lines())
	m.Collector.Clear()
	ctxlog.FromContext(ctx).Info("Clear log", "dropped_lines", n)
	return model.Pass("trace log cleared"), nil
}

func (m *Module) onRunSave(ctx context.Context, in model.Inputs) (model.Outcome, error) {
	path, err := in.String("path")
	if err != nil {
		return model.Outcome{}, err
	}
	if path == "" {
		return model.Fail("no path given"), nil
	}

	lines := m.Collector.Lines()
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return model.Outcome{}, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return model.Outcome{}, err
	}
	ctxlog.FromContext(ctx).Info("Trace log saved", "path", path, "lines", len(lines))
	return model.Pass("saved %d lines to %s", len(lines), path), nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Collector == nil {
		m.Collector = NewCollector()
	}
	h.RegisterHandler("TraceClear", m.onRunClear)
	h.RegisterHandler("TraceSave", m.onRunSave)
}
