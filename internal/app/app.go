// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/hilseq/blocks"
	"github.com/specialistvlad/hilseq/internal/codec"
	"github.com/specialistvlad/hilseq/internal/config"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/handlers"
	"github.com/specialistvlad/hilseq/internal/metrics"
	"github.com/specialistvlad/hilseq/internal/registry"
	"github.com/specialistvlad/hilseq/internal/report"
	"github.com/specialistvlad/hilseq/modules/bench_http"
	"github.com/specialistvlad/hilseq/modules/trace_log"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	hardware   *config.Hardware
	registry   *registry.Registry
	codec      *codec.Codec
	reports    *report.Generator
	metrics    *metrics.Steps
	trace      *trace_log.Collector
	httpClient *http.Client
	httpServer *http.Server
	closers    []func() error
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger, handlers and block registry.
// When modules is empty the compiled-in block modules are used, wired to the
// hardware configuration.
func NewApp(outW io.Writer, cfg *Config, modules ...handlers.Module) (*App, error) {
	logger := newLogger(cfg, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	hw, err := config.Load(ctx, cfg.HardwarePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load hardware configuration: %w", err)
	}

	a := &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		hardware: hw,
		metrics:  metrics.New(),
		trace:    trace_log.NewCollector(),
	}
	a.httpClient = bench_http.NewClient(hw.HTTP.Timeout)

	if len(modules) == 0 {
		modules = a.coreModules()
	}
	h := handlers.NewFromModules(modules...)
	logger.Debug("All Go modules registered.", "modules", len(modules), "handlers", h.Len())

	fsys, err := a.blocksFS()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(ctx, fsys, h)
	if err != nil {
		return nil, fmt.Errorf("failed to load block registry: %w", err)
	}
	if warn := reg.Warnings(); warn != nil {
		var merr *multierror.Error
		if errors.As(warn, &merr) {
			logger.Warn("Some block manifests were skipped.", "count", len(merr.Errors))
		}
	}
	logger.Debug("Block registry loaded.", "modules", len(reg.Modules()), "blocks", reg.Len())

	a.registry = reg
	a.codec = codec.New(cfg.TestcasesDir, reg)
	a.reports = report.New(cfg.ResultsDir)
	return a, nil
}

func (a *App) blocksFS() (fs.FS, error) {
	if a.config.BlocksPath == "" {
		return blocks.FS, nil
	}
	info, err := os.Stat(a.config.BlocksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open blocks path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("blocks path '%s' is not a directory", a.config.BlocksPath)
	}
	return os.DirFS(a.config.BlocksPath), nil
}

// Registry returns the application's block registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Codec returns the test-case store.
func (a *App) Codec() *codec.Codec {
	return a.codec
}

// Hardware returns the hardware configuration in effect.
func (a *App) Hardware() *config.Hardware {
	return a.hardware
}

// Context returns the application context carrying the configured logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Close releases devices and stops the health check server.
func (a *App) Close() error {
	var errs []error
	if err := a.closeHealthCheckServer(); err != nil {
		errs = append(errs, err)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
