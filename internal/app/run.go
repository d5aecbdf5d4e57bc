// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/specialistvlad/hilseq/internal/report"
	"github.com/specialistvlad/hilseq/internal/runner"
	"github.com/specialistvlad/hilseq/internal/serialport"
)

// RunReport is what one run produced.
type RunReport struct {
	Result *model.RunResult

	// ReportPath is the rendered HTML report. It is empty when rendering
	// failed.
	ReportPath string
}

// Run loads the named test cases, runs their containers in order as one
// session and renders the report.
func (a *App) Run(ctx context.Context, names ...string) (*RunReport, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if len(names) == 0 {
		return nil, errors.New("no test case given")
	}

	session := &model.Session{}
	for _, name := range names {
		s, err := a.codec.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		session.Containers = append(session.Containers, s.Containers...)
	}
	return a.RunSession(ctx, session)
}

// RunSession runs s and renders its report. An interrupted run still gets a
// report of the steps that ran; the interruption is returned as the error.
func (a *App) RunSession(ctx context.Context, s *model.Session) (*RunReport, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)

	if err := a.healthCheckServer(); err != nil {
		return nil, err
	}
	stopTrace := a.startTrace(ctx)
	defer stopTrace()

	r := runner.New(a.registry,
		runner.WithHaltPolicy(a.config.Halt),
		runner.WithStepTimeout(a.config.StepTimeout),
		runner.WithObserver(a.metrics),
		runner.WithLogSource(a.trace),
	)
	logger.Info("🚀 Starting test run...", "halt", a.config.Halt.String())
	res, runErr := r.Run(ctx, s)
	out := &RunReport{Result: res}

	path, err := a.reports.Render(ctx, res)
	if err != nil {
		return out, errors.Join(runErr, err)
	}
	out.ReportPath = path

	if a.config.UploadURL != "" {
		if err := report.Upload(ctx, a.httpClient, path, a.config.UploadURL); err != nil {
			return out, errors.Join(runErr, fmt.Errorf("report upload: %w", err))
		}
	}
	logger.Info("🏁 Test run finished.", "passed", res.Passed(), "report", path)
	return out, runErr
}

// startTrace follows the trace serial port while a run is in progress. A port
// that cannot be opened is logged and the run continues without a trace.
func (a *App) startTrace(ctx context.Context) (stop func()) {
	hw := a.hardware.Trace
	if !hw.Enabled() {
		return func() {}
	}
	logger := ctxlog.FromContext(ctx)

	port, err := serialport.Open(ctx, hw.Port, hw.Baud)
	if err != nil {
		logger.Warn("Trace port unavailable, running without trace.", "port", hw.Port, "error", err)
		return func() {}
	}
	logger.Info("Capturing trace.", "port", hw.Port, "baud", hw.Baud)

	traceCtx, cancel := context.WithCancel(ctx)
	done := a.trace.Start(traceCtx, port)
	return func() {
		cancel()
		<-done
	}
}
