// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Runner executes sessions against a block resolver.
type Runner struct {
	resolver    model.Resolver
	halt        HaltPolicy
	stepTimeout time.Duration
	trace       LogSource
	observers   []Observer
	now         func() time.Time
}

// New creates a runner that resolves step references through resolver.
func New(resolver model.Resolver, opts ...Option) *Runner {
	r := &Runner{resolver: resolver, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every container of s in order. The session is not modified.
//
// When ctx is cancelled the run stops after the step in flight; the partial
// result is returned together with the context error. A container cut short
// is marked as interrupted and containers that never started as skipped.
func (r *Runner) Run(ctx context.Context, s *model.Session) (*model.RunResult, error) {
	res := &model.RunResult{ID: uuid.NewString(), Started: r.now()}
	ctx = ctxlog.With(ctx, "run_id", res.ID)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Run started.", "containers", len(s.Containers), "steps", s.BoundStepCount())

	if r.trace != nil {
		r.trace.Reset()
	}

	halted := false
	var runErr error
	for i, c := range s.Containers {
		cr := model.ContainerResult{Index: i + 1, Name: c.Name}
		if runErr == nil {
			runErr = ctx.Err()
		}
		if halted || runErr != nil {
			cr.Skipped = true
			res.Containers = append(res.Containers, cr)
			continue
		}

		cctx := ctxlog.With(ctx, "test_case", cr.Label())
		ctxlog.FromContext(cctx).Debug("Test case started.")

		for n, step := range c.BoundSteps() {
			if err := ctx.Err(); err != nil {
				runErr = err
				cr.Interrupted = true
				ctxlog.FromContext(cctx).Warn("Test case interrupted.", "step", model.StepLabel(n+1))
				break
			}
			sr := r.runStep(cctx, n+1, step)
			cr.Steps = append(cr.Steps, sr)
			if !sr.Success {
				ctxlog.FromContext(cctx).Warn("Test case stopped at failing step.", "step", sr.Label)
				if r.halt == HaltRun {
					halted = true
				}
				break
			}
		}
		if runErr == nil {
			runErr = ctx.Err()
		}
		res.Containers = append(res.Containers, cr)
	}

	res.Finished = r.now()
	passed, failed, skipped := res.Counts()
	logger.Info("Run finished.",
		"passed", res.Passed(),
		"steps_passed", passed,
		"steps_failed", failed,
		"containers_skipped", skipped,
		"duration", res.Finished.Sub(res.Started),
	)
	if runErr != nil {
		return res, fmt.Errorf("run %s interrupted: %w", res.ID, runErr)
	}
	return res, nil
}

// runStep executes one bound step and never fails the run itself: every
// problem becomes a failed StepResult.
func (r *Runner) runStep(ctx context.Context, index int, step *model.Step) model.StepResult {
	ref := *step.Ref
	sr := model.StepResult{
		Index:   index,
		Label:   model.StepLabel(index),
		Ref:     ref,
		Started: r.now(),
	}

	ctx = ctxlog.With(ctx, "step", sr.Label, "block", ref.String())
	ctx, capture := ctxlog.WithCapture(ctx)
	logger := ctxlog.FromContext(ctx)

	for _, o := range r.observers {
		o.StepStarted(ctx, ref)
	}

	outcome, err := r.invoke(ctx, ref, step)
	sr.Duration = r.now().Sub(sr.Started)

	switch {
	case err != nil:
		sr.Err = err
		sr.Message = err.Error()
		logger.Error(fmt.Sprintf("Exception occurred during step %d: %v", index, err))
	case outcome.Success:
		sr.Success = true
		sr.Message = outcome.Message
		logger.Info(fmt.Sprintf("Step %d: %s executed successfully", index, ref.Block))
	default:
		sr.Message = outcome.Message
		logger.Error(fmt.Sprintf("Error executing step %d (%s) with: %s", index, ref.Block, outcome.Message))
	}

	sr.Log = capture.String()
	if r.trace != nil {
		if trace := r.trace.Snapshot(); trace != "" {
			sr.Log += strings.TrimRight(trace, "\n") + "\n"
		}
	}

	for _, o := range r.observers {
		o.StepFinished(ctx, sr)
	}
	return sr
}

// invoke resolves and validates the step, then calls its action. A non-nil
// error means the step failed for a reason other than its own outcome.
func (r *Runner) invoke(ctx context.Context, ref model.BlockRef, step *model.Step) (outcome model.Outcome, err error) {
	block, ok := r.resolver.Lookup(ref)
	if !ok {
		return model.Outcome{}, fmt.Errorf("%w: %s", ErrUnresolved, ref)
	}
	in, err := block.BindInputs(step.Inputs)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	if r.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			outcome = model.Outcome{}
			err = fmt.Errorf("%w: %v", ErrActionPanicked, p)
		}
	}()

	outcome, err = block.Action(ctx, in)
	if err != nil && r.stepTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", r.stepTimeout, err)
	}
	return outcome, err
}
