// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/hilseq/internal/model"
)

// HaltPolicy decides what a failing step does to the rest of the run.
type HaltPolicy int

const (
	// HaltContainer stops the failing container and continues with the next.
	HaltContainer HaltPolicy = iota
	// HaltRun stops the failing container and skips every later one.
	HaltRun
)

func (p HaltPolicy) String() string {
	switch p {
	case HaltContainer:
		return "container"
	case HaltRun:
		return "run"
	default:
		return fmt.Sprintf("HaltPolicy(%d)", int(p))
	}
}

// ParseHaltPolicy parses the "container" and "run" flag values.
func ParseHaltPolicy(s string) (HaltPolicy, error) {
	switch s {
	case "", "container":
		return HaltContainer, nil
	case "run":
		return HaltRun, nil
	default:
		return HaltContainer, fmt.Errorf("invalid halt policy %q: must be 'container' or 'run'", s)
	}
}

// LogSource supplies out-of-band log lines, such as a device trace, that are
// attached to each step's log. Snapshot returns the lines gathered since the
// previous call.
type LogSource interface {
	Reset()
	Snapshot() string
}

// Observer receives step lifecycle events.
type Observer interface {
	StepStarted(ctx context.Context, ref model.BlockRef)
	StepFinished(ctx context.Context, res model.StepResult)
}

// Option configures a Runner.
type Option func(*Runner)

// WithHaltPolicy sets the policy applied when a step fails.
func WithHaltPolicy(p HaltPolicy) Option {
	return func(r *Runner) { r.halt = p }
}

// WithStepTimeout bounds the duration of every action. Zero means no limit.
func WithStepTimeout(d time.Duration) Option {
	return func(r *Runner) { r.stepTimeout = d }
}

// WithLogSource attaches a trace source to every step log.
func WithLogSource(src LogSource) Option {
	return func(r *Runner) { r.trace = src }
}

// WithObserver adds an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}
