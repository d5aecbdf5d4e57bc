// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"time"
)

// StepResult is the outcome of one executed step.
type StepResult struct {
	// Index is the 1-based position of the step among the bound steps of
	// its container.
	Index   int
	Label   string
	Ref     BlockRef
	Success bool
	Message string

	// Err is the error that failed the step, if the failure was not an
	// ordinary failed outcome.
	Err error

	// Log holds everything logged while the action ran, followed by the
	// outcome line and any attached trace output.
	Log      string
	Started  time.Time
	Duration time.Duration
}

// StepLabel returns the label of the step at a 1-based index.
func StepLabel(index int) string {
	return fmt.Sprintf("Step %d", index)
}

// ContainerResult holds the step results of one container, in execution order.
type ContainerResult struct {
	// Index is the 1-based position of the container within the session.
	Index int
	Name  string
	Steps []StepResult

	// Skipped is set when the run was halted before this container started.
	Skipped bool

	// Interrupted is set when cancellation stopped the container before all
	// of its steps ran.
	Interrupted bool
}

// Label returns the "Test Case i: name" label of the container.
func (c ContainerResult) Label() string {
	return fmt.Sprintf("Test Case %d: %s", c.Index, c.Name)
}

// Passed reports whether every executed step succeeded. A container that ran
// no steps passes vacuously; a skipped or interrupted container does not pass.
func (c ContainerResult) Passed() bool {
	if c.Skipped || c.Interrupted {
		return false
	}
	for _, s := range c.Steps {
		if !s.Success {
			return false
		}
	}
	return true
}

// Step returns the result recorded under label, if any.
func (c ContainerResult) Step(label string) (StepResult, bool) {
	for _, s := range c.Steps {
		if s.Label == label {
			return s, true
		}
	}
	return StepResult{}, false
}

// RunResult is everything produced by one run of a session.
type RunResult struct {
	ID         string
	Started    time.Time
	Finished   time.Time
	Containers []ContainerResult
}

// Passed is the conjunction of every container's status.
func (r *RunResult) Passed() bool {
	for _, c := range r.Containers {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// Counts returns the number of passed and failed steps and skipped containers.
func (r *RunResult) Counts() (passed, failed, skipped int) {
	for _, c := range r.Containers {
		if c.Skipped {
			skipped++
			continue
		}
		for _, s := range c.Steps {
			if s.Success {
				passed++
			} else {
				failed++
			}
		}
	}
	return passed, failed, skipped
}

// Container returns the result recorded under a container label.
func (r *RunResult) Container(label string) (ContainerResult, bool) {
	for _, c := range r.Containers {
		if c.Label() == label {
			return c, true
		}
	}
	return ContainerResult{}, false
}
