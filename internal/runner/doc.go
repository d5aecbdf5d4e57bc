// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package runner executes a session: containers in order, the bound steps of
// each container in order, one action in flight at a time.
//
// A container stops at its first failing step. What happens next is decided
// by the HaltPolicy: HaltContainer moves on to the next container, HaltRun
// marks every later container as skipped.
//
// Each action runs with a step-scoped logger. Everything it logs is written to
// the application logger and captured into the StepResult, followed by the
// outcome line and, when a LogSource is attached, the trace lines collected
// while the step ran.
package runner
