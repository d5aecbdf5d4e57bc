// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package runner

import "errors"

var (
	// ErrNotExecutable is recorded for a step whose inputs do not satisfy
	// its block's schema. The action is not invoked.
	ErrNotExecutable = errors.New("step is not executable")

	// ErrUnresolved is recorded for a step whose block is not registered.
	ErrUnresolved = errors.New("block is not registered")

	// ErrActionPanicked is recorded when an action panics.
	ErrActionPanicked = errors.New("action panicked")
)
