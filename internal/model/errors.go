// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "errors"

var (
	// ErrIndexOutOfRange is returned when a container or step index does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownInput is returned when an input name is not declared by the block.
	ErrUnknownInput = errors.New("unknown input")

	// ErrInputMismatch is returned when step inputs do not satisfy the block schema.
	ErrInputMismatch = errors.New("inputs do not match block schema")

	// ErrPlaceholder is returned when an operation needs a bound step.
	ErrPlaceholder = errors.New("step has no block")
)
