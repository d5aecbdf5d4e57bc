// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import "errors"

var (
	// ErrUnknownHandler is reported for a block whose `on_run` names a handler
	// that no compiled module registered.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrDuplicateModule is reported when a unit declares a module name that is
	// already registered.
	ErrDuplicateModule = errors.New("duplicate module")

	// ErrDuplicateBlock is reported when a module declares the same block label
	// twice.
	ErrDuplicateBlock = errors.New("duplicate block")

	// ErrBlockNotFound is returned by Block for an unknown module or block.
	ErrBlockNotFound = errors.New("block not found")
)
