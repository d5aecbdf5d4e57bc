// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codec

import "errors"

var (
	// ErrInvalidName is returned for test-case names that are empty or would
	// escape the test-case directory.
	ErrInvalidName = errors.New("invalid test case name")

	// ErrNotFound is returned when no file exists for a test-case name.
	ErrNotFound = errors.New("test case not found")
)
