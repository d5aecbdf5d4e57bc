// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codec

import "encoding/json"

// document is the on-disk layout of a test case.
type document struct {
	Containers []containerDoc `json:"containers"`

	// Step is the single-container layout written by early versions:
	// {"step": {"1": {...}, "2": {...}}}.
	Step map[string]stepDoc `json:"step,omitempty"`
}

type containerDoc struct {
	Name  string    `json:"name"`
	Steps []stepDoc `json:"steps"`
}

type stepDoc struct {
	Module string                     `json:"module"`
	Block  string                     `json:"block"`
	Inputs map[string]json.RawMessage `json:"inputs,omitempty"`
}
