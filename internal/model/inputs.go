// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"math"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Inputs are the validated, ordered argument values passed to an Action.
// Values are accessed by the names declared in the block's manifest.
type Inputs struct {
	specs  []InputSpec
	values []cty.Value
}

// NewInputs builds Inputs directly. It is intended for tests and for actions
// that call other actions.
func NewInputs(specs []InputSpec, values []cty.Value) Inputs {
	return Inputs{specs: specs, values: values}
}

// Len returns the number of inputs.
func (in Inputs) Len() int {
	return len(in.values)
}

// Value returns the raw value of a named input.
func (in Inputs) Value(name string) (cty.Value, error) {
	for i, spec := range in.specs {
		if spec.Name == name {
			return in.values[i], nil
		}
	}
	return cty.NilVal, fmt.Errorf("%w: '%s'", ErrUnknownInput, name)
}

// String decodes a named input into a Go string.
func (in Inputs) String(name string) (string, error) {
	var s string
	return s, in.decode(name, &s)
}

// Number decodes a named input into a float64.
func (in Inputs) Number(name string) (float64, error) {
	var f float64
	return f, in.decode(name, &f)
}

// Int decodes a named input into an int. Fractional numbers are rejected.
func (in Inputs) Int(name string) (int, error) {
	var n int
	return n, in.decode(name, &n)
}

// Bool decodes a named input into a bool.
func (in Inputs) Bool(name string) (bool, error) {
	var b bool
	return b, in.decode(name, &b)
}

// maxSeconds is the longest duration, in seconds, a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// Seconds decodes a numeric input expressed in seconds into a Duration.
func (in Inputs) Seconds(name string) (time.Duration, error) {
	f, err := in.Number(name)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("input '%s' must not be negative, got %g", name, f)
	}
	if f > maxSeconds {
		return 0, fmt.Errorf("input '%s' must not exceed %g seconds, got %g", name, maxSeconds, f)
	}
	return time.Duration(f * float64(time.Second)), nil
}

func (in Inputs) decode(name string, target any) error {
	v, err := in.Value(name)
	if err != nil {
		return err
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return fmt.Errorf("input '%s': %w", name, err)
	}
	return nil
}
