// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Step, one slot of a container. A step is created empty
// (a placeholder), bound when a block is dropped on it, and its inputs are
// edited afterwards.
package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Step is one slot in a sequence, bound to a Block or empty.
type Step struct {
	// Ref is nil for a placeholder.
	Ref *BlockRef

	// Inputs holds one value per input declared by the bound block, in
	// declaration order.
	Inputs []cty.Value
}

// NewPlaceholder returns an empty step.
func NewPlaceholder() *Step {
	return &Step{}
}

// NewBoundStep returns a step bound to b with default inputs.
func NewBoundStep(b *Block) *Step {
	s := &Step{}
	s.Bind(b)
	return s
}

// Placeholder reports whether the step holds no block.
func (s *Step) Placeholder() bool {
	return s.Ref == nil
}

// Bind (re)binds the step to b, resetting its inputs to b's defaults.
func (s *Step) Bind(b *Block) {
	ref := b.Ref()
	s.Ref = &ref
	s.Inputs = b.DefaultInputs()
}

// SetInput converts v to the declared type of the named input and stores it.
// b must be the block the step is bound to.
func (s *Step) SetInput(b *Block, name string, v cty.Value) error {
	if s.Placeholder() {
		return ErrPlaceholder
	}
	if *s.Ref != b.Ref() {
		return fmt.Errorf("step is bound to %s, not %s", s.Ref, b.Ref())
	}
	i, spec, ok := b.Input(name)
	if !ok {
		return fmt.Errorf("%w: block '%s' has no input '%s'", ErrUnknownInput, b.Name, name)
	}
	converted, err := convert.Convert(v, spec.Type)
	if err != nil {
		return fmt.Errorf("input '%s' of block '%s': %w", name, b.Name, err)
	}
	if len(s.Inputs) != len(b.Inputs) {
		s.Inputs = b.DefaultInputs()
	}
	s.Inputs[i] = converted
	return nil
}

// Clone returns a deep copy of the step.
func (s *Step) Clone() *Step {
	c := &Step{}
	if s.Ref != nil {
		ref := *s.Ref
		c.Ref = &ref
	}
	if s.Inputs != nil {
		c.Inputs = append([]cty.Value(nil), s.Inputs...)
	}
	return c
}
