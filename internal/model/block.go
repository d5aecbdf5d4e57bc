// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Block, the catalog entry a Step points at, together
// with its input schema and the signature of the Go function that implements
// it.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Action is the compiled Go implementation of a block. It receives the step's
// inputs already validated against the block's schema. A returned error is
// treated exactly like a failed Outcome.
type Action func(ctx context.Context, in Inputs) (Outcome, error)

// BlockRef is the non-owning reference a Step holds to a registered Block.
type BlockRef struct {
	Module string
	Block  string
}

// String renders the reference as "module:block".
func (r BlockRef) String() string {
	return r.Module + ":" + r.Block
}

// ParseBlockRef parses the "module:block" form produced by String. Module
// names never contain a colon; block names may.
func ParseBlockRef(s string) (BlockRef, error) {
	module, block, ok := strings.Cut(s, ":")
	module, block = strings.TrimSpace(module), strings.TrimSpace(block)
	if !ok || module == "" || block == "" {
		return BlockRef{}, fmt.Errorf("invalid block reference %q: expected \"module:block\"", s)
	}
	return BlockRef{Module: module, Block: block}, nil
}

// InputSpec declares a single named, typed parameter of a block.
type InputSpec struct {
	// Name is taken from the manifest's `input "name" {}` label.
	Name string

	// Type is one of cty.String, cty.Number or cty.Bool.
	Type cty.Type

	Description string

	// Default is used when a step does not provide a value. A nil Default
	// makes the input required.
	Default *cty.Value
}

// Required reports whether a value must be supplied for the input.
func (s InputSpec) Required() bool {
	return s.Default == nil
}

// Block is a registered, invocable action usable as one step.
type Block struct {
	Module      string
	Name        string
	Description string

	// Handler is the name the action was registered under in Go code.
	Handler string

	// Inputs is the ordered parameter schema of the action.
	Inputs []InputSpec

	Action Action
}

// Ref returns the reference a Step stores for this block.
func (b *Block) Ref() BlockRef {
	return BlockRef{Module: b.Module, Block: b.Name}
}

// Input returns the position and spec of a named input.
func (b *Block) Input(name string) (int, InputSpec, bool) {
	for i, spec := range b.Inputs {
		if spec.Name == name {
			return i, spec, true
		}
	}
	return -1, InputSpec{}, false
}

// DefaultInputs returns the initial input values of a freshly bound step:
// the declared default where there is one, a typed null otherwise.
func (b *Block) DefaultInputs() []cty.Value {
	values := make([]cty.Value, len(b.Inputs))
	for i, spec := range b.Inputs {
		if spec.Default != nil {
			values[i] = *spec.Default
		} else {
			values[i] = cty.NullVal(spec.Type)
		}
	}
	return values
}

// BindInputs validates resolved input values against the block's schema and
// returns the Inputs handed to the action. The number of values must equal the
// number of declared inputs and required inputs must not be null.
func (b *Block) BindInputs(values []cty.Value) (Inputs, error) {
	if len(values) != len(b.Inputs) {
		return Inputs{}, fmt.Errorf("%w: block '%s' declares %d inputs, step provides %d",
			ErrInputMismatch, b.Name, len(b.Inputs), len(values))
	}
	for i, spec := range b.Inputs {
		v := values[i]
		if v.IsNull() {
			return Inputs{}, fmt.Errorf("%w: input '%s' of block '%s' has no value", ErrInputMismatch, spec.Name, b.Name)
		}
		if !v.Type().Equals(spec.Type) {
			return Inputs{}, fmt.Errorf("%w: input '%s' of block '%s' must be %s, got %s",
				ErrInputMismatch, spec.Name, b.Name, spec.Type.FriendlyName(), v.Type().FriendlyName())
		}
	}
	return Inputs{specs: b.Inputs, values: values}, nil
}

// Resolver resolves block references. The registry implements it.
type Resolver interface {
	Lookup(ref BlockRef) (*Block, bool)
}
