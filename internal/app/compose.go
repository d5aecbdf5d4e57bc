// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/hilseq/internal/codec"
	"github.com/specialistvlad/hilseq/internal/ctxlog"
	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// StepSpec is one step given on the command line:
// "Module:Block;input=value;input=value".
type StepSpec struct {
	Ref    model.BlockRef
	Inputs [][2]string
}

// ParseStepSpec parses the command-line form of a step.
func ParseStepSpec(s string) (StepSpec, error) {
	parts := strings.Split(s, ";")
	ref, err := model.ParseBlockRef(parts[0])
	if err != nil {
		return StepSpec{}, err
	}
	spec := StepSpec{Ref: ref}
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return StepSpec{}, fmt.Errorf("invalid input %q in step %q: expected name=value", p, s)
		}
		spec.Inputs = append(spec.Inputs, [2]string{k, v})
	}
	return spec, nil
}

// Compose builds a container named caseName from steps and saves it as the
// test case name. With appendCase the container is added to the existing
// test case instead of replacing it.
func (a *App) Compose(ctx context.Context, name, caseName string, steps []StepSpec, appendCase bool) (string, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	session := &model.Session{}
	if appendCase {
		existing, err := a.codec.Load(ctx, name)
		switch {
		case err == nil:
			session = existing
		case errors.Is(err, codec.ErrNotFound):
		default:
			return "", err
		}
	}

	container := session.AddContainer(caseName)
	for _, spec := range steps {
		block, ok := a.registry.Lookup(spec.Ref)
		if !ok {
			return "", fmt.Errorf("unknown block '%s'", spec.Ref)
		}
		step := container.Append(block)
		for _, in := range spec.Inputs {
			if err := step.SetInput(block, in[0], cty.StringVal(in[1])); err != nil {
				return "", fmt.Errorf("step '%s': %w", spec.Ref, err)
			}
		}
	}
	return a.codec.Export(ctx, session, name)
}
