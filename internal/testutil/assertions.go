// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"testing"

	"github.com/specialistvlad/hilseq/internal/model"
	"github.com/stretchr/testify/require"
)

// RequireStep returns the result recorded for stepLabel in the container
// labelled caseLabel, failing the test when either is missing.
func RequireStep(t *testing.T, res *model.RunResult, caseLabel, stepLabel string) model.StepResult {
	t.Helper()
	c, ok := res.Container(caseLabel)
	require.True(t, ok, "no result for test case '%s'", caseLabel)
	s, ok := c.Step(stepLabel)
	require.True(t, ok, "no result for '%s' in '%s'", stepLabel, caseLabel)
	return s
}

// AssertStepPassed checks that a step ran and succeeded.
func AssertStepPassed(t *testing.T, res *model.RunResult, caseLabel, stepLabel string) {
	t.Helper()
	s := RequireStep(t, res, caseLabel, stepLabel)
	require.True(t, s.Success, "step '%s' of '%s' failed: %s", stepLabel, caseLabel, s.Message)
}

// AssertStepFailed checks that a step ran and failed.
func AssertStepFailed(t *testing.T, res *model.RunResult, caseLabel, stepLabel string) {
	t.Helper()
	s := RequireStep(t, res, caseLabel, stepLabel)
	require.False(t, s.Success, "step '%s' of '%s' unexpectedly passed", stepLabel, caseLabel)
}
