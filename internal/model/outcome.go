// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Outcome is the explicit result of an Action.
type Outcome struct {
	Success bool
	Message string
}

// Pass returns a successful Outcome.
func Pass(format string, args ...any) Outcome {
	return Outcome{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failed Outcome.
func Fail(format string, args ...any) Outcome {
	return Outcome{Success: false, Message: fmt.Sprintf(format, args...)}
}

// PassIf returns Pass(okMsg) when ok is true and Fail(failMsg) otherwise.
func PassIf(ok bool, okMsg, failMsg string) Outcome {
	if ok {
		return Outcome{Success: true, Message: okMsg}
	}
	return Outcome{Success: false, Message: failMsg}
}
