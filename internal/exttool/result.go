// SPDX-License-Identifier: MPL-2.0

package exttool

import "github.com/ovk/serp/pkg/types"

// Result captures the outcome of one child-process invocation.
type Result struct {
	// ExitCode is the child's exit status. Zero means success.
	ExitCode types.ExitCode
	// Output is the captured stdout (capture invocations only).
	Output string
	// ErrOutput is the captured stderr (capture invocations only).
	ErrOutput string
	// Error is set for infrastructure failures (binary not found, context
	// cancelled), not for normal non-zero child exits.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// Succeeded reports whether the invocation ran and exited zero.
func (r *Result) Succeeded() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
