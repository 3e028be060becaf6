// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/internal/pipeline"
	"github.com/ovk/serp/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// newExitError wraps err with the exit code of its failure class.
func newExitError(code types.ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// exitCodeFor classifies a pipeline error into the scripting exit-code
// contract. Typed causes stay reachable through StepError's Unwrap, so the
// specific classes win over the generic step-failure code.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case errors.Is(err, pipeline.ErrChecksumMismatch):
		return types.ExitChecksum
	case errors.Is(err, exttool.ErrMissingTool):
		return types.ExitMissingTool
	case errors.Is(err, pipeline.ErrDirCreate):
		return types.ExitMkdir
	}

	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		return types.ExitStepFailed
	}

	return types.ExitInternal
}
