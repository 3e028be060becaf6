// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

// Exit codes form the scripting contract of the CLI: every failure class
// terminates the process with its own distinct value, so wrapper scripts can
// branch on the category without parsing diagnostics.
const (
	// ExitSuccess means the requested pipeline completed.
	ExitSuccess ExitCode = 0
	// ExitUsage means the command line could not be accepted (bad arity,
	// unknown flag, invalid flag value).
	ExitUsage ExitCode = 2
	// ExitChecksum means bundle checksum verification failed.
	ExitChecksum ExitCode = 3
	// ExitMissingTool means a required external tool is not resolvable on
	// PATH. This signals an environment problem, not a data problem.
	ExitMissingTool ExitCode = 4
	// ExitBadPath means an input path is missing, invalid, or in a
	// conflicting state (e.g. unpack target already exists).
	ExitBadPath ExitCode = 5
	// ExitInternal means an unexpected internal error.
	ExitInternal ExitCode = 6
	// ExitStepFailed means an external pipeline step reported failure.
	ExitStepFailed ExitCode = 7
	// ExitMkdir means the unpack target directory could not be created.
	ExitMkdir ExitCode = 8
)

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
