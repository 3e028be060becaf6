// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the CLI and
// pipeline layers (exit codes, redundancy percentages, bundle names). These
// types carry semantic meaning and validation but have no domain-specific
// dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRedundancyPercent is the sentinel error wrapped by InvalidRedundancyPercentError.
var ErrInvalidRedundancyPercent = errors.New("invalid redundancy percent")

type (
	// RedundancyPercent is the ratio of parity recovery data to bundle size
	// requested from the parity generator, expressed as a whole percentage.
	// 0 is valid and yields a minimal parity set.
	RedundancyPercent int

	// InvalidRedundancyPercentError is returned when a RedundancyPercent is
	// outside the range 0-100.
	InvalidRedundancyPercentError struct {
		Value RedundancyPercent
	}
)

// Error implements the error interface.
func (e *InvalidRedundancyPercentError) Error() string {
	return fmt.Sprintf("invalid redundancy percent %d (must be in range 0-100)", e.Value)
}

// Unwrap returns ErrInvalidRedundancyPercent for errors.Is() compatibility.
func (e *InvalidRedundancyPercentError) Unwrap() error { return ErrInvalidRedundancyPercent }

// Validate returns an error if the RedundancyPercent is outside 0-100.
// The parity generator would reject out-of-range values anyway; validating
// here keeps the no-side-effects-before-validation contract instead of
// burning an archive and encryption run first.
func (r RedundancyPercent) Validate() error {
	if r < 0 || r > 100 {
		return &InvalidRedundancyPercentError{Value: r}
	}
	return nil
}

// String returns the decimal string representation of the RedundancyPercent.
func (r RedundancyPercent) String() string { return strconv.Itoa(int(r)) }
