// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBundleName is the sentinel error wrapped by InvalidBundleNameError.
var ErrInvalidBundleName = errors.New("invalid bundle name")

type (
	// BundleName is the basename stem shared by a bundle and its sidecars
	// (<name>.tar.gpg, <name>.tar.gpg.sha1, <name>.tar.gpg.par2). Artifacts
	// are always written to the current working directory, so a valid name
	// must be a single non-empty path element.
	BundleName string

	// InvalidBundleNameError is returned when a BundleName is empty,
	// whitespace-only, a relative directory reference, or contains a path
	// separator.
	InvalidBundleNameError struct {
		Value  BundleName
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidBundleNameError) Error() string {
	return fmt.Sprintf("invalid bundle name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidBundleName for errors.Is() compatibility.
func (e *InvalidBundleNameError) Unwrap() error { return ErrInvalidBundleName }

// String returns the string representation of the BundleName.
func (n BundleName) String() string { return string(n) }

// Validate returns an error if the BundleName cannot name a bundle stem.
func (n BundleName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidBundleNameError{Value: n, Reason: "must not be empty"}
	case s == "." || s == "..":
		return &InvalidBundleNameError{Value: n, Reason: "must not be a directory reference"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidBundleNameError{Value: n, Reason: "must not contain path separators"}
	}
	return nil
}
