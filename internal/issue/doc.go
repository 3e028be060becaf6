// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with operator-friendly messages.
//
// This package defines an error type that carries remediation steps, so failures
// like a checksum mismatch can direct the operator at the recovery path instead
// of terminating with a bare diagnostic.
package issue
