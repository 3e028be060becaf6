// SPDX-License-Identifier: MPL-2.0

package exttool

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingTool is the sentinel error wrapped by MissingToolError.
var ErrMissingTool = errors.New("required external tool not found")

// MissingToolError aggregates every unresolved tool from one preflight pass,
// so the operator sees the full installation gap at once instead of one tool
// per run.
type MissingToolError struct {
	Tools []string
}

// Error implements the error interface.
func (e *MissingToolError) Error() string {
	if len(e.Tools) == 1 {
		return fmt.Sprintf("required external tool not found in PATH: %s", e.Tools[0])
	}
	return fmt.Sprintf("required external tools not found in PATH: %s", strings.Join(e.Tools, ", "))
}

// Unwrap returns ErrMissingTool for errors.Is() compatibility.
func (e *MissingToolError) Unwrap() error { return ErrMissingTool }

// CheckTools resolves each named tool on PATH and aggregates the missing ones
// into a single MissingToolError. A tool given as an explicit path is checked
// the same way (exec.LookPath accepts both).
func CheckTools(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return &MissingToolError{Tools: missing}
	}

	return nil
}
