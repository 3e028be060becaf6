// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    ExitCode
		wantErr bool
	}{
		{"success", ExitSuccess, false},
		{"usage", ExitUsage, false},
		{"upper bound", ExitCode(255), false},
		{"negative", ExitCode(-1), true},
		{"above range", ExitCode(256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode, got %v", err)
			}
		})
	}
}

func TestExitCodeDistinct(t *testing.T) {
	t.Parallel()

	// The scripting contract requires every failure class to carry its own
	// numeric value.
	codes := []ExitCode{
		ExitSuccess,
		ExitUsage,
		ExitChecksum,
		ExitMissingTool,
		ExitBadPath,
		ExitInternal,
		ExitStepFailed,
		ExitMkdir,
	}

	seen := make(map[ExitCode]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d assigned to more than one failure class", c)
		}
		seen[c] = true
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false, want true")
	}
	if ExitStepFailed.IsSuccess() {
		t.Error("ExitStepFailed.IsSuccess() = true, want false")
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitMissingTool.String(); got != "4" {
		t.Errorf("String() = %q, want %q", got, "4")
	}
}
