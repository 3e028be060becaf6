// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ovk/serp/internal/exttool"
)

var (
	// ErrChecksumMismatch is the sentinel error wrapped by ChecksumMismatchError.
	ErrChecksumMismatch = errors.New("bundle checksum mismatch")
	// ErrDirCreate is the sentinel error wrapped by DirCreateError.
	ErrDirCreate = errors.New("failed to create target directory")
)

type (
	// Tools names the binaries of the four external collaborators, resolved
	// from configuration before the pipeline is built.
	Tools struct {
		Archiver  string
		Encryptor string
		Checksum  string
		Parity    string
	}

	// Pipeline runs the pack and unpack sequences. It holds no mutable state
	// across runs; all per-run inputs arrive in the request values.
	Pipeline struct {
		runner exttool.Runner
		tools  Tools
		logger *log.Logger
	}

	// step is one guarded stage of a pipeline chain.
	step struct {
		name string
		run  func(ctx context.Context) error
	}

	// StepError identifies which pipeline step failed. It wraps the
	// underlying cause, so typed errors (ChecksumMismatchError,
	// DirCreateError) stay reachable through errors.As.
	StepError struct {
		Step string
		Err  error
	}

	// ChecksumMismatchError is returned when checksum verification of the
	// bundle fails. The CLI layer maps it to the integrity exit code and
	// renders the parity recovery guidance.
	ChecksumMismatchError struct {
		// Bundle is the bundle file that failed verification.
		Bundle string
		// Sidecar is the checksum sidecar used for verification.
		Sidecar string
		// Detail is the checksum tool's diagnostic output.
		Detail string
	}

	// DirCreateError is returned when the unpack target directory cannot be
	// created (permissions, read-only filesystem).
	DirCreateError struct {
		Dir string
		Err error
	}
)

// New creates a Pipeline executing external tools through runner.
func New(runner exttool.Runner, tools Tools, logger *log.Logger) *Pipeline {
	return &Pipeline{runner: runner, tools: tools, logger: logger}
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *StepError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum verification of %s against %s failed", e.Bundle, e.Sidecar)
}

// Unwrap returns ErrChecksumMismatch for errors.Is() compatibility.
func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }

// Error implements the error interface.
func (e *DirCreateError) Error() string {
	return fmt.Sprintf("failed to create target directory %s: %v", e.Dir, e.Err)
}

// Unwrap returns ErrDirCreate for errors.Is() compatibility.
func (e *DirCreateError) Unwrap() error { return ErrDirCreate }

// runSteps executes the chain in order, short-circuiting on the first
// failure and tagging it with the failed step's identity.
func (p *Pipeline) runSteps(ctx context.Context, steps []step) error {
	for _, s := range steps {
		// Honour interrupt delivery between steps as well as inside the
		// blocking child process.
		if ctx.Err() != nil {
			return &StepError{Step: s.name, Err: ctx.Err()}
		}

		p.logger.Debug("running step", "step", s.name)
		if err := s.run(ctx); err != nil {
			return &StepError{Step: s.name, Err: err}
		}
		p.logger.Debug("step completed", "step", s.name)
	}

	return nil
}

// runTool invokes one external tool with streamed output and converts a
// non-zero exit into an error naming the tool.
func (p *Pipeline) runTool(ctx context.Context, inv exttool.Invocation) error {
	res := p.runner.Run(ctx, inv)
	if res.Error != nil {
		return res.Error
	}
	if !res.ExitCode.IsSuccess() {
		return fmt.Errorf("%s exited with code %s", inv.Tool, res.ExitCode)
	}
	return nil
}
