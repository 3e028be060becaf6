// SPDX-License-Identifier: MPL-2.0

package exttool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ovk/serp/pkg/types"
)

type (
	// Invocation describes one child-process run as an immutable value.
	Invocation struct {
		// Tool is the binary name or path to execute.
		Tool string
		// Args are the argv-style arguments (no shell involved).
		Args []string
		// Interactive wires the parent's stdin to the child. Required for
		// the encryptor, whose passphrase prompt must stay inside the child:
		// the passphrase never crosses this process via argv or environment.
		Interactive bool
	}

	// Runner executes external tools. The pipeline depends on this interface
	// so tests can substitute a recording fake for the real child processes.
	Runner interface {
		// Run executes the invocation with output streamed to the parent's
		// stdout/stderr and blocks until the child exits.
		Run(ctx context.Context, inv Invocation) *Result
		// RunCapture executes the invocation with stdout/stderr captured
		// into the Result instead of streamed.
		RunCapture(ctx context.Context, inv Invocation) *Result
	}

	execRunner struct {
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}
)

// NewRunner creates a Runner wired to the parent process's standard streams.
func NewRunner() Runner {
	return &execRunner{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// Run executes a child process with streamed output.
func (r *execRunner) Run(ctx context.Context, inv Invocation) *Result {
	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if inv.Interactive {
		cmd.Stdin = r.stdin
	}

	if err := cmd.Run(); err != nil {
		return resultFromRunError(inv, err)
	}

	return NewSuccessResult()
}

// RunCapture executes a child process and captures its output.
func (r *execRunner) RunCapture(ctx context.Context, inv Invocation) *Result {
	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if inv.Interactive {
		cmd.Stdin = r.stdin
	}

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute %s: %w", inv.Tool, err)
		}
	}

	return result
}

// resultFromRunError classifies a cmd.Run error: a non-zero child exit is a
// normal Result, anything else is an infrastructure failure.
func resultFromRunError(inv Invocation, err error) *Result {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &Result{ExitCode: types.ExitCode(exitErr.ExitCode())}
	}
	return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", inv.Tool, err))
}
