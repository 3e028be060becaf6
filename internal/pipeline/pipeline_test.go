// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ovk/serp/internal/exttool"
)

// fakeRunner records invocations and lets tests script per-tool outcomes,
// including creating the files a real tool would leave behind.
type fakeRunner struct {
	invocations []exttool.Invocation
	onRun       func(inv exttool.Invocation) *exttool.Result
	onCapture   func(inv exttool.Invocation) *exttool.Result
}

func (f *fakeRunner) Run(_ context.Context, inv exttool.Invocation) *exttool.Result {
	f.invocations = append(f.invocations, inv)
	if f.onRun != nil {
		return f.onRun(inv)
	}
	return exttool.NewSuccessResult()
}

func (f *fakeRunner) RunCapture(_ context.Context, inv exttool.Invocation) *exttool.Result {
	f.invocations = append(f.invocations, inv)
	if f.onCapture != nil {
		return f.onCapture(inv)
	}
	return exttool.NewSuccessResult()
}

// testTools returns a Tools value whose parity binary resolves, backed by an
// executable stub so the pack preflight probe passes.
func testTools(t *testing.T) Tools {
	t.Helper()

	dir := t.TempDir()
	parity := filepath.Join(dir, "par2")
	if err := os.WriteFile(parity, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	return Tools{
		Archiver:  "tar",
		Encryptor: "gpg",
		Checksum:  "sha1sum",
		Parity:    parity,
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// toolSequence extracts the tool of each recorded invocation.
func toolSequence(invs []exttool.Invocation) []string {
	seq := make([]string, 0, len(invs))
	for _, inv := range invs {
		seq = append(seq, inv.Tool)
	}
	return seq
}
