// SPDX-License-Identifier: MPL-2.0

package exttool

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeFakeScript creates an executable script in dir and returns its path.
func writeFakeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tools use shell scripts")
	}
	t.Parallel()

	var stdout, stderr bytes.Buffer
	r := &execRunner{stdout: &stdout, stderr: &stderr}

	tool := writeFakeScript(t, t.TempDir(), "echoer", "echo out; echo err >&2\n")
	res := r.Run(context.Background(), Invocation{Tool: tool})

	if !res.Succeeded() {
		t.Fatalf("Run() = %+v, want success", res)
	}
	if got := stdout.String(); got != "out\n" {
		t.Errorf("stdout = %q, want %q", got, "out\n")
	}
	if got := stderr.String(); got != "err\n" {
		t.Errorf("stderr = %q, want %q", got, "err\n")
	}
}

func TestRunNonZeroExitIsNotAnInfrastructureError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tools use shell scripts")
	}
	t.Parallel()

	r := &execRunner{stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	tool := writeFakeScript(t, t.TempDir(), "failer", "exit 3\n")

	res := r.Run(context.Background(), Invocation{Tool: tool})
	if res.Error != nil {
		t.Errorf("Run() infrastructure error = %v, want nil for a plain non-zero exit", res.Error)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
}

func TestRunMissingBinary(t *testing.T) {
	t.Parallel()

	r := &execRunner{stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	res := r.Run(context.Background(), Invocation{
		Tool: filepath.Join(t.TempDir(), "does-not-exist"),
	})

	if res.Error == nil {
		t.Fatal("Run() with missing binary should report an infrastructure error")
	}
	if res.Succeeded() {
		t.Error("Run() with missing binary should not succeed")
	}
}

func TestRunCapture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tools use shell scripts")
	}
	t.Parallel()

	r := &execRunner{}
	tool := writeFakeScript(t, t.TempDir(), "hasher", `echo "da39a3ee  photos.tar.gpg"`+"\n")

	res := r.RunCapture(context.Background(), Invocation{Tool: tool})
	if !res.Succeeded() {
		t.Fatalf("RunCapture() = %+v, want success", res)
	}
	if !strings.HasPrefix(res.Output, "da39a3ee") {
		t.Errorf("captured output = %q, want checksum line", res.Output)
	}
}

func TestRunContextCancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tools use shell scripts")
	}
	t.Parallel()

	r := &execRunner{stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
	tool := writeFakeScript(t, t.TempDir(), "sleeper", "sleep 30\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Run(ctx, Invocation{Tool: tool})
	if res.Succeeded() {
		t.Error("Run() with cancelled context should not succeed")
	}
}
