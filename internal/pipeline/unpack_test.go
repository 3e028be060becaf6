// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/pkg/bundle"
	"github.com/ovk/serp/pkg/types"
)

// unpackFixture prepares a working directory holding a bundle and checksum
// sidecar, with a fake runner that mimics decryption output.
func unpackFixture(t *testing.T) (*Pipeline, *fakeRunner, UnpackRequest) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("parity probe stub uses a shell script")
	}

	tools := testTools(t)
	t.Chdir(t.TempDir())

	a := bundle.New(types.BundleName("photos"))
	if err := os.WriteFile(a.BundlePath(), []byte("gpg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(a.ChecksumPath(), []byte("da39a3ee  photos.tar.gpg\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := UnpackRequest{TargetDir: "restored", Artifacts: a}

	runner := &fakeRunner{
		onRun: func(inv exttool.Invocation) *exttool.Result {
			if inv.Tool == tools.Encryptor {
				if err := os.WriteFile(a.IntermediateTarPath(req.TargetDir), []byte("tar"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			return exttool.NewSuccessResult()
		},
	}

	return New(runner, tools, quietLogger()), runner, req
}

func TestUnpackRunsToolsInOrder(t *testing.T) {
	p, runner, req := unpackFixture(t)

	if err := p.Unpack(context.Background(), req); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	tarPath := req.Artifacts.IntermediateTarPath(req.TargetDir)
	want := []exttool.Invocation{
		{
			Tool: "sha1sum",
			Args: []string{"-c", "photos.tar.gpg.sha1"},
		},
		{
			Tool: "gpg",
			Args: []string{"--decrypt", "--output", tarPath, "photos.tar.gpg"},
			Interactive: true,
		},
		{
			Tool: "tar",
			Args: []string{"-x", "-f", tarPath, "-C", "restored"},
		},
	}

	if diff := cmp.Diff(want, runner.invocations); diff != "" {
		t.Errorf("invocation sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackRemovesIntermediateTar(t *testing.T) {
	p, _, req := unpackFixture(t)

	if err := p.Unpack(context.Background(), req); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	if _, err := os.Stat(req.Artifacts.IntermediateTarPath(req.TargetDir)); !os.IsNotExist(err) {
		t.Error("intermediate decrypted tar should be removed after extraction")
	}
}

func TestUnpackChecksumMismatchAbortsBeforeTargetCreation(t *testing.T) {
	p, runner, req := unpackFixture(t)

	runner.onCapture = func(exttool.Invocation) *exttool.Result {
		return &exttool.Result{ExitCode: 1, ErrOutput: "photos.tar.gpg: FAILED\n"}
	}

	err := p.Unpack(context.Background(), req)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("Unpack() error = %v, want ErrChecksumMismatch", err)
	}

	var mismatch *ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Unpack() error type = %T, want *ChecksumMismatchError reachable", err)
	}
	if mismatch.Detail == "" {
		t.Error("mismatch error should carry the checksum tool's diagnostic output")
	}

	// The target directory must not exist after an integrity failure.
	if _, statErr := os.Stat(req.TargetDir); !os.IsNotExist(statErr) {
		t.Error("target directory must not be created when verification fails")
	}

	for _, inv := range runner.invocations {
		if inv.Tool == p.tools.Encryptor || inv.Tool == p.tools.Archiver {
			t.Errorf("tool %s ran after verification failed", inv.Tool)
		}
	}
}

func TestUnpackMissingSidecarIsNonFatal(t *testing.T) {
	p, runner, req := unpackFixture(t)

	if err := os.Remove(req.Artifacts.ChecksumPath()); err != nil {
		t.Fatal(err)
	}

	if err := p.Unpack(context.Background(), req); err != nil {
		t.Fatalf("Unpack() without sidecar error = %v, want success with warning", err)
	}

	// Verification is skipped entirely: the checksum tool never runs.
	for _, inv := range runner.invocations {
		if inv.Tool == p.tools.Checksum {
			t.Error("checksum tool should not run when the sidecar is absent")
		}
	}
}

func TestUnpackDirCreateFailure(t *testing.T) {
	p, _, req := unpackFixture(t)

	// Occupy the target path with a file so Mkdir fails.
	if err := os.WriteFile(req.TargetDir, []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := p.Unpack(context.Background(), req)
	if !errors.Is(err, ErrDirCreate) {
		t.Fatalf("Unpack() error = %v, want ErrDirCreate", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Unpack() error = %v, want *StepError wrapper", err)
	}
	if stepErr.Step != "create target directory" {
		t.Errorf("failed step = %q, want %q", stepErr.Step, "create target directory")
	}
}
