// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/pkg/bundle"
)

// UnpackRequest captures all unpack inputs as an immutable value.
type UnpackRequest struct {
	// TargetDir is the directory to create and extract into. It must not
	// exist; unpack never overwrites.
	TargetDir string
	// Artifacts derives the bundle and sidecar paths from the stem.
	Artifacts bundle.Artifacts
}

// Unpack runs the unpack pipeline: verify, create target, decrypt, extract.
// Checksum verification is best-effort when the sidecar is absent, but a
// mismatch is fatal and aborts before the target directory is created.
func (p *Pipeline) Unpack(ctx context.Context, req UnpackRequest) error {
	a := req.Artifacts
	tarPath := a.IntermediateTarPath(req.TargetDir)

	steps := []step{
		{
			name: "verify checksum",
			run: func(ctx context.Context) error {
				return p.verifyChecksum(ctx, a)
			},
		},
		{
			name: "create target directory",
			run: func(context.Context) error {
				if err := os.Mkdir(req.TargetDir, 0o755); err != nil {
					return &DirCreateError{Dir: req.TargetDir, Err: err}
				}
				return nil
			},
		},
		{
			name: "decrypt",
			run: func(ctx context.Context) error {
				// The decrypted tar lands inside the freshly created target
				// directory; extraction below runs relative to that same
				// directory.
				return p.runTool(ctx, exttool.Invocation{
					Tool: p.tools.Encryptor,
					Args: []string{
						"--decrypt",
						"--output", tarPath,
						a.BundlePath(),
					},
					Interactive: true,
				})
			},
		},
		{
			name: "extract",
			run: func(ctx context.Context) error {
				return p.runTool(ctx, exttool.Invocation{
					Tool: p.tools.Archiver,
					Args: []string{"-x", "-f", tarPath, "-C", req.TargetDir},
				})
			},
		},
		{
			name: "remove intermediate archive",
			run: func(context.Context) error {
				if err := os.Remove(tarPath); err != nil {
					return fmt.Errorf("failed to remove %s: %w", tarPath, err)
				}
				return nil
			},
		},
	}

	return p.runSteps(ctx, steps)
}

// verifyChecksum checks the bundle against its checksum sidecar. A missing
// sidecar downgrades to a warning (trust-but-warn); a mismatch is fatal.
func (p *Pipeline) verifyChecksum(ctx context.Context, a bundle.Artifacts) error {
	if !a.HasChecksumSidecar() {
		p.logger.Warn("checksum sidecar not found, skipping verification",
			"sidecar", a.ChecksumPath())
		return nil
	}

	res := p.runner.RunCapture(ctx, exttool.Invocation{
		Tool: p.tools.Checksum,
		Args: []string{"-c", a.ChecksumPath()},
	})
	if res.Error != nil {
		return res.Error
	}
	if !res.ExitCode.IsSuccess() {
		return &ChecksumMismatchError{
			Bundle:  a.BundlePath(),
			Sidecar: a.ChecksumPath(),
			Detail:  strings.TrimSpace(res.Output + res.ErrOutput),
		}
	}

	return nil
}
