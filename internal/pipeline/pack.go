// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/pkg/bundle"
	"github.com/ovk/serp/pkg/types"
)

// PackRequest captures all pack inputs as an immutable value.
type PackRequest struct {
	// TargetDir is the directory whose contents are bundled.
	TargetDir string
	// Artifacts derives every output path from the bundle stem.
	Artifacts bundle.Artifacts
	// Redundancy is the parity redundancy percentage.
	Redundancy types.RedundancyPercent
	// DeleteSource removes the target directory after the full pipeline
	// succeeds (best-effort).
	DeleteSource bool
}

// Pack runs the pack pipeline: archive, encrypt, checksum, parity. The
// parity tool is probed first so the run aborts before producing any
// artifact when the environment cannot finish the pipeline.
func (p *Pipeline) Pack(ctx context.Context, req PackRequest) error {
	if err := exttool.CheckTools(p.tools.Parity); err != nil {
		return err
	}

	a := req.Artifacts

	steps := []step{
		{
			name: "archive",
			run: func(ctx context.Context) error {
				// -C <dir> . archives the directory's contents, not the
				// directory entry itself, so relative paths inside the
				// bundle are rooted at the target.
				return p.runTool(ctx, exttool.Invocation{
					Tool: p.tools.Archiver,
					Args: []string{"-c", "-f", a.TarName(), "-C", req.TargetDir, "."},
				})
			},
		},
		{
			name: "encrypt",
			run: func(ctx context.Context) error {
				// The passphrase is prompted by the encryptor itself; it is
				// never passed on the command line, so it cannot leak via
				// process listings.
				return p.runTool(ctx, exttool.Invocation{
					Tool: p.tools.Encryptor,
					Args: []string{
						"--symmetric",
						"--cipher-algo", "AES256",
						"--output", a.BundlePath(),
						a.TarName(),
					},
					Interactive: true,
				})
			},
		},
		{
			name: "remove intermediate archive",
			run: func(context.Context) error {
				// Deleting right after encryption keeps the
				// plaintext-on-disk window as small as possible.
				if err := os.Remove(a.TarName()); err != nil {
					return fmt.Errorf("failed to remove %s: %w", a.TarName(), err)
				}
				return nil
			},
		},
		{
			name: "checksum",
			run: func(ctx context.Context) error {
				res := p.runner.RunCapture(ctx, exttool.Invocation{
					Tool: p.tools.Checksum,
					Args: []string{a.BundlePath()},
				})
				if res.Error != nil {
					return res.Error
				}
				if !res.ExitCode.IsSuccess() {
					return fmt.Errorf("%s exited with code %s", p.tools.Checksum, res.ExitCode)
				}
				if err := os.WriteFile(a.ChecksumPath(), []byte(res.Output), 0o644); err != nil {
					return fmt.Errorf("failed to write checksum sidecar %s: %w", a.ChecksumPath(), err)
				}
				return nil
			},
		},
		{
			name: "parity",
			run: func(ctx context.Context) error {
				// -n1 produces a single recovery set with one volume file.
				return p.runTool(ctx, exttool.Invocation{
					Tool: p.tools.Parity,
					Args: []string{
						"create",
						fmt.Sprintf("-r%s", req.Redundancy),
						"-n1",
						a.ParityPath(),
						a.BundlePath(),
					},
				})
			},
		},
	}

	if err := p.runSteps(ctx, steps); err != nil {
		return err
	}

	if req.DeleteSource {
		p.deleteSource(req.TargetDir)
	}

	return nil
}

// deleteSource removes the packed directory after a fully successful run.
// Failure here is logged as a warning and never escalated: the bundle and
// its sidecars are already complete.
func (p *Pipeline) deleteSource(dir string) {
	p.logger.Debug("removing source directory", "dir", dir)
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn("failed to remove source directory", "dir", dir, "error", err)
	}
}
