// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovk/serp/internal/config"
	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/internal/issue"
	"github.com/ovk/serp/internal/pipeline"
	"github.com/ovk/serp/pkg/bundle"
	"github.com/ovk/serp/pkg/types"
)

// newUnpackCommand creates the `serp unpack` command.
func newUnpackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <directory>",
		Short: "Restore a bundle into a freshly created directory",
		Long: `Restore an encrypted bundle into a freshly created directory.

If the checksum sidecar is present the bundle is verified first; a missing
sidecar is only a warning. The target directory must not exist: unpack
never overwrites.

Examples:
  serp unpack photos               Restore photos.tar.gpg into ./photos
  serp unpack --name backup data   Restore backup.tar.gpg into ./data`,
		Args: cobra.ExactArgs(1),
		RunE: runUnpack,
	}

	cmd.Flags().StringP("name", "n", "", "bundle basename (default: target directory name)")

	return cmd
}

func runUnpack(cmd *cobra.Command, args []string) error {
	cfg, logger, verbose := commandSetup(cmd)
	targetDir := args[0]

	name, _ := cmd.Flags().GetString("name")
	stem := types.BundleName(name)
	if name == "" {
		stem = bundle.StemFromDir(targetDir)
	}
	if err := stem.Validate(); err != nil {
		return newExitError(types.ExitUsage, err)
	}

	a := bundle.New(stem)

	// Fail fast before any side effect: the bundle must exist and the
	// target directory must not.
	if err := a.CheckUnpackTarget(targetDir); err != nil {
		return newExitError(types.ExitBadPath, err)
	}

	if err := exttool.CheckTools(cfg.Tools.Archiver, cfg.Tools.Encryptor, cfg.Tools.Checksum); err != nil {
		return newExitError(types.ExitMissingTool, err)
	}

	req := pipeline.UnpackRequest{TargetDir: targetDir, Artifacts: a}

	p := pipeline.New(exttool.NewRunner(), toolsFromConfig(cfg), logger)
	if err := p.Unpack(cmd.Context(), req); err != nil {
		var mismatch *pipeline.ChecksumMismatchError
		if errors.As(err, &mismatch) {
			renderChecksumMismatch(cmd, cfg, a, mismatch, verbose)
		}
		return newExitError(exitCodeFor(err), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(),
		SuccessStyle.Render("Unpacked ")+CmdStyle.Render(a.BundlePath())+
			SuccessStyle.Render(" into ")+CmdStyle.Render(targetDir))

	return nil
}

// renderChecksumMismatch prints the recovery guidance for a failed bundle
// verification: the parity tool can locate and repair the damage, after
// which unpack can simply be re-run.
func renderChecksumMismatch(cmd *cobra.Command, cfg *config.Config, a bundle.Artifacts, mismatch *pipeline.ChecksumMismatchError, verbose bool) {
	guidance := issue.NewErrorContext().
		WithOperation("verify bundle checksum").
		WithResource(mismatch.Bundle).
		WithSuggestion(fmt.Sprintf("Run '%s verify %s' to locate the damage", cfg.Tools.Parity, a.ParityPath())).
		WithSuggestion(fmt.Sprintf("Run '%s repair %s' to reconstruct the bundle", cfg.Tools.Parity, a.ParityPath())).
		WithSuggestion("Re-run unpack once the repair succeeds").
		Wrap(errors.New(mismatch.Detail)).
		Build()

	fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+guidance.Format(verbose))
}
