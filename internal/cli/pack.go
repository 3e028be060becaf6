// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovk/serp/internal/exttool"
	"github.com/ovk/serp/internal/pipeline"
	"github.com/ovk/serp/pkg/bundle"
	"github.com/ovk/serp/pkg/types"
)

// newPackCommand creates the `serp pack` command.
func newPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <directory>",
		Short: "Bundle a directory into an encrypted, repairable archive",
		Long: `Bundle a directory's contents into an encrypted archive with checksum
and parity sidecars.

The pipeline runs tar, gpg, sha1sum and par2 in sequence, each step gated
on the previous one succeeding. gpg prompts for the passphrase
interactively. Artifacts are written to the current working directory.

Examples:
  serp pack photos                 Pack ./photos as photos.tar.gpg
  serp pack --name backup photos   Override the bundle basename
  serp pack --redundancy 20 photos Request 20% parity data
  serp pack --delete photos        Remove ./photos after success`,
		Args: cobra.ExactArgs(1),
		RunE: runPack,
	}

	cmd.Flags().StringP("name", "n", "", "bundle basename (default: target directory name)")
	cmd.Flags().IntP("redundancy", "r", -1, "parity redundancy percentage (default from config, 10)")
	cmd.Flags().BoolP("delete", "d", false, "delete the source directory after a successful pack")

	return cmd
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, logger, _ := commandSetup(cmd)
	targetDir := args[0]

	name, _ := cmd.Flags().GetString("name")
	redundancyFlag, _ := cmd.Flags().GetInt("redundancy")
	deleteSource, _ := cmd.Flags().GetBool("delete")

	stem := types.BundleName(name)
	if name == "" {
		stem = bundle.StemFromDir(targetDir)
	}
	if err := stem.Validate(); err != nil {
		return newExitError(types.ExitUsage, err)
	}

	redundancy := types.RedundancyPercent(cfg.Redundancy)
	if cmd.Flags().Changed("redundancy") {
		redundancy = types.RedundancyPercent(redundancyFlag)
	}
	if err := redundancy.Validate(); err != nil {
		return newExitError(types.ExitUsage, err)
	}

	// Path validation runs before any external tool is touched.
	if err := bundle.CheckPackTarget(targetDir); err != nil {
		return newExitError(types.ExitBadPath, err)
	}

	// The three always-required tools are resolved up front; par2 is probed
	// lazily inside the pack pipeline.
	if err := exttool.CheckTools(cfg.Tools.Archiver, cfg.Tools.Encryptor, cfg.Tools.Checksum); err != nil {
		return newExitError(types.ExitMissingTool, err)
	}

	req := pipeline.PackRequest{
		TargetDir:    targetDir,
		Artifacts:    bundle.New(stem),
		Redundancy:   redundancy,
		DeleteSource: deleteSource,
	}

	p := pipeline.New(exttool.NewRunner(), toolsFromConfig(cfg), logger)
	if err := p.Pack(cmd.Context(), req); err != nil {
		return newExitError(exitCodeFor(err), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(),
		SuccessStyle.Render("Packed ")+CmdStyle.Render(req.Artifacts.BundlePath())+
			SuccessStyle.Render(" with checksum and parity sidecars"))

	return nil
}
