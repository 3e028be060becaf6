// SPDX-License-Identifier: MPL-2.0

// Package cli contains all CLI commands for serp.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ovk/serp/internal/config"
	"github.com/ovk/serp/internal/pipeline"
	"github.com/ovk/serp/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the base command with both pipeline subcommands
// attached.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "serp",
		Short: "Create and restore encrypted, repairable archive bundles",
		Long: TitleStyle.Render("serp") + SubtitleStyle.Render(" - encrypted, repairable archive bundles") + `

serp turns a directory tree into a single encrypted bundle with checksum
and parity sidecars, by driving four external tools in sequence: an
archiver (tar), a symmetric encryptor (gpg), a checksum tool (sha1sum),
and a parity generator (par2). The encryption passphrase is prompted by
gpg itself and never appears on a command line.

Artifacts share the bundle name stem and are written to the current
working directory:

  <name>.tar.gpg        the encrypted bundle
  <name>.tar.gpg.sha1   checksum sidecar
  <name>.tar.gpg.par2   parity sidecar (plus volume files)

` + SubtitleStyle.Render("Examples:") + `
  serp pack photos             Bundle ./photos into photos.tar.gpg
  serp pack -r 20 -d photos    20% parity, delete ./photos on success
  serp unpack photos           Restore the bundle into ./photos`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.config/serp/config.toml)")

	rootCmd.AddCommand(newPackCommand())
	rootCmd.AddCommand(newUnpackCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and terminates the process with the exit
// code of the failure class. This is called by main.main().
func Execute() {
	// fang supplies styled help/version and a signal-notified context, so
	// interrupts cancel the blocking child process.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		// Anything not classified by a handler is a command-line problem
		// (unknown flag, bad arity) surfaced by cobra itself.
		os.Exit(int(types.ExitUsage))
	}
}

// commandSetup resolves per-invocation plumbing shared by pack and unpack:
// configuration (with warn-and-default fallback), effective verbosity, and
// the stderr logger.
func commandSetup(cmd *cobra.Command) (*config.Config, *log.Logger, bool) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		// Stay operational on defaults, but surface the problem.
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+err.Error())
		cfg = config.DefaultConfig()
	}

	if !verbose {
		verbose = cfg.UI.Verbose
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return cfg, logger, verbose
}

// toolsFromConfig maps configured binary overrides onto the pipeline's tool
// set.
func toolsFromConfig(cfg *config.Config) pipeline.Tools {
	return pipeline.Tools{
		Archiver:  cfg.Tools.Archiver,
		Encryptor: cfg.Tools.Encryptor,
		Checksum:  cfg.Tools.Checksum,
		Parity:    cfg.Tools.Parity,
	}
}
