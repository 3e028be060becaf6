// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ovk/serp/pkg/types"
)

var (
	// ErrInvalidToolBinary is the sentinel error wrapped by InvalidToolBinaryError.
	ErrInvalidToolBinary = errors.New("invalid tool binary")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the immutable application configuration. It is populated once
	// by the loader and passed by reference into the CLI and pipeline layers;
	// nothing mutates it afterwards.
	Config struct {
		// Tools overrides the binary name or path of each external collaborator.
		Tools ToolsConfig `mapstructure:"tools"`
		// Redundancy is the default parity redundancy percentage used when
		// the --redundancy flag is not given.
		Redundancy int `mapstructure:"redundancy"`
		// UI holds operator-facing output defaults.
		UI UIConfig `mapstructure:"ui"`
	}

	// ToolsConfig names the binaries of the four external capabilities.
	// Values may be bare names (resolved on PATH) or explicit paths.
	ToolsConfig struct {
		// Archiver packs a directory tree to a single stream and reverses it.
		Archiver string `mapstructure:"archiver"`
		// Encryptor performs password-based symmetric encryption with
		// compression, prompting for the passphrase itself.
		Encryptor string `mapstructure:"encryptor"`
		// Checksum computes and verifies bundle checksums.
		Checksum string `mapstructure:"checksum"`
		// Parity generates parity recovery data at a redundancy ratio.
		Parity string `mapstructure:"parity"`
	}

	// UIConfig holds operator-facing output settings.
	UIConfig struct {
		// Verbose enables verbose diagnostics by default (the --verbose flag
		// still wins when given).
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidToolBinaryError is returned when a configured tool binary value
	// is empty or whitespace-only.
	InvalidToolBinaryError struct {
		Key   string
		Value string
	}

	// InvalidConfigError aggregates all validation failures found in one
	// Config value.
	InvalidConfigError struct {
		Errs []error
	}
)

// Error implements the error interface.
func (e *InvalidToolBinaryError) Error() string {
	return fmt.Sprintf("invalid tool binary for %s: value must not be empty (got %q)", e.Key, e.Value)
}

// Unwrap returns ErrInvalidToolBinary for errors.Is() compatibility.
func (e *InvalidToolBinaryError) Unwrap() error { return ErrInvalidToolBinary }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the built-in configuration: the conventional binary
// names of the four external tools, 10% redundancy, quiet output.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Archiver:  "tar",
			Encryptor: "gpg",
			Checksum:  "sha1sum",
			Parity:    "par2",
		},
		Redundancy: 10,
		UI:         UIConfig{Verbose: false},
	}
}

// Validate checks the Config and aggregates every violation.
func (c *Config) Validate() error {
	var errs []error

	for _, tool := range []struct {
		key   string
		value string
	}{
		{"tools.archiver", c.Tools.Archiver},
		{"tools.encryptor", c.Tools.Encryptor},
		{"tools.checksum", c.Tools.Checksum},
		{"tools.parity", c.Tools.Parity},
	} {
		if strings.TrimSpace(tool.value) == "" {
			errs = append(errs, &InvalidToolBinaryError{Key: tool.key, Value: tool.value})
		}
	}

	if err := types.RedundancyPercent(c.Redundancy).Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{Errs: errs}
	}

	return nil
}
