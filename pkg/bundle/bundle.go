// SPDX-License-Identifier: MPL-2.0

// Package bundle defines the on-disk artifact contract for serp bundles.
//
// A bundle is a single encrypted, compressed archive file produced from a
// target directory. Sidecar files (checksum and parity) reference the bundle
// by a shared basename stem; nothing ties the artifacts together beyond this
// naming convention, so all suffix knowledge lives here.
//
// Artifact layout for stem <name>, always in the current working directory:
//   - <name>.tar.gpg        encrypted compressed archive (the bundle)
//   - <name>.tar.gpg.sha1   single-line checksum sidecar
//   - <name>.tar.gpg.par2   parity index sidecar (plus par2 volume files)
package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ovk/serp/pkg/types"
)

const (
	// BundleSuffix is the suffix of the encrypted archive file.
	BundleSuffix = ".tar.gpg"
	// ChecksumSuffix is the suffix of the checksum sidecar.
	ChecksumSuffix = ".tar.gpg.sha1"
	// ParitySuffix is the suffix of the parity index sidecar.
	ParitySuffix = ".tar.gpg.par2"

	// tarSuffix is the suffix of the intermediate plaintext archive. The
	// intermediate file exists only between pipeline steps.
	tarSuffix = ".tar"
)

var (
	// ErrTargetMissing is returned when the pack target directory does not exist.
	ErrTargetMissing = errors.New("target directory does not exist")
	// ErrTargetNotDirectory is returned when the pack target exists but is not a directory.
	ErrTargetNotDirectory = errors.New("target is not a directory")
	// ErrTargetEmpty is returned when the pack target directory has no entries.
	ErrTargetEmpty = errors.New("target directory is empty")
	// ErrTargetExists is returned when the unpack target directory already
	// exists. Unpack never overwrites.
	ErrTargetExists = errors.New("target directory already exists")
	// ErrBundleMissing is returned when the bundle file required by unpack
	// does not exist.
	ErrBundleMissing = errors.New("bundle file does not exist")
)

// Artifacts derives every artifact path for one bundle stem. It is an
// immutable value; construct it once during argument resolution and pass it
// into the pipeline.
type Artifacts struct {
	stem types.BundleName
}

// New creates an Artifacts value for the given stem.
func New(stem types.BundleName) Artifacts {
	return Artifacts{stem: stem}
}

// StemFromDir derives the default bundle stem from a target directory path
// (its final path element).
func StemFromDir(dir string) types.BundleName {
	return types.BundleName(filepath.Base(filepath.Clean(dir)))
}

// Stem returns the shared basename stem.
func (a Artifacts) Stem() types.BundleName { return a.stem }

// BundlePath returns the path of the encrypted archive file.
func (a Artifacts) BundlePath() string { return string(a.stem) + BundleSuffix }

// ChecksumPath returns the path of the checksum sidecar.
func (a Artifacts) ChecksumPath() string { return string(a.stem) + ChecksumSuffix }

// ParityPath returns the path of the parity index sidecar.
func (a Artifacts) ParityPath() string { return string(a.stem) + ParitySuffix }

// TarName returns the name of the intermediate plaintext archive.
func (a Artifacts) TarName() string { return string(a.stem) + tarSuffix }

// IntermediateTarPath returns the path of the intermediate decrypted archive
// used during unpack. It is placed inside the target directory so extraction
// can run relative to that same directory.
func (a Artifacts) IntermediateTarPath(targetDir string) string {
	return filepath.Join(targetDir, a.TarName())
}

// CheckPackTarget validates the pack target directory: it must exist, be a
// directory, and contain at least one entry. The returned errors wrap the
// package sentinels for programmatic classification.
func CheckPackTarget(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrTargetMissing, dir)
		}
		return fmt.Errorf("failed to stat target directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrTargetNotDirectory, dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open target directory %s: %w", dir, err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s", ErrTargetEmpty, dir)
		}
		return fmt.Errorf("failed to read target directory %s: %w", dir, err)
	}

	return nil
}

// CheckUnpackTarget validates unpack pre-conditions: the bundle file must
// exist and the target directory must not. Runs before any side effect, so a
// conflicting target is rejected without touching the filesystem.
func (a Artifacts) CheckUnpackTarget(dir string) error {
	if _, err := os.Stat(a.BundlePath()); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBundleMissing, a.BundlePath())
		}
		return fmt.Errorf("failed to stat bundle %s: %w", a.BundlePath(), err)
	}

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, dir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat target directory %s: %w", dir, err)
	}

	return nil
}

// HasChecksumSidecar reports whether the checksum sidecar exists. Checksum
// verification is best-effort on unpack: a missing sidecar downgrades to a
// warning instead of failing the run.
func (a Artifacts) HasChecksumSidecar() bool {
	_, err := os.Stat(a.ChecksumPath())
	return err == nil
}
