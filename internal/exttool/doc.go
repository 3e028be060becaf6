// SPDX-License-Identifier: MPL-2.0

// Package exttool invokes the external collaborators (archiver, encryptor,
// checksum tool, parity generator) as child processes and resolves their
// availability on PATH.
//
// Every invocation is argv-style: arguments are passed directly to the child,
// never through a shell, so operator-supplied paths are not subject to shell
// interpolation. Children inherit a context so interrupt delivery cancels the
// blocking child process.
package exttool
