// SPDX-License-Identifier: MPL-2.0

// Package pipeline implements the pack and unpack pipelines as linear
// fail-fast chains of guarded external-tool steps.
//
// Each step either succeeds or aborts the whole run; no step is retried or
// rolled back, and partial artifacts from failed runs are left in place for
// the operator to inspect. Failures surface the originating step's identity
// through StepError. The single deliberate exception is the post-success
// deletion of the pack source directory, which is best-effort and never
// escalated to a failure.
package pipeline
