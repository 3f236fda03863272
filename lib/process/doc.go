// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for chunkc.
//
// [Exit] centralizes the only raw stderr write that happens outside
// the structured logger and the CLI's own output: reporting the error
// returned from run() and choosing the process exit status. Library
// packages never call os.Exit.
package process
