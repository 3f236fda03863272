// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for chunkc packages.
//
// Most chunkc tests build a small source tree on disk, run one stage
// of the pipeline, and inspect the destination tree. [WriteFiles]
// materializes a tree from a map of slash-separated paths to contents,
// [ReadFile] reads one file back, and [ListFiles] returns every
// regular file under a root as sorted slash-separated relative paths,
// which makes "exactly these artifacts were written" assertions a
// single comparison.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no chunkc-internal dependencies.
package testutil
