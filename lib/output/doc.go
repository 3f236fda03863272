// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package output persists compiled artifact sets under the
// destination root.
//
// Each artifact identifier is a slash-separated relative path without
// extension. [Writer.Write] maps it to DestRoot/<identifier><ext>,
// creating intermediate directories on demand, so identifier "bar"
// becomes DestRoot/bar.luac and "pkg/bar$1" becomes
// DestRoot/pkg/bar$1.luac. Identifiers that are absolute or contain
// ".." segments are rejected before any I/O; they would write outside
// the destination tree.
//
// Writes are not atomic and existing files are overwritten. A failing
// artifact does not prevent the others in the set from being written;
// the returned error joins one [WriteError] per failure.
package output
