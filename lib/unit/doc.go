// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package unit defines the values that flow through a chunkc build and
// the naming rules that tie them to the source and destination trees.
//
// A [CompileUnit] is one source file scheduled for compilation. Its
// names are derived by [Resolve] from three inputs only: the source
// file's path, the dotted package prefix the file was discovered
// under, and the destination root. Resolve does no I/O, so deriving
// the names twice from the same inputs always produces the same unit.
//
// Naming rules, for prefix "pkg.sub" and source file ".../bar.lua":
//
//	ChunkName  = "pkg/sub/bar"         (prefix path + stem, no extension)
//	SourcePath = "pkg/sub/bar.lua"     (prefix path + base name)
//	OutputDir  = <dest>/pkg/sub
//
// Without a prefix the leading path segment is omitted entirely:
// ChunkName "bar", SourcePath "bar.lua", OutputDir <dest>. ChunkName
// and SourcePath always use forward slashes regardless of the host
// path separator.
//
// Two different source files can resolve to the same chunk name (for
// example "a/x.lua" seeded explicitly and "x.lua" at the root, both
// without a prefix). The later compile would overwrite the earlier
// artifacts. [DetectCollisions] finds those cases so the driver can
// report them.
//
// An [ArtifactSet] is what the compiler produces for one unit: artifact
// identifier to bytes. Identifiers use the same slash-separated form as
// chunk names ("pkg/bar", "pkg/bar$1").
package unit
