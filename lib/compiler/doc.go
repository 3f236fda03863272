// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compiler defines the contract between chunkc and the
// compiler that turns one source file into artifacts, and the
// [Driver] that feeds compile units through it.
//
// A [Compiler] sees only a [Request]: the source bytes (raw, or
// decoded to UTF-8 text when an encoding is configured), the chunk
// name and source path derived for the unit, the target
// [environment.Environment], and whether an entry-point artifact is
// wanted. It returns an [unit.ArtifactSet] and never touches the
// filesystem. Language semantics live entirely behind this interface.
//
// Two implementations ship in subpackages: bundle, the built-in
// in-process compiler that packages chunks into chunkfile containers,
// and execplugin, which runs an external command per unit.
//
// The [Driver] owns the per-unit steps around the compiler: reading
// the source file, applying the configured text encoding, and wrapping
// every failure in a [CompileError] that names the unit. It writes
// nothing; persisting the artifact set is the output package's job.
package compiler
