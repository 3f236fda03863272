// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package verify checks freshly compiled artifacts by loading them in
// memory, before anything depends on the copies written to disk.
//
// Loading goes through three pieces:
//
//   - A [Platform] knows how to turn artifact bytes into an
//     [Instance]. [ChunkPlatform] instantiates chunkfile containers:
//     it decodes and digest-checks the container and resolves every
//     identifier the header requires.
//
//   - An [IsolatedLoader] is the [Resolver] a platform sees while
//     instantiating. Names resolve from the in-memory artifact set
//     first, then from a fallback resolver, and never from the
//     filesystem: a stale artifact from an earlier build cannot make
//     a broken one look good. Each identifier is instantiated at most
//     once per loader and dependency cycles are reported as errors.
//
//   - A [RuntimeResolver] is the usual fallback. It serves the
//     libraries the target environment preinstalls and caches their
//     instances in an LRU shared by every loader in the build.
//
// [Verify] loads every artifact of a set in identifier order and
// returns one [Result] per artifact. A failure is a [LoadError] in
// that artifact's result; the remaining artifacts are still tried.
package verify
