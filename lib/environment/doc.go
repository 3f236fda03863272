// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package environment describes the runtime a compiled chunk will be
// loaded into: the target platform name, the language version, and
// the set of libraries that exist before any chunk runs.
//
// The compiler consults the environment to decide which global names
// are predefined; the verification loader uses it as the ambient
// fallback when an artifact references a name that is not part of the
// artifact set being verified.
//
// An [Environment] is built once at startup and never modified. Every
// method is a read, so one value is shared by all compile workers
// without locking. [Environment.WithLibraries] returns a new value
// rather than mutating the receiver.
package environment
