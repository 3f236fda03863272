// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package discovery turns command-line seed paths into the list of
// compile units for a build.
//
// Each seed is resolved against the source root. What happens next
// depends on what the seed names:
//
//   - A regular file is included when its name ends with the source
//     extension. It gets the initial package prefix, whatever
//     directory it sits in.
//   - A directory is traversed only in recursive mode. The seed
//     directory itself adds nothing to the package prefix; every
//     subdirectory below it appends its name as a dotted segment, so
//     "src/foo/bar/x.lua" seeded as "src" with prefix "app" becomes
//     package "app.foo.bar". Without recursion a directory seed
//     contributes nothing and is not an error.
//   - A path that does not exist is skipped. Discovery is best effort;
//     only an entirely empty result is an error ([ErrNoSources]).
//
// Traversal is a pure recursive function: each directory returns the
// units found beneath it and its caller appends them. There is no
// shared accumulator, so [Collect] is safe to call concurrently.
//
// Order is deterministic: seeds in the order given, directory entries
// in lexical order (os.ReadDir sorts by name). Directories reached
// again through a symlink cycle are skipped.
package discovery
