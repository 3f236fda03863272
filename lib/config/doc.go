// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads chunkc build configuration.
//
// Configuration comes from at most one file, named by the --config
// flag (via [LoadFile]) or the CHUNKC_CONFIG environment variable (via
// [Load]). Without either, [Default] applies. There is no automatic
// file search, so a build never picks up settings from a file nobody
// asked for.
//
// Files ending in .json or .jsonc are parsed as JSON with comments
// and trailing commas allowed; everything else is YAML. Unknown keys
// are errors in both formats, so a misspelled option fails loudly
// instead of silently keeping its default.
//
// The file has three sections:
//
//   - build: the discovery and output settings, mirroring the
//     command-line flags (source_root, dest_root, package, recursive,
//     encoding, generate_main, verbose, verify_load,
//     source_extension, artifact_extension, jobs, strict)
//   - compiler: which compiler to run (kind "bundle" or "exec"), the
//     exec command and its timeout, and bundle compression
//   - runtime: the target platform, language version, and libraries
//     preinstalled in addition to the standard ones
//
// After loading, ${HOME}, ${CHUNKC_SOURCE_ROOT}, ${VAR}, and
// ${VAR:-default} are expanded in path fields and in the exec
// command. Command-line flags override file values; that merge
// happens in the command, which knows which flags were set.
package config
