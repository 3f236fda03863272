// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Chunkc compiles a tree of Lua source files into chunk artifacts.
//
// Usage:
//
//	chunkc [flags] <file-or-dir>...
//
// Each argument is resolved against the source root (-s). Files ending
// in the source extension are compiled; directories are walked when
// -r is given, each subdirectory adding a segment to the package
// prefix (-p). Every compiled artifact is written to the destination
// root (-d) as <identifier>.luac, mirroring the package layout. With
// -l each artifact is also loaded in memory to check that it
// instantiates.
//
// A unit that fails to compile, write, or load is logged and skipped;
// the run still exits 0 unless --strict is given. No seeds or a bad
// flag exits 2; finding no source files or a configuration problem
// exits 1.
//
// Settings can also come from a YAML or JSONC file named by --config
// or CHUNKC_CONFIG. Flags given on the command line win over the file.
package main
