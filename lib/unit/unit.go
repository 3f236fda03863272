// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package unit

import "sort"

// CompileUnit is one source file scheduled for compilation together
// with every name derived for it. Construct with [Resolve].
type CompileUnit struct {
	// SourceFile is the absolute host path of the source file.
	SourceFile string

	// SourcePath is the file's name as reported to the compiler
	// (debug info, error messages): the package path plus the base
	// name, slash-separated.
	SourcePath string

	// PackagePrefix is the dotted namespace the file belongs to.
	// Empty when the file has no package.
	PackagePrefix string

	// ChunkName is the canonical identifier of the top-level artifact:
	// the package path plus the file's stem. Never has an extension.
	ChunkName string

	// OutputDir is the host directory the unit's top-level artifact
	// lands in: the destination root plus the package path.
	OutputDir string
}

// ArtifactSet maps artifact identifiers to the compiled bytes the
// compiler produced for them. One source file may yield several
// artifacts (nested functions compiled separately, an entry point).
type ArtifactSet map[string][]byte

// Identifiers returns the artifact identifiers in lexical order.
// Every stage that walks a set uses this order so that output, logs,
// and verification results are reproducible.
func (set ArtifactSet) Identifiers() []string {
	identifiers := make([]string, 0, len(set))
	for identifier := range set {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)
	return identifiers
}

// Size returns the total number of artifact bytes in the set.
func (set ArtifactSet) Size() int {
	total := 0
	for _, data := range set {
		total += len(data)
	}
	return total
}
