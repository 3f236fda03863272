// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package unit

import "slices"

// Collision records a chunk name that more than one source file
// resolved to.
type Collision struct {
	ChunkName string
	// SourceFiles lists the colliding files in discovery order. The
	// last one's artifacts are the ones left on disk.
	SourceFiles []string
}

// DetectCollisions returns every chunk name shared by two or more
// distinct source files in units, in order of first appearance. The
// same file discovered twice (seeded both directly and through its
// directory) is not a collision.
func DetectCollisions(units []CompileUnit) []Collision {
	sources := make(map[string][]string)
	var order []string
	for _, compileUnit := range units {
		existing, seen := sources[compileUnit.ChunkName]
		if !seen {
			order = append(order, compileUnit.ChunkName)
		}
		if !slices.Contains(existing, compileUnit.SourceFile) {
			sources[compileUnit.ChunkName] = append(existing, compileUnit.SourceFile)
		}
	}

	var collisions []Collision
	for _, chunkName := range order {
		if files := sources[chunkName]; len(files) > 1 {
			collisions = append(collisions, Collision{ChunkName: chunkName, SourceFiles: files})
		}
	}
	return collisions
}
