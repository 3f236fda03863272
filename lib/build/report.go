// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"time"

	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/unit"
	"github.com/bureau-foundation/chunkc/lib/verify"
)

// Report summarizes a pipeline run.
type Report struct {
	// Units is the number of units handed to Run.
	Units int

	// Compiled counts units whose compilation succeeded.
	Compiled int

	// Skipped counts units never started because the context was
	// cancelled.
	Skipped int

	ArtifactsWritten int
	BytesWritten     int64
	ArtifactsLoaded  int

	CompileFailures []*compiler.CompileError
	WriteFailures   []*output.WriteError
	LoadFailures    []*verify.LoadError

	// Collisions lists chunk names claimed by more than one unit.
	Collisions []unit.Collision

	Duration time.Duration
}

// Failures returns the total number of unit and artifact failures.
// Collisions and skipped units are not failures.
func (r *Report) Failures() int {
	return len(r.CompileFailures) + len(r.WriteFailures) + len(r.LoadFailures)
}

// Clean reports whether the run had no failures, no collisions, and
// no skipped units.
func (r *Report) Clean() bool {
	return r.Failures() == 0 && len(r.Collisions) == 0 && r.Skipped == 0
}
