// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"github.com/bureau-foundation/chunkc/lib/output"
	"github.com/bureau-foundation/chunkc/lib/unit"
	"github.com/bureau-foundation/chunkc/lib/verify"
)

// Reporter receives progress events. Calls are serialized and arrive
// in discovery order: UnitStarted for a unit, then its ArtifactWritten
// events, then its ArtifactVerified events, before the next unit.
type Reporter interface {
	UnitStarted(compileUnit unit.CompileUnit)
	ArtifactWritten(compileUnit unit.CompileUnit, written output.Written)
	ArtifactVerified(compileUnit unit.CompileUnit, result verify.Result)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) UnitStarted(unit.CompileUnit)                     {}
func (NopReporter) ArtifactWritten(unit.CompileUnit, output.Written) {}
func (NopReporter) ArtifactVerified(unit.CompileUnit, verify.Result) {}
