// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"fmt"

	"github.com/bureau-foundation/chunkc/lib/unit"
)

// CompileError reports a unit that could not be compiled: the source
// could not be read or decoded, the compiler rejected it, or the
// compiler returned nothing. The unit is skipped; other units are
// unaffected.
type CompileError struct {
	Unit unit.CompileUnit
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s (%s): %v", e.Unit.ChunkName, e.Unit.SourcePath, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
