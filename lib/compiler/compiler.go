// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"

	"github.com/bureau-foundation/chunkc/lib/environment"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

// Request is everything a compiler receives for one unit.
type Request struct {
	// Source is the file content. When Text is true it is UTF-8 text
	// decoded from the configured encoding; otherwise it is the raw
	// file bytes, which may be a precompiled binary chunk.
	Source []byte
	Text   bool

	// ChunkName is the identifier of the top-level artifact.
	ChunkName string

	// SourcePath is the slash-separated name used in debug info and
	// compiler messages.
	SourcePath string

	// Environment is the shared, read-only target runtime.
	Environment *environment.Environment

	// GenerateMain asks for an additional entry-point artifact.
	GenerateMain bool
}

// Compiler turns one source file into a set of artifacts. A non-nil
// error means the unit produced nothing usable; partial sets are not
// returned. Implementations must be safe for concurrent use when the
// build runs with more than one job.
type Compiler interface {
	CompileAll(ctx context.Context, request Request) (unit.ArtifactSet, error)
}

// ErrEmptyResult is returned (inside a CompileError) when a compiler
// reports success but produces no artifacts.
var ErrEmptyResult = errors.New("compiler produced no artifacts")
