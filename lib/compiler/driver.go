// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding"

	"github.com/bureau-foundation/chunkc/lib/charset"
	"github.com/bureau-foundation/chunkc/lib/environment"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

// DriverOptions configures a Driver.
type DriverOptions struct {
	// Compiler does the actual compilation. Required.
	Compiler Compiler

	// Environment is passed to every request. Nil means
	// environment.Standard().
	Environment *environment.Environment

	// Encoding names the text encoding of source files. Empty means
	// sources are handed to the compiler as raw bytes.
	Encoding string

	// GenerateMain is copied into every request.
	GenerateMain bool

	Logger *slog.Logger
}

// Driver compiles units one at a time. It holds no per-unit state and
// is safe for concurrent use if its Compiler is.
type Driver struct {
	compiler     Compiler
	environment  *environment.Environment
	encoding     encoding.Encoding
	encodingErr  error
	generateMain bool
	logger       *slog.Logger
}

// NewDriver creates a Driver. The encoding name is resolved here; an
// unknown name does not fail construction but makes every Compile
// return a CompileError naming the bad encoding, the same containment
// any other per-unit failure gets.
func NewDriver(options DriverOptions) *Driver {
	driver := &Driver{
		compiler:     options.Compiler,
		environment:  options.Environment,
		generateMain: options.GenerateMain,
		logger:       options.Logger,
	}
	if driver.environment == nil {
		driver.environment = environment.Standard()
	}
	if driver.logger == nil {
		driver.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.Encoding != "" {
		driver.encoding, driver.encodingErr = charset.Lookup(options.Encoding)
	}
	return driver
}

// Compile reads the unit's source file and runs the compiler on it.
// Every failure is a *CompileError. The returned set is never empty
// when err is nil.
func (d *Driver) Compile(ctx context.Context, compileUnit unit.CompileUnit) (unit.ArtifactSet, error) {
	fail := func(err error) (unit.ArtifactSet, error) {
		return nil, &CompileError{Unit: compileUnit, Err: err}
	}

	if d.encodingErr != nil {
		return fail(d.encodingErr)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	source, err := os.ReadFile(compileUnit.SourceFile)
	if err != nil {
		return fail(fmt.Errorf("reading source: %w", err))
	}

	request := Request{
		Source:       source,
		ChunkName:    compileUnit.ChunkName,
		SourcePath:   compileUnit.SourcePath,
		Environment:  d.environment,
		GenerateMain: d.generateMain,
	}
	if d.encoding != nil {
		request.Source, err = charset.Decode(d.encoding, source)
		if err != nil {
			return fail(err)
		}
		request.Text = true
	}

	d.logger.Debug("compiling unit",
		"chunk", compileUnit.ChunkName,
		"source", compileUnit.SourcePath,
		"bytes", len(request.Source),
		"text", request.Text,
	)

	artifacts, err := d.compiler.CompileAll(ctx, request)
	if err != nil {
		return fail(err)
	}
	if len(artifacts) == 0 {
		return fail(ErrEmptyResult)
	}
	return artifacts, nil
}
