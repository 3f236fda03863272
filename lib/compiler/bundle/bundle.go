// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle is the built-in compiler. It does not translate
// source code; it packages each chunk into a verified chunkfile
// container that the loader can instantiate, and optionally adds an
// entry-point artifact that requires and runs the chunk.
//
// Source bodies must be valid UTF-8 when the driver decoded them from
// a configured encoding. Precompiled binary chunks are recognized by
// their signature and must target the environment's language version.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/chunkc/lib/chunkfile"
	"github.com/bureau-foundation/chunkc/lib/compiler"
	"github.com/bureau-foundation/chunkc/lib/unit"
)

// MainSuffix is appended to a chunk name to form the identifier of
// its entry-point artifact.
const MainSuffix = "$main"

// binarySignature starts every precompiled chunk. The byte after it
// is the language version, major in the high nibble.
const binarySignature = "\x1bLua"

// Options configures the bundle compiler.
type Options struct {
	// Compression is the payload compression requested for every
	// artifact. The zero value is CompressionNone; use
	// chunkfile.CompressionAuto to let each body choose.
	Compression chunkfile.Compression
}

// Compiler packages chunks. It is stateless and safe for concurrent
// use.
type Compiler struct {
	compression chunkfile.Compression
}

var _ compiler.Compiler = (*Compiler)(nil)

// New returns a bundle compiler.
func New(options Options) *Compiler {
	return &Compiler{compression: options.Compression}
}

// CompileAll returns one artifact named after the chunk and, when
// requested, a second one named chunk + MainSuffix.
func (c *Compiler) CompileAll(ctx context.Context, request compiler.Request) (unit.ArtifactSet, error) {
	if request.ChunkName == "" {
		return nil, errors.New("request has no chunk name")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoding, err := classify(request)
	if err != nil {
		return nil, err
	}

	chunk, err := chunkfile.Encode(chunkfile.Header{
		Identifier: request.ChunkName,
		ChunkName:  request.ChunkName,
		SourcePath: request.SourcePath,
		Kind:       chunkfile.KindChunk,
		Encoding:   encoding,
	}, request.Source, c.compression)
	if err != nil {
		return nil, fmt.Errorf("packaging chunk: %w", err)
	}

	artifacts := unit.ArtifactSet{request.ChunkName: chunk}
	if !request.GenerateMain {
		return artifacts, nil
	}

	entryIdentifier := request.ChunkName + MainSuffix
	entry, err := chunkfile.Encode(chunkfile.Header{
		Identifier: entryIdentifier,
		ChunkName:  request.ChunkName,
		SourcePath: request.SourcePath,
		Kind:       chunkfile.KindEntry,
		Encoding:   chunkfile.EncodingSource,
		Requires:   []string{request.ChunkName},
	}, EntrySource(request.ChunkName), c.compression)
	if err != nil {
		return nil, fmt.Errorf("packaging entry point: %w", err)
	}
	artifacts[entryIdentifier] = entry
	return artifacts, nil
}

// EntrySource returns the body of the entry-point artifact for a
// chunk: load the chunk as a module and call it with the program
// arguments.
func EntrySource(chunkName string) []byte {
	module := strings.ReplaceAll(chunkName, "/", ".")
	return fmt.Appendf(nil, "local chunk = require(%q)\nreturn chunk(...)\n", module)
}

func classify(request compiler.Request) (chunkfile.BodyEncoding, error) {
	if strings.HasPrefix(string(request.Source), binarySignature) {
		if err := checkBinaryVersion(request); err != nil {
			return "", err
		}
		return chunkfile.EncodingBinary, nil
	}
	if request.Text && !utf8.Valid(request.Source) {
		return "", fmt.Errorf("%s: source is not valid UTF-8 after decoding", request.SourcePath)
	}
	return chunkfile.EncodingSource, nil
}

// checkBinaryVersion compares the version byte of a precompiled chunk
// with the environment's language version ("5.2" is byte 0x52).
func checkBinaryVersion(request compiler.Request) error {
	if len(request.Source) <= len(binarySignature) {
		return fmt.Errorf("%s: truncated binary chunk", request.SourcePath)
	}
	if request.Environment == nil {
		return nil
	}
	got := request.Source[len(binarySignature)]
	want, ok := versionByte(request.Environment.LanguageVersion())
	if ok && got != want {
		return fmt.Errorf("%s: binary chunk is for version %d.%d, environment expects %s",
			request.SourcePath, got>>4, got&0x0f, request.Environment.LanguageVersion())
	}
	return nil
}

func versionByte(version string) (byte, bool) {
	var major, minor int
	if _, err := fmt.Sscanf(version, "%d.%d", &major, &minor); err != nil {
		return 0, false
	}
	if major < 0 || major > 15 || minor < 0 || minor > 15 {
		return 0, false
	}
	return byte(major<<4 | minor), true
}
