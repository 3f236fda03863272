// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package verify

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/chunkc/lib/chunkfile"
)

// ChunkPlatform instantiates chunkfile containers.
type ChunkPlatform struct{}

var _ Platform = ChunkPlatform{}

// Chunk is an instantiated chunkfile.
type Chunk struct {
	Header chunkfile.Header

	// Dependencies are the resolved Header.Requires entries, in order.
	Dependencies []Instance
}

func (c *Chunk) Identifier() string { return c.Header.Identifier }

func (c *Chunk) String() string {
	return fmt.Sprintf("%s %s (%s, %d bytes, %s)", c.Header.Kind, c.Header.Identifier,
		c.Header.Encoding, c.Header.Size, c.Header.Digest.Short())
}

// Instantiate decodes data, checks that it is the artifact it claims
// to be, checks its body, and resolves its requirements.
func (ChunkPlatform) Instantiate(identifier string, data []byte, resolver Resolver) (Instance, error) {
	file, err := chunkfile.Decode(data)
	if err != nil {
		return nil, err
	}
	header := file.Header
	if header.Identifier != identifier {
		return nil, fmt.Errorf("container identifies itself as %q", header.Identifier)
	}

	switch header.Encoding {
	case chunkfile.EncodingBinary:
		if !bytes.HasPrefix(file.Body, []byte("\x1bLua")) {
			return nil, fmt.Errorf("binary body has no chunk signature")
		}
	case chunkfile.EncodingSource:
		if header.Kind == chunkfile.KindEntry && !utf8.Valid(file.Body) {
			return nil, fmt.Errorf("entry body is not valid UTF-8")
		}
	default:
		return nil, fmt.Errorf("unknown body encoding %q", header.Encoding)
	}

	chunk := &Chunk{Header: header}
	for _, name := range header.Requires {
		dependency, err := resolver.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", name, err)
		}
		chunk.Dependencies = append(chunk.Dependencies, dependency)
	}
	return chunk, nil
}
