// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bureau-foundation/chunkc/lib/codec"
)

// Magic is the 8-byte prefix of every chunkfile: the ASCII letters
// "CHUNKC", a version byte, and a reserved zero byte.
var Magic = [8]byte{'C', 'H', 'U', 'N', 'K', 'C', formatVersion, 0}

const (
	formatVersion = 1

	// prefixSize is the magic plus the header length field.
	prefixSize = len(Magic) + 4

	// maxHeaderSize bounds the CBOR header. Real headers are a few
	// hundred bytes; anything near this limit is corruption.
	maxHeaderSize = 1 << 20

	// MaxBodySize bounds the uncompressed body. The header stores the
	// size as a uint32.
	MaxBodySize = 1<<32 - 1
)

// ErrNotChunkfile is returned by Decode when data does not start with
// the chunkfile magic.
var ErrNotChunkfile = errors.New("not a chunkfile")

// ErrCorrupt is returned by Decode (wrapped with detail) when the
// structure or digest of a chunkfile does not check out.
var ErrCorrupt = errors.New("corrupt chunkfile")

// Kind says what role an artifact plays.
type Kind string

const (
	// KindChunk is a compiled source file.
	KindChunk Kind = "chunk"

	// KindEntry is a generated entry point that requires a chunk and
	// runs it.
	KindEntry Kind = "entry"
)

// BodyEncoding says how the body should be interpreted.
type BodyEncoding string

const (
	// EncodingSource is UTF-8 source text.
	EncodingSource BodyEncoding = "source"

	// EncodingBinary is a precompiled binary chunk.
	EncodingBinary BodyEncoding = "binary"
)

// Header is the CBOR-encoded metadata block of a chunkfile.
type Header struct {
	// Identifier is the artifact identifier the file was written
	// under (the path relative to the destination root, without
	// extension).
	Identifier string `cbor:"identifier"`

	// ChunkName is the chunk the artifact belongs to. Equal to
	// Identifier for KindChunk artifacts.
	ChunkName string `cbor:"chunk_name"`

	// SourcePath is the slash-separated source name, for messages.
	SourcePath string `cbor:"source_path,omitempty"`

	Kind     Kind         `cbor:"kind"`
	Encoding BodyEncoding `cbor:"encoding"`

	// Requires lists identifiers that must resolve before the
	// artifact can be instantiated.
	Requires []string `cbor:"requires,omitempty"`

	// Compression, Size, and Digest are filled in by Encode.
	Compression Compression `cbor:"compression"`
	Size        uint32      `cbor:"size"`
	Digest      Digest      `cbor:"digest"`
}

// File is a decoded chunkfile.
type File struct {
	Header Header

	// Body is the uncompressed body, already checked against
	// Header.Digest.
	Body []byte
}

// Encode builds a chunkfile from header and body. The caller fills in
// the descriptive header fields; Encode overwrites Compression, Size,
// and Digest. compression may be CompressionAuto to let
// SelectCompression decide. A body that does not shrink under the
// requested algorithm is stored uncompressed.
func Encode(header Header, body []byte, compression Compression) ([]byte, error) {
	if uint64(len(body)) > MaxBodySize {
		return nil, fmt.Errorf("chunk body is %d bytes, limit is %d", len(body), MaxBodySize)
	}
	if header.Kind != KindChunk && header.Kind != KindEntry {
		return nil, fmt.Errorf("invalid chunk kind %q", header.Kind)
	}
	if header.Encoding != EncodingSource && header.Encoding != EncodingBinary {
		return nil, fmt.Errorf("invalid body encoding %q", header.Encoding)
	}

	if compression == CompressionAuto {
		compression = SelectCompression(body)
	}
	payload, err := compress(body, compression)
	if errors.Is(err, errIncompressible) {
		compression, payload = CompressionNone, body
	} else if err != nil {
		return nil, err
	}

	header.Compression = compression
	header.Size = uint32(len(body))
	header.Digest = DigestBody(body)

	encodedHeader, err := codec.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("encoding chunkfile header: %w", err)
	}

	var buffer bytes.Buffer
	buffer.Grow(prefixSize + len(encodedHeader) + len(payload))
	buffer.Write(Magic[:])
	buffer.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(encodedHeader))))
	buffer.Write(encodedHeader)
	buffer.Write(payload)
	return buffer.Bytes(), nil
}

// Decode parses and verifies a chunkfile. Errors wrap ErrNotChunkfile
// when the magic is missing or the version is unknown, and ErrCorrupt
// for every structural or digest failure after that.
func Decode(data []byte) (*File, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:6], Magic[:6]) {
		return nil, ErrNotChunkfile
	}
	if data[6] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrNotChunkfile, data[6])
	}
	if len(data) < prefixSize {
		return nil, fmt.Errorf("%w: truncated before header length", ErrCorrupt)
	}

	headerLength := binary.LittleEndian.Uint32(data[len(Magic):prefixSize])
	if headerLength == 0 || headerLength > maxHeaderSize {
		return nil, fmt.Errorf("%w: header length %d out of range", ErrCorrupt, headerLength)
	}
	headerEnd := prefixSize + int(headerLength)
	if headerEnd > len(data) {
		return nil, fmt.Errorf("%w: header length %d exceeds file size %d", ErrCorrupt, headerLength, len(data))
	}

	var header Header
	if err := codec.UnmarshalStrict(data[prefixSize:headerEnd], &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	switch header.Kind {
	case KindChunk, KindEntry:
	default:
		return nil, fmt.Errorf("%w: invalid kind %q", ErrCorrupt, header.Kind)
	}

	body, err := decompress(data[headerEnd:], header.Compression, int(header.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrCorrupt, err)
	}
	if DigestBody(body) != header.Digest {
		return nil, fmt.Errorf("%w: digest mismatch for %q", ErrCorrupt, header.Identifier)
	}

	return &File{Header: header, Body: body}, nil
}
