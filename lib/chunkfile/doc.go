// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkfile implements the container format chunkc writes for
// each artifact produced by the built-in compiler.
//
// A chunkfile is self-describing and self-verifying:
//
//	offset  size  field
//	0       8     magic: "CHUNKC" + version byte (1) + reserved byte (0)
//	8       4     header length N, little-endian uint32
//	12      N     header, CBOR (Core Deterministic Encoding)
//	12+N    rest  payload: the body, compressed per header.compression
//
// The header names the artifact (identifier, chunk name, source path),
// says what it is (kind "chunk" or "entry"; body "source" or "binary"),
// lists the identifiers it requires at load time, and records the
// compression tag, the uncompressed body size, and the BLAKE3 digest
// of the uncompressed body.
//
// [Encode] picks or applies a compression algorithm and computes the
// digest. [Decode] checks the magic, header bounds, payload size, and
// digest, so any transcription damage is caught before a loader acts
// on the body.
//
// Compression follows the same tag scheme as artifact storage: LZ4
// block compression for fast, moderate ratios, zstd for text-like
// bodies, none when the body does not shrink. [SelectCompression]
// probes a body to choose between them.
//
// Encoding is deterministic: the same header and body always produce
// byte-identical files.
package chunkfile
