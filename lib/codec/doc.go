// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides chunkc's standard CBOR encoding configuration.
//
// CBOR is used wherever chunkc writes or reads structured binary data
// that is not meant for humans:
//
//   - chunkfile container headers (see lib/chunkfile)
//   - the request/response protocol spoken with external compiler
//     processes (see lib/compiler/execplugin)
//
// Configuration files stay YAML or JSONC; CLI output stays plain text.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical header always produces identical bytes, so two builds of
// the same source produce byte-identical artifacts.
//
// Two decoders are provided. [Unmarshal] ignores unknown fields and
// is used for compiler process responses. [UnmarshalStrict] also
// rejects duplicate map keys and indefinite-length items, and is used
// for container headers, which chunkc always writes deterministically.
// [Describe] renders undecodable input for error messages.
package codec
