// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package execplugin runs an external command as the compiler for
// each unit.
//
// The command is started once per unit. chunkc writes a single CBOR
// [WireRequest] to its stdin and closes it; the command writes a
// single CBOR [WireResponse] to stdout and exits. The protocol is
// deliberately stateless so any language with a CBOR library can
// implement a compiler.
//
// A unit fails when the command cannot be started, exits non-zero,
// exceeds the configured timeout, writes something that is not a
// response, or returns a response whose error field is set. Whatever
// the command wrote to stderr is included in the error, trimmed to
// 4 KiB.
package execplugin
