// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is the BLAKE3 keyed hash of an uncompressed chunk body.
type Digest [32]byte

// bodyDomainKey separates chunkfile body digests from any other use of
// BLAKE3 over the same bytes. The key is the ASCII domain name,
// zero-padded to 32 bytes, so it reads plainly in hex dumps.
var bodyDomainKey = [32]byte{
	'c', 'h', 'u', 'n', 'k', 'c', '.', 'c', 'h', 'u', 'n', 'k', 'f', 'i', 'l', 'e',
	'.', 'b', 'o', 'd', 'y',
}

// DigestBody computes the body digest stored in chunkfile headers.
func DigestBody(body []byte) Digest {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(bodyDomainKey[:])
	if err != nil {
		panic("chunkfile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(body)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, used in verbose output.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}
