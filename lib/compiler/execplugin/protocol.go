// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package execplugin

// WireRequest is the document written to the plugin's stdin.
type WireRequest struct {
	ChunkName    string `cbor:"chunk_name"`
	SourcePath   string `cbor:"source_path"`
	Source       []byte `cbor:"source"`
	Text         bool   `cbor:"text"`
	GenerateMain bool   `cbor:"generate_main"`

	Platform        string   `cbor:"platform"`
	LanguageVersion string   `cbor:"language_version"`
	Libraries       []string `cbor:"libraries,omitempty"`
}

// WireResponse is the document the plugin writes to stdout. Exactly
// one of Artifacts and Error is meaningful: a non-empty Error fails
// the unit regardless of Artifacts.
type WireResponse struct {
	Artifacts map[string][]byte `cbor:"artifacts,omitempty"`
	Error     string            `cbor:"error,omitempty"`
}
