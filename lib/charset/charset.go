// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package charset decodes source files from a named text encoding to
// UTF-8 before they reach the compiler.
//
// Names are looked up in the IANA registry first ("ISO-8859-1",
// "windows-1252", "Shift_JIS", "UTF-16LE", ...), then in the WHATWG
// label table, which accepts the lowercase aliases browsers and most
// editors use ("latin1", "sjis", "utf8"). Lookup is case-insensitive.
package charset

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Lookup returns the encoding registered under name. An unknown or
// unsupported name is an error.
func Lookup(name string) (encoding.Encoding, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("empty encoding name")
	}

	if found, err := ianaindex.IANA.Encoding(trimmed); err == nil && found != nil {
		return found, nil
	}
	if found, err := htmlindex.Get(trimmed); err == nil && found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// Decode converts data from enc to UTF-8. A UTF-8 byte order mark at
// the start of the decoded text is removed, matching what a text
// reader hands a compiler. UTF-8 input is returned as is apart from
// the BOM: malformed sequences are left for the compiler to reject
// instead of being replaced with U+FFFD.
func Decode(enc encoding.Encoding, data []byte) ([]byte, error) {
	if isUTF8(enc) {
		return trimBOM(data), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding source text: %w", err)
	}
	return trimBOM(decoded), nil
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == unicode.UTF8BOM
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func trimBOM(text []byte) []byte {
	return bytes.TrimPrefix(text, utf8BOM)
}
