// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// maxDescription bounds the diagnostic notation Describe returns.
const maxDescription = 96

var (
	encMode    cbor.EncMode
	decMode    cbor.DecMode
	strictMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	options := cbor.DecOptions{
		// any-typed targets decode to map[string]any; chunkc never
		// uses non-string map keys.
		DefaultMapType:   reflect.TypeOf(map[string]any(nil)),
		MaxArrayElements: 1 << 20,
		MaxMapPairs:      1 << 20,
	}
	decMode, err = options.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	options.DupMapKey = cbor.DupMapKeyEnforcedAPF
	options.IndefLength = cbor.IndefLengthForbidden
	strictMode, err = options.DecMode()
	if err != nil {
		panic("codec: strict CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v with Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes a single CBOR item into v. Unknown struct fields
// are ignored, so a newer compiler process can add response fields.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalStrict is Unmarshal for data chunkc itself wrote, where
// anything but deterministic output means corruption: duplicate map
// keys and indefinite-length items are rejected.
func UnmarshalStrict(data []byte, v any) error {
	return strictMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// NewEncoder returns a deterministic CBOR encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// Describe renders the first CBOR item in data in diagnostic notation
// (RFC 8949 §8) for error messages, truncated to a readable length.
// Data that is not CBOR is described by its size.
func Describe(data []byte) string {
	if len(data) == 0 {
		return "no data"
	}
	notation, _, err := cbor.DiagnoseFirst(data)
	if err != nil {
		return fmt.Sprintf("%d bytes, not CBOR", len(data))
	}
	if len(notation) > maxDescription {
		notation = notation[:maxDescription] + "..."
	}
	return notation
}
