// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkfile

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm used for a chunkfile payload.
// The numeric values are stored in headers; changing them breaks
// compatibility with existing files.
type Compression uint8

const (
	// CompressionNone stores the body as-is. Used when compression
	// would not make the payload smaller.
	CompressionNone Compression = 0

	// CompressionLZ4 is LZ4 block compression. Fast, moderate ratio;
	// chosen for binary bodies that compress a little.
	CompressionLZ4 Compression = 1

	// CompressionZstd is zstd at the default level. Better ratios
	// for source text.
	CompressionZstd Compression = 2

	// CompressionAuto is a request, never a stored value: Encode
	// probes the body with SelectCompression.
	CompressionAuto Compression = 255
)

// String returns the configuration name of a compression tag.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	case CompressionAuto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a configuration name ("auto", "none", "lz4",
// "zstd"). The empty string means auto.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want auto, none, lz4, or zstd)", name)
	}
}

// errIncompressible is returned when compressed output would not be
// smaller than the input. Encode falls back to CompressionNone.
var errIncompressible = errors.New("data is incompressible")

// compress applies algorithm c to data.
func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		return compressLZ4(data)
	case CompressionZstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", uint8(c))
	}
}

// decompress reverses compress. The result must be exactly size bytes.
func decompress(payload []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != size {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d", len(payload), size)
		}
		return payload, nil
	case CompressionLZ4:
		return decompressLZ4(payload, size)
	case CompressionZstd:
		return decompressZstd(payload, size)
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", uint8(c))
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(payload []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(payload, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use, which parallel compile workers rely on.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("chunkfile: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("chunkfile: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(payload []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}

// SelectCompression probes data with zstd. A ratio of at least 1.5x
// selects zstd; at least 1.1x selects LZ4, which decodes faster for a
// similar result; anything less is stored uncompressed.
func SelectCompression(data []byte) Compression {
	if len(data) == 0 {
		return CompressionNone
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
