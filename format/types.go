// Package format defines the identifiers stored in archive headers.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCompression is returned when a compression name or id is not recognized.
var ErrUnknownCompression = errors.New("unknown compression")

type (
	// CompressionType identifies the codec applied to an archive payload.
	CompressionType uint8
	// RecordKind tags each archived record with its experiment variant.
	RecordKind uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	RecordGas     RecordKind = 0x1 // RecordGas marks a gas cart run.
	RecordDaniell RecordKind = 0x2 // RecordDaniell marks a Daniell cell run.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression id.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression maps a case-insensitive name (none, zstd, s2, lz4) to its id.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

func (k RecordKind) String() string {
	switch k {
	case RecordGas:
		return "gas"
	case RecordDaniell:
		return "daniell"
	default:
		return "unknown"
	}
}
