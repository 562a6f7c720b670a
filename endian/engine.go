// Package endian selects the byte order used for archive records.
//
// Archives are little-endian by default. A header flag switches the record
// body to big-endian for readers on big-endian tooling; the fixed header
// itself is always little-endian.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines the read/write and append halves of a byte order.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForBigEndian returns the big-endian engine when big is true and the
// little-endian engine otherwise.
func ForBigEndian(big bool) EndianEngine {
	if big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}

// AppendFloat64 appends the IEEE-754 bits of v.
func AppendFloat64(engine EndianEngine, dst []byte, v float64) []byte {
	return engine.AppendUint64(dst, math.Float64bits(v))
}

// Float64 decodes the IEEE-754 value in the first 8 bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
