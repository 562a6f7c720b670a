package archive

import (
	"errors"
	"fmt"

	"github.com/arloliu/chemlab/endian"
	"github.com/arloliu/chemlab/format"
)

const (
	// Magic identifies an archive.
	Magic = "CLAR"
	// Version is the format version written by Encode.
	Version uint8 = 1

	// HeaderSize is the fixed header length in bytes.
	HeaderSize = 16
	// ChecksumSize is the trailing checksum length in bytes.
	ChecksumSize = 8
)

// FlagBigEndian marks a payload written in big-endian byte order.
const FlagBigEndian uint16 = 1 << 0

var (
	// ErrInvalidMagic is returned when data does not start with Magic.
	ErrInvalidMagic = errors.New("archive: invalid magic")
	// ErrUnsupportedVersion is returned for a version newer than Version.
	ErrUnsupportedVersion = errors.New("archive: unsupported version")
	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("archive: checksum mismatch")
	// ErrTruncated is returned when data is shorter than its header claims.
	ErrTruncated = errors.New("archive: truncated data")
	// ErrCorruptRecord is returned when the payload cannot be parsed.
	ErrCorruptRecord = errors.New("archive: corrupt record")
)

// Header is the decoded fixed-size archive header.
type Header struct {
	Version     uint8
	Compression format.CompressionType
	Flags       uint16
	Count       uint32
	PayloadLen  uint32
}

// BigEndian reports whether the payload uses big-endian byte order.
func (h Header) BigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

func (h Header) engine() endian.EndianEngine {
	return endian.ForBigEndian(h.BigEndian())
}

func (h Header) appendTo(dst []byte) []byte {
	le := endian.GetLittleEndianEngine()

	dst = append(dst, Magic...)
	dst = append(dst, h.Version, byte(h.Compression))
	dst = le.AppendUint16(dst, h.Flags)
	dst = le.AppendUint32(dst, h.Count)
	dst = le.AppendUint32(dst, h.PayloadLen)

	return dst
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return Header{}, ErrInvalidMagic
	}
	if len(data) < HeaderSize+ChecksumSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	le := endian.GetLittleEndianEngine()
	h := Header{
		Version:     data[4],
		Compression: format.CompressionType(data[5]),
		Flags:       le.Uint16(data[6:8]),
		Count:       le.Uint32(data[8:12]),
		PayloadLen:  le.Uint32(data[12:16]),
	}

	if h.Version == 0 || h.Version > Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.Valid() {
		return Header{}, fmt.Errorf("%w: %d", format.ErrUnknownCompression, data[5])
	}

	return h, nil
}

// ReadHeader validates and returns the header of an archive without
// decompressing its payload.
func ReadHeader(data []byte) (Header, error) {
	return parseHeader(data)
}
