package archive

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/chemlab/compress"
	"github.com/arloliu/chemlab/endian"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/internal/hash"
	"github.com/arloliu/chemlab/internal/options"
	"github.com/arloliu/chemlab/internal/pool"
)

// Encode serializes runs into an archive. Nil runs are skipped.
//
// Parameters:
//   - runs: Runs to archive, in order
//   - opts: Compression, byte order and logging options
//
// Returns:
//   - []byte: Archive bytes, owned by the caller
//   - error: Invalid option, unknown run kind, or payload over 4 GiB
func Encode(runs []*experiment.Run, opts ...EncodeOption) ([]byte, error) {
	cfg := defaultEncodeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	engine := endian.ForBigEndian(cfg.BigEndian)
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	var count uint32
	for i, r := range runs {
		if r == nil {
			continue
		}

		buf.Grow(recordSize(r))
		b, err := appendRecord(engine, buf.B, r)
		if err != nil {
			return nil, fmt.Errorf("archive run %d: %w", i, err)
		}
		buf.B = b
		count++
	}

	payload := buf.Bytes()
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("archive payload too large: %d bytes", len(payload))
	}

	packed, stats, err := compress.CompressWithStats(cfg.Compression, payload)
	if err != nil {
		return nil, err
	}

	h := Header{
		Version:     Version,
		Compression: cfg.Compression,
		Count:       count,
		PayloadLen:  uint32(len(payload)),
	}
	if cfg.BigEndian {
		h.Flags |= FlagBigEndian
	}

	out := make([]byte, 0, HeaderSize+len(packed)+ChecksumSize)
	out = h.appendTo(out)
	out = append(out, packed...)
	out = endian.GetLittleEndianEngine().AppendUint64(out, hash.Checksum(payload))

	cfg.Logger.Debug("archive encoded",
		slog.Int("runs", int(count)),
		slog.String("compression", cfg.Compression.String()),
		slog.Int64("payload_bytes", stats.OriginalSize),
		slog.Int64("compressed_bytes", stats.CompressedSize),
		slog.Float64("space_savings_pct", stats.SpaceSavings()),
		slog.Duration("elapsed", stats.Duration),
	)

	return out, nil
}

// Decode parses an archive produced by Encode.
//
// The payload checksum is verified before any record is parsed.
func Decode(data []byte) ([]*experiment.Run, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize : len(data)-ChecksumSize]
	payload, err := compress.DecompressSized(codec, body, int(h.PayloadLen))
	if err != nil {
		return nil, fmt.Errorf("archive: decompress payload: %w", err)
	}

	want := endian.GetLittleEndianEngine().Uint64(data[len(data)-ChecksumSize:])
	if got := hash.Checksum(payload); got != want {
		return nil, fmt.Errorf("%w: got %#016x, want %#016x", ErrChecksumMismatch, got, want)
	}

	rd := &reader{engine: h.engine(), data: payload}
	capHint := min(int(h.Count), len(payload)/minRecordSize)
	runs := make([]*experiment.Run, 0, capHint)
	for i := range h.Count {
		r, err := rd.record()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		runs = append(runs, r)
	}

	if rd.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptRecord, rd.remaining())
	}

	return runs, nil
}
