package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const (
	// lz4MaxDecompressed caps the output buffer.
	lz4MaxDecompressed = 128 << 20
	// lz4MaxRatio bounds how many output bytes one input byte of a block can yield.
	lz4MaxRatio = 255
)

// ErrSizeOutOfRange is returned when a declared decompressed size cannot be
// produced from the given input.
var ErrSizeOutOfRange = errors.New("compress: declared size out of range")

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor uses the raw LZ4 block format, which does not record the
// original length. Callers that know it should use DecompressSized.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor returns the LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress grows the output buffer from 4x the input size, doubling on
// short-buffer errors up to 128 MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; size <= lz4MaxDecompressed; size *= 2 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressSized decompresses into a buffer of exactly size bytes.
// Sizes above what data could expand to, or above 128 MiB, are rejected
// before anything is allocated.
func (c LZ4Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 && size == 0 {
		return nil, nil
	}
	if size < 0 || size > lz4MaxDecompressed || size > len(data)*lz4MaxRatio {
		return nil, fmt.Errorf("%w: lz4 size %d for %d input bytes", ErrSizeOutOfRange, size, len(data))
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("lz4: decompressed %d bytes, expected %d", n, size)
	}

	return buf, nil
}

// SizedDecompressor is implemented by codecs that benefit from knowing the
// decompressed length up front.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// DecompressSized decompresses data with d and checks that the result is
// size bytes long, using d's sized path when it has one.
func DecompressSized(d Decompressor, data []byte, size int) ([]byte, error) {
	if size == 0 && len(data) == 0 {
		return nil, nil
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrSizeOutOfRange, size)
	}

	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	out, err := d.Decompress(data)
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("decompressed %d bytes, expected %d", len(out), size)
	}

	return out, nil
}
