package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/chemlab/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// payload mimics an archive body: repeated float64 measurements with short strings.
func payload(records int) []byte {
	var buf bytes.Buffer
	for i := range records {
		buf.WriteString("2024-01-15")
		for j := range 8 {
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(i%9)*0.5+float64(j)))
			buf.Write(b[:])
		}
	}

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, format.ErrUnknownCompression)
}

func TestCodecsRoundTrip(t *testing.T) {
	for _, ct := range allTypes {
		for _, size := range []int{1, 10, 500} {
			t.Run(fmt.Sprintf("%s/%d", ct, size), func(t *testing.T) {
				codec, err := GetCodec(ct)
				require.NoError(t, err)

				data := payload(size)
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(packed)
				require.NoError(t, err)
				assert.Equal(t, data, out)

				out, err = DecompressSized(codec, packed, len(data))
				require.NoError(t, err)
				assert.Equal(t, data, out)
			})
		}
	}
}

func TestCodecsCompressRepetitiveData(t *testing.T) {
	data := payload(500)
	for _, ct := range allTypes[1:] {
		packed, stats, err := CompressWithStats(ct, data)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(data), ct)
		assert.Equal(t, ct, stats.Algorithm)
		assert.Equal(t, int64(len(data)), stats.OriginalSize)
		assert.Equal(t, int64(len(packed)), stats.CompressedSize)
		assert.Less(t, stats.Ratio(), 1.0)
		assert.Greater(t, stats.SpaceSavings(), 0.0)
	}
}

func TestCodecsEmptyInput(t *testing.T) {
	for _, ct := range allTypes[1:] {
		codec, _ := GetCodec(ct)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		assert.Empty(t, packed)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		assert.Empty(t, out)

		out, err = DecompressSized(codec, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestCodecsRejectGarbage(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0x00, 0x01, 0x02, 0x03, 0xde, 0xad, 0xbe, 0xef}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, _ := GetCodec(ct)
		_, err := codec.Decompress(garbage)
		require.Error(t, err, ct)
	}
}

func TestDecompressSizedMismatch(t *testing.T) {
	data := payload(20)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		packed, err := codec.Compress(data)
		require.NoError(t, err)

		_, err = DecompressSized(codec, packed, len(data)+1)
		require.Error(t, err, ct)
	}
}

func TestLZ4DecompressLargeExpansion(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 64<<10)
	codec := NewLZ4Compressor()

	packed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(packed)*4, len(data), "needs the buffer to grow")

	out, err := codec.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestLZ4DecompressSizedRejectsOversize(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 64<<10)
	codec := NewLZ4Compressor()

	packed, err := codec.Compress(data)
	require.NoError(t, err)

	out, err := DecompressSized(codec, packed, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)

	for _, size := range []int{-1, len(packed)*lz4MaxRatio + 1, lz4MaxDecompressed + 1, 1 << 30} {
		_, err := DecompressSized(codec, packed, size)
		require.ErrorIs(t, err, ErrSizeOutOfRange, size)
	}
}

func TestNoOpSharesMemory(t *testing.T) {
	data := []byte("abc")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	assert.Same(t, &data[0], &out[0])
}

func TestStatsZeroSize(t *testing.T) {
	var s Stats
	assert.InDelta(t, 0.0, s.Ratio(), 0)
	assert.InDelta(t, 0.0, s.SpaceSavings(), 0)
}

func TestCompressWithStatsUnknown(t *testing.T) {
	_, _, err := CompressWithStats(0, []byte("x"))
	require.ErrorIs(t, err, format.ErrUnknownCompression)
}

func TestCodecsConcurrent(t *testing.T) {
	data := payload(100)
	var wg sync.WaitGroup
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					packed, err := codec.Compress(data)
					if !assert.NoError(t, err) {
						return
					}
					out, err := codec.Decompress(packed)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, data, out)
				}
			}()
		}
	}
	wg.Wait()
}

func BenchmarkCodecs(b *testing.B) {
	data := payload(1000)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		packed, _ := codec.Compress(data)

		b.Run(ct.String()+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
		b.Run(ct.String()+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(packed)
			}
		})
	}
}
