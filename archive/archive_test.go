package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/chemlab/compress"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/format"
)

func sampleRuns(t *testing.T) []*experiment.Run {
	t.Helper()

	gas, err := experiment.NewRun(experiment.KindGas)
	require.NoError(t, err)
	gas.ID = "a1b2"
	gas.Date = "2024-01-15"
	gas.WeekTag = "2024-01"
	gas.Notes = "Successful run, windy"
	for name, v := range map[string]float64{
		experiment.FieldVehicleMass: 0.5,
		experiment.FieldVinegarML:   50,
		experiment.FieldBicarbG:     10,
		experiment.FieldDistance:    2.5,
	} {
		require.NoError(t, experiment.SetField(gas, name, v))
	}

	dan, err := experiment.NewRun(experiment.KindDaniell)
	require.NoError(t, err)
	dan.ID = "c3d4"
	dan.Notes = "çözelti"
	require.NoError(t, experiment.SetField(dan, experiment.FieldOCV, 1.1))
	require.NoError(t, experiment.SetField(dan, experiment.FieldEnergyWh, 0.2))

	empty, err := experiment.NewRun(experiment.KindGas)
	require.NoError(t, err)

	return []*experiment.Run{gas, dan, empty}
}

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestRoundTrip(t *testing.T) {
	runs := sampleRuns(t)

	for _, c := range allCompressions {
		for _, big := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/big=%v", c, big), func(t *testing.T) {
				data, err := Encode(runs, WithCompression(c), WithBigEndian(big))
				require.NoError(t, err)

				h, err := ReadHeader(data)
				require.NoError(t, err)
				assert.Equal(t, Version, h.Version)
				assert.Equal(t, c, h.Compression)
				assert.Equal(t, uint32(3), h.Count)
				assert.Equal(t, big, h.BigEndian())

				got, err := Decode(data)
				require.NoError(t, err)
				assert.Equal(t, runs, got)
			})
		}
	}
}

func TestEncodeDefaultsToZstd(t *testing.T) {
	data, err := Encode(sampleRuns(t))
	require.NoError(t, err)

	h, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, format.CompressionZstd, h.Compression)
	assert.False(t, h.BigEndian())
}

func TestEncodeEmpty(t *testing.T) {
	for _, c := range allCompressions {
		data, err := Encode(nil, WithCompression(c))
		require.NoError(t, err)
		assert.Len(t, data, HeaderSize+ChecksumSize, c)

		runs, err := Decode(data)
		require.NoError(t, err)
		assert.Empty(t, runs)
	}
}

func TestEncodeSkipsNil(t *testing.T) {
	runs := sampleRuns(t)
	data, err := Encode([]*experiment.Run{nil, runs[0], nil})
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, runs[:1], got)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil, WithCompression(format.CompressionType(42)))
	require.ErrorIs(t, err, format.ErrUnknownCompression)

	bad := &experiment.Run{Kind: "solar"}
	_, err = Encode([]*experiment.Run{bad})
	require.ErrorIs(t, err, experiment.ErrUnknownKind)
}

func TestEncodeLogsStats(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Encode(sampleRuns(t), WithCompression(format.CompressionS2), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "archive encoded")
	assert.Contains(t, logs.String(), "runs=3")
	assert.Contains(t, logs.String(), "compression=S2")
}

func TestDecodeInvalidMagic(t *testing.T) {
	_, err := Decode([]byte("nope"))
	require.ErrorIs(t, err, ErrInvalidMagic)

	_, err = Decode(nil)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Encode(sampleRuns(t))
	require.NoError(t, err)

	_, err = Decode(data[:HeaderSize])
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(data[:len(data)-3])
	require.Error(t, err)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data, err := Encode(sampleRuns(t))
	require.NoError(t, err)

	data[4] = Version + 1
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	data[4] = 0
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeUnknownCompression(t *testing.T) {
	data, err := Encode(sampleRuns(t))
	require.NoError(t, err)

	data[5] = 0x7f
	_, err = Decode(data)
	require.ErrorIs(t, err, format.ErrUnknownCompression)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	data, err := Encode(sampleRuns(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// flip a byte inside the first record's id
	data[HeaderSize+1+4] ^= 0xff
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)

	data, err = Encode(sampleRuns(t))
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeForgedPayloadLength(t *testing.T) {
	data, err := Encode(sampleRuns(t), WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(data[12:16], 0xFFFFFFF0)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = Decode(data)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, compress.ErrSizeOutOfRange)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20))
}

func TestDecodeCountMismatch(t *testing.T) {
	data, err := Encode(sampleRuns(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// claim one record fewer: trailing bytes remain
	data[8]--
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrCorruptRecord)

	// claim one record more: payload runs out
	data[8] += 2
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data, err := Encode(sampleRuns(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	runs, err := Decode(data)
	require.NoError(t, err)

	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, "a1b2", runs[0].ID)
}

func TestReadHeaderDoesNotDecompress(t *testing.T) {
	data, err := Encode(sampleRuns(t))
	require.NoError(t, err)

	// corrupt the payload; the header is still readable
	data[HeaderSize] ^= 0xff
	h, err := ReadHeader(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), h.Count)
}

func TestRoundTripFromCSV(t *testing.T) {
	var tmpl bytes.Buffer
	require.NoError(t, experiment.WriteTemplate(&tmpl, experiment.KindDaniell))
	runs, _, err := experiment.ReadCSV(&tmpl)
	require.NoError(t, err)

	data, err := Encode(runs, WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, runs, got)
}
