package compress

// ZstdCompressor produces standard zstd frames.
//
// The implementation is chosen at build time: see zstd_pure.go and zstd_cgo.go.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// zstdLevel is the compression level shared by both implementations.
const zstdLevel = 3

// NewZstdCompressor returns the zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
