// Package compress provides the payload codecs used by experiment archives.
//
// Four codecs are available, selected by format.CompressionType:
//
//   - None: payload stored verbatim
//   - Zstd: best ratio, the default for archives kept on disk
//   - S2: fast Snappy-compatible compression
//   - LZ4: fastest decompression
//
// Zstd uses the pure-Go klauspost implementation unless the module is
// built with cgo and the gozstd build tag, in which case it binds to the
// reference C library through valyala/gozstd. Both produce standard zstd
// frames, so archives written by one build decode in the other.
//
// All codecs are stateless values and safe for concurrent use.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	payload, err = codec.Decompress(packed)
package compress
