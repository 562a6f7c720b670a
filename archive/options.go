package archive

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/chemlab/format"
	"github.com/arloliu/chemlab/internal/options"
)

// EncodeConfig holds the settings applied by Encode.
type EncodeConfig struct {
	Compression format.CompressionType
	BigEndian   bool
	Logger      *slog.Logger
}

func defaultEncodeConfig() EncodeConfig {
	return EncodeConfig{
		Compression: format.CompressionZstd,
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*EncodeConfig]

// WithCompression selects the payload codec. The default is zstd.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *EncodeConfig) error {
		if !c.Valid() {
			return fmt.Errorf("%w: %d", format.ErrUnknownCompression, c)
		}
		cfg.Compression = c

		return nil
	})
}

// WithBigEndian writes the payload in big-endian byte order.
func WithBigEndian(big bool) EncodeOption {
	return options.NoError(func(cfg *EncodeConfig) {
		cfg.BigEndian = big
	})
}

// WithLogger reports compression statistics at Debug level.
func WithLogger(logger *slog.Logger) EncodeOption {
	return options.NoError(func(cfg *EncodeConfig) {
		if logger != nil {
			cfg.Logger = logger
		}
	})
}
