package snapshot

import (
	"github.com/arloliu/lut/compress"
	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/internal/options"
)

type config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
}

func defaultConfig() *config {
	return &config{
		compression: format.CompressionZstd,
		engine:      endian.GetLittleEndianEngine(),
	}
}

// Option configures Encode.
type Option = options.Option[*config]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithLittleEndian writes the snapshot body little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes the snapshot body big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}
