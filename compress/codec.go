// Package compress provides the codecs that compress a snapshot payload.
//
// A snapshot payload is the concatenation of every table's policies, axes and
// grid values. Grids sampled from smooth measurements compress well with
// Zstd; S2 and LZ4 trade ratio for speed, and None stores the payload as is.
//
// Every codec is stateless from the caller's point of view and safe for
// concurrent use. Encoders and decoders that benefit from reuse are pooled
// internally.
//
// The snapshot header records the uncompressed payload size, which
// decompressors use as the exact output size:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	packed, _ := codec.Compress(payload)
//	payload, err := codec.Decompress(packed, len(payload))
package compress

import (
	"fmt"

	"github.com/arloliu/lut/format"
)

// MaxDecompressedSize bounds the rawSize accepted by Decompress.
const MaxDecompressedSize = 1 << 30

// Compressor compresses a complete snapshot payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified; the result may alias it only for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload written by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload. rawSize is the uncompressed
	// size recorded when the payload was written; the result must have
	// exactly that length.
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Codec combines compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarises one compression.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns CompressedSize / OriginalSize, or 0 for an empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the percentage of bytes saved by compression.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns:
//   - Codec: Shared codec instance
//   - error: Unsupported compression type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Compress compresses data with the built-in codec for compressionType and
// reports the resulting sizes.
func Compress(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	packed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return packed, CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(packed)),
	}, nil
}

func checkRawSize(rawSize int) error {
	if rawSize < 0 || rawSize > MaxDecompressedSize {
		return fmt.Errorf("raw payload size %d outside [0, %d]", rawSize, MaxDecompressedSize)
	}

	return nil
}

func checkLength(algo string, got, rawSize int) error {
	if got != rawSize {
		return fmt.Errorf("%s payload decompressed to %d bytes, expected %d", algo, got, rawSize)
	}

	return nil
}
