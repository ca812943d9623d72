package section

import (
	"fmt"

	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
)

// Flag holds the first four header bytes: options, compression and version.
type Flag struct {
	// Options packs the byte order bit and the magic number.
	Options uint16
	// CompressionType identifies the codec of the table payload.
	CompressionType uint8
	// Version is the format version.
	Version uint8
}

// NewFlag creates a little-endian, uncompressed version 1 flag.
func NewFlag() Flag {
	return Flag{
		Options:         MagicRegistryV1,
		CompressionType: uint8(format.CompressionNone),
		Version:         Version1,
	}
}

// IsBigEndian reports whether the snapshot body is big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// SetBigEndian selects the byte order of the snapshot body.
func (f *Flag) SetBigEndian(big bool) {
	if big {
		f.Options |= EndiannessMask
	} else {
		f.Options &^= EndiannessMask
	}
}

// GetEndianEngine returns the engine matching the byte order bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	return endian.FromBigEndianFlag(f.IsBigEndian())
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *Flag) SetCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// GetMagicNumber returns the magic number bits of the options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number, reserved bits, version and compression.
//
// Returns:
//   - error: ErrInvalidMagicNumber or ErrInvalidHeaderFlags
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicRegistryV1 {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set (0x%04x)", errs.ErrInvalidHeaderFlags, f.Options)
	}
	if f.Version != Version1 {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidHeaderFlags, f.Version)
	}

	switch f.Compression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("%w: unknown compression type %d", errs.ErrInvalidHeaderFlags, f.CompressionType)
	}
}
