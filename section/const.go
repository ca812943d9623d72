package section

import "math"

const (
	EndiannessMask   = 0x0002 // bit 1: 0 little-endian, 1 big-endian
	ReservedBitsMask = 0x000D // bits 0, 2 and 3, must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15

	MagicRegistryV1 = 0xEC10 // magic number of the registry snapshot format

	Version1 = 1 // current format version
)

const (
	HeaderSize     = 32             // fixed header size in bytes
	IndexEntrySize = 16             // fixed index entry size in bytes
	IndexOffset    = HeaderSize     // the index always follows the header
	MaxTableCount  = math.MaxUint16 // bounded by the names payload count field
	MaxPayloadSize = math.MaxUint32 // bounded by the uint32 offsets
)
