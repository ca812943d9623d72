package section

import (
	"fmt"

	"github.com/arloliu/lut/errs"
)

// Header is the fixed 32-byte section at the start of a snapshot.
type Header struct {
	Flag Flag // byte offset 0-3

	// TableCount is the number of index entries.
	TableCount uint32 // byte offset 4-7
	// IndexOffset is the byte offset of the first index entry.
	IndexOffset uint32 // byte offset 8-11
	// NamesOffset is the byte offset of the names payload.
	NamesOffset uint32 // byte offset 12-15
	// PayloadOffset is the byte offset of the compressed table payload.
	PayloadOffset uint32 // byte offset 16-19
	// RawPayloadSize is the size of the table payload before compression.
	RawPayloadSize uint32 // byte offset 20-23
	// Checksum is the xxHash64 of every byte after the header.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a header with a default flag and the index directly
// after the header. Counts and offsets are filled in by the encoder.
func NewHeader() *Header {
	return &Header{
		Flag:        NewFlag(),
		IndexOffset: IndexOffset,
	}
}

// Bytes serialises the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b)

	return b
}

// WriteToSlice serialises the header into the first HeaderSize bytes of b.
func (h *Header) WriteToSlice(b []byte) {
	_ = b[HeaderSize-1]

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Version

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.TableCount)
	engine.PutUint32(b[8:12], h.IndexOffset)
	engine.PutUint32(b[12:16], h.NamesOffset)
	engine.PutUint32(b[16:20], h.PayloadOffset)
	engine.PutUint32(b[20:24], h.RawPayloadSize)
	engine.PutUint64(b[24:32], h.Checksum)
}

// Parse parses and validates a header from exactly HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize, flag validation errors, or
//     ErrInvalidIndexOffsets if the section offsets are out of order
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.CompressionType = data[2]
	h.Flag.Version = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.TableCount = engine.Uint32(data[4:8])
	h.IndexOffset = engine.Uint32(data[8:12])
	h.NamesOffset = engine.Uint32(data[12:16])
	h.PayloadOffset = engine.Uint32(data[16:20])
	h.RawPayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.validateOffsets()
}

func (h *Header) validateOffsets() error {
	if h.TableCount > MaxTableCount {
		return fmt.Errorf("%w: %d tables, maximum is %d", errs.ErrTableCountExceeded, h.TableCount, MaxTableCount)
	}
	if h.IndexOffset != IndexOffset {
		return fmt.Errorf("%w: index offset %d, expected %d", errs.ErrInvalidIndexOffsets, h.IndexOffset, IndexOffset)
	}

	indexEnd := uint64(h.IndexOffset) + uint64(h.TableCount)*IndexEntrySize
	if uint64(h.NamesOffset) != indexEnd {
		return fmt.Errorf("%w: names offset %d, index ends at %d", errs.ErrInvalidIndexOffsets, h.NamesOffset, indexEnd)
	}
	if h.PayloadOffset < h.NamesOffset {
		return fmt.Errorf("%w: payload offset %d precedes names offset %d",
			errs.ErrInvalidIndexOffsets, h.PayloadOffset, h.NamesOffset)
	}

	return nil
}

// ParseHeader parses a header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
