package section

import (
	"fmt"

	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/errs"
)

// IndexEntry locates one table in the snapshot payload.
type IndexEntry struct {
	// ID is the xxHash64 of the table name.
	//
	// Offset: 0, Size: 8 bytes
	ID uint64
	// Dims is the table dimension count.
	//
	// Offset: 8, Size: 2 bytes
	Dims uint16
	// Offset is the byte offset of the table in the uncompressed payload.
	//
	// Offset: 12, Size: 4 bytes
	Offset uint32
}

// NewIndexEntry creates an index entry.
func NewIndexEntry(id uint64, dims uint16, offset uint32) IndexEntry {
	return IndexEntry{ID: id, Dims: dims, Offset: offset}
}

// Bytes returns the 16-byte encoding of the entry.
func (e IndexEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [IndexEntrySize]byte
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes the entry at data[offset:] and returns the next offset.
func (e IndexEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.ID)
	engine.PutUint16(data[offset+8:offset+10], e.Dims)
	engine.PutUint16(data[offset+10:offset+12], 0)
	engine.PutUint32(data[offset+12:offset+16], e.Offset)

	return offset + IndexEntrySize
}

// ParseIndexEntry parses an entry from the first IndexEntrySize bytes of data.
//
// Returns:
//   - IndexEntry: Parsed entry
//   - error: ErrInvalidIndexEntrySize if data is too short or the reserved
//     field is not zero
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidIndexEntrySize, len(data))
	}
	if reserved := engine.Uint16(data[10:12]); reserved != 0 {
		return IndexEntry{}, fmt.Errorf("%w: reserved field is 0x%04x", errs.ErrInvalidIndexEntrySize, reserved)
	}

	return IndexEntry{
		ID:     engine.Uint64(data[0:8]),
		Dims:   engine.Uint16(data[8:10]),
		Offset: engine.Uint32(data[12:16]),
	}, nil
}
