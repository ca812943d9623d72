package snapshot

import (
	"fmt"

	"github.com/arloliu/lut/compress"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/internal/collision"
	"github.com/arloliu/lut/internal/hash"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/section"

	ienc "github.com/arloliu/lut/internal/encoding"
)

// Info summarises a snapshot header.
type Info struct {
	Tables         int
	Compression    format.CompressionType
	BigEndian      bool
	RawPayloadSize int
	PayloadSize    int
	Size           int
}

// Inspect parses and validates the header of a snapshot without decoding
// any table.
func Inspect(data []byte) (Info, error) {
	header, err := parse(data)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Tables:         int(header.TableCount),
		Compression:    header.Flag.Compression(),
		BigEndian:      header.Flag.IsBigEndian(),
		RawPayloadSize: int(header.RawPayloadSize),
		PayloadSize:    len(data) - int(header.PayloadOffset),
		Size:           len(data),
	}, nil
}

// Decode restores a registry from a snapshot written by Encode.
//
// Parameters:
//   - data: Snapshot bytes
//   - opts: Options for the new registry (WithMaxDims, WithLogger)
//
// Returns:
//   - *registry.Registry: Registry holding every table of the snapshot
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber or
//     ErrInvalidHeaderFlags for a bad header, ErrChecksumMismatch if the body
//     was modified, ErrHashMismatch if a name does not match its index entry,
//     ErrMalformedInput for truncated tables, or registry errors such as
//     ErrDimensionUnsupported
func Decode(data []byte, opts ...registry.Option) (*registry.Registry, error) {
	reg, err := registry.New(opts...)
	if err != nil {
		return nil, err
	}

	header, err := parse(data)
	if err != nil {
		return nil, err
	}
	engine := header.Flag.GetEndianEngine()

	count := int(header.TableCount)
	entries := make([]section.IndexEntry, count)
	ids := make([]uint64, count)
	for i := range count {
		start := int(header.IndexOffset) + i*section.IndexEntrySize
		entry, err := section.ParseIndexEntry(data[start:], engine)
		if err != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
		entries[i] = entry
		ids[i] = entry.ID
	}

	namesData := data[header.NamesOffset:header.PayloadOffset]
	names, n, err := ienc.DecodeTableNames(namesData, engine)
	if err != nil {
		return nil, err
	}
	if n != len(namesData) {
		return nil, fmt.Errorf("%w: %d trailing bytes after names", errs.ErrInvalidNamesPayload, len(namesData)-n)
	}
	if err := ienc.VerifyTableNameHashes(names, ids, hash.ID); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[header.PayloadOffset:], int(header.RawPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	tracker := collision.NewTracker()
	for i, entry := range entries {
		if _, err := tracker.Track(int(entry.Dims), names[i]); err != nil {
			return nil, err
		}
		if int(entry.Offset) > len(payload) {
			return nil, fmt.Errorf("%w: table %q at offset %d beyond payload of %d bytes",
				errs.ErrMalformedInput, names[i], entry.Offset, len(payload))
		}

		t, err := decodeTable(payload[entry.Offset:], int(entry.Dims), engine)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", names[i], err)
		}
		if err := reg.Emplace(names[i], t); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func parse(data []byte) (section.Header, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, err
	}

	if uint64(header.PayloadOffset) > uint64(len(data)) {
		return section.Header{}, fmt.Errorf("%w: payload offset %d beyond end of %d-byte snapshot",
			errs.ErrInvalidIndexOffsets, header.PayloadOffset, len(data))
	}
	if got := hash.Checksum(data[section.HeaderSize:]); got != header.Checksum {
		return section.Header{}, fmt.Errorf("%w: header has 0x%016x, body hashes to 0x%016x",
			errs.ErrChecksumMismatch, header.Checksum, got)
	}

	return header, nil
}
