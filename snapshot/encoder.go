package snapshot

import (
	"fmt"

	"github.com/arloliu/lut/compress"
	"github.com/arloliu/lut/encoding"
	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/collision"
	"github.com/arloliu/lut/internal/hash"
	"github.com/arloliu/lut/internal/options"
	"github.com/arloliu/lut/internal/pool"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/section"

	ienc "github.com/arloliu/lut/internal/encoding"
)

// Encode writes every table of r into a snapshot.
//
// Tables are written in (dims, name) order, so encoding the same registry
// twice yields identical bytes.
//
// Parameters:
//   - r: Registry to encode
//   - opts: Encoding options (WithCompression, WithLittleEndian, WithBigEndian)
//
// Returns:
//   - []byte: Snapshot bytes
//   - error: ErrHashCollision if two names of the same dimension count share
//     an ID, ErrTableCountExceeded if r holds more than section.MaxTableCount
//     tables, or a compression error
func Encode(r *registry.Registry, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	engine := cfg.engine

	if n := r.Len(); n > section.MaxTableCount {
		return nil, fmt.Errorf("%w: %d tables, maximum is %d", errs.ErrTableCountExceeded, n, section.MaxTableCount)
	}

	payload := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(payload)

	floats := encoding.NewFloat64RawEncoder(engine)
	defer floats.Finish()

	tracker := collision.NewTracker()
	entries := make([]section.IndexEntry, 0, r.Len())

	for e, t := range r.All() {
		id, err := tracker.Track(e.Dims, e.Name)
		if err != nil {
			return nil, err
		}

		offset := payload.Len()
		if uint64(offset) > section.MaxPayloadSize {
			return nil, fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrMalformedInput, uint64(section.MaxPayloadSize))
		}
		if err := appendTable(payload, t, floats, engine); err != nil {
			return nil, fmt.Errorf("table %q: %w", e.Name, err)
		}

		entries = append(entries, section.NewIndexEntry(id, uint16(e.Dims), uint32(offset))) //nolint: gosec
	}

	if payload.Len() > compress.MaxDecompressedSize {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds %d", errs.ErrMalformedInput, payload.Len(), compress.MaxDecompressedSize)
	}

	names, err := ienc.EncodeTableNames(tracker.Names(), engine)
	if err != nil {
		return nil, err
	}

	packed, _, err := compress.Compress(cfg.compression, payload.Bytes())
	if err != nil {
		return nil, err
	}

	header := section.NewHeader()
	header.Flag.SetBigEndian(endian.IsBigEndian(engine))
	header.Flag.SetCompression(cfg.compression)
	header.TableCount = uint32(len(entries))                                              //nolint: gosec
	header.NamesOffset = header.IndexOffset + uint32(len(entries)*section.IndexEntrySize) //nolint: gosec
	header.PayloadOffset = header.NamesOffset + uint32(len(names))                        //nolint: gosec
	header.RawPayloadSize = uint32(payload.Len())                                         //nolint: gosec

	out := make([]byte, int(header.PayloadOffset)+len(packed))
	offset := int(header.IndexOffset)
	for _, entry := range entries {
		offset = entry.WriteToSlice(out, offset, engine)
	}
	offset += copy(out[offset:], names)
	copy(out[offset:], packed)

	header.Checksum = hash.Checksum(out[section.HeaderSize:])
	header.WriteToSlice(out)

	return out, nil
}
