// Package encoding implements the length-prefixed table names payload of a
// snapshot.
package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/errs"
)

// EncodeTableNames encodes names into a length-prefixed payload.
//
// Format: [Count: uint16] [Len1: uint16][Name1: UTF-8] [Len2: uint16][Name2: UTF-8] ...
//
// Parameters:
//   - names: Table names, in index order
//   - engine: Byte order of the length fields
//
// Returns:
//   - []byte: Encoded payload
//   - error: ErrInvalidNamesCount for more than 65535 names,
//     ErrInvalidTableName for a name longer than 65535 bytes
func EncodeTableNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d names exceed maximum %d", errs.ErrInvalidNamesCount, len(names), math.MaxUint16)
	}

	size := 2
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: name of %d bytes exceeds maximum %d", errs.ErrInvalidTableName, len(name), math.MaxUint16)
		}
		size += 2 + len(name)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint: gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeTableNames decodes a payload written by EncodeTableNames.
//
// Returns:
//   - []string: Decoded names, in payload order
//   - int: Number of bytes consumed
//   - error: ErrInvalidNamesPayload if data is truncated
func DecodeTableNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read names count (need 2 bytes, have %d)", errs.ErrInvalidNamesPayload, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2

	names := make([]string, count)
	for i := range count {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of name %d at offset %d", errs.ErrInvalidNamesPayload, i, offset)
		}
		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at offset %d, have %d",
				errs.ErrInvalidNamesPayload, i, n, offset, len(data)-offset)
		}
		names[i] = string(data[offset : offset+n])
		offset += n
	}

	return names, offset, nil
}

// VerifyTableNameHashes checks that hashFunc(names[i]) == ids[i] for every i.
//
// Returns:
//   - error: ErrInvalidNamesCount if the lengths differ, ErrHashMismatch
//     naming the first mismatching entry
func VerifyTableNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d index entries", errs.ErrInvalidNamesCount, len(names), len(ids))
	}

	for i, name := range names {
		if got := hashFunc(name); got != ids[i] {
			return fmt.Errorf("%w: name %q at index %d hashes to 0x%016x, index holds 0x%016x",
				errs.ErrHashMismatch, name, i, got, ids[i])
		}
	}

	return nil
}
