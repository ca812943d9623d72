// Package errs defines the sentinel errors shared by all lut packages.
//
// Call sites wrap these values with additional context using
// fmt.Errorf("%w: ...", errs.ErrX), so callers should test for them with
// errors.Is rather than comparing error strings.
package errs

import "errors"

// Table and registry errors.
var (
	// ErrMissingKey is returned when a registry lookup names a (dimension, name)
	// pair that has not been registered.
	ErrMissingKey = errors.New("table not found")

	// ErrShapeMismatch is returned when grid extents are inconsistent with the
	// axis lengths of a table, or when a grid index tuple is out of range.
	ErrShapeMismatch = errors.New("grid shape mismatch")

	// ErrMalformedInput is returned when a persisted document or tabular input
	// is missing required fields, has the wrong arity or cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDimensionUnsupported is returned when a dimension count falls outside
	// the range supported by a registry.
	ErrDimensionUnsupported = errors.New("dimension unsupported")

	// ErrArityMismatch is returned when a table lookup is called with a number
	// of coordinates different from the table's dimension.
	ErrArityMismatch = errors.New("coordinate count mismatch")

	// ErrInvalidTableName is returned when a table is registered or encoded with
	// an empty or oversized name.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrRegistryFrozen is returned when a frozen registry is mutated.
	ErrRegistryFrozen = errors.New("registry is frozen")
)

// Snapshot format errors.
var (
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidMagicNumber    = errors.New("invalid magic number")
	ErrInvalidHeaderFlags    = errors.New("invalid header flags")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrInvalidIndexOffsets   = errors.New("invalid index offsets")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrHashCollision         = errors.New("table ID hash collision")
	ErrHashMismatch          = errors.New("table name hash mismatch")
	ErrInvalidNamesCount     = errors.New("invalid table names count")
	ErrInvalidNamesPayload   = errors.New("invalid table names payload")
	ErrTableCountExceeded    = errors.New("table count exceeded")
)
