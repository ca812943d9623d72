// Package snapshot encodes a registry into a compact binary image and back.
//
// A snapshot is the binary counterpart of a JSON registry document: tables
// keep their names, dimension counts, policies, axes and values exactly, but
// floats are stored as raw IEEE 754 words and the table payload can be
// compressed. A checksum over everything after the header and a hash of each
// table name guard against corruption.
//
// # Basic Usage
//
//	data, err := snapshot.Encode(reg, snapshot.WithCompression(format.CompressionZstd))
//	if err != nil {
//		return err
//	}
//
//	restored, err := snapshot.Decode(data)
//
// Decode accepts registry options, so the decoded registry can be given a
// logger or a different dimension limit:
//
//	restored, err := snapshot.Decode(data, registry.WithMaxDims(8))
//
// # Table payload
//
// Each table in the uncompressed payload is laid out as:
//
//	[policies: dims bytes] [axis lengths: dims x uint32] [axis samples: float64...] [grid: float64...]
//
// A policy byte holds the lower-bound mode in its low nibble and the
// upper-bound mode in its high nibble. See package section for the header and
// index layouts.
package snapshot
