// Package section defines the fixed-size sections of a binary registry
// snapshot.
//
// # Layout
//
//	+-------------------+  offset 0
//	| Header (32 bytes) |
//	+-------------------+  Header.IndexOffset (always 32)
//	| Index entries     |  TableCount x 16 bytes
//	+-------------------+  Header.NamesOffset
//	| Names payload     |  uint16 count, then uint16-length-prefixed names
//	+-------------------+  Header.PayloadOffset
//	| Table payload     |  compressed with Header.Flag.Compression()
//	+-------------------+
//
// # Header
//
//	offset size field
//	0      2    options: bit 1 byte order, bits 4-15 magic number
//	2      1    compression type
//	3      1    format version
//	4      4    table count
//	8      4    index offset
//	12     4    names offset
//	16     4    payload offset
//	20     4    uncompressed payload size
//	24     8    xxHash64 of every byte after the header
//
// The options field is always little-endian so the byte order of the rest of
// the snapshot can be read from it. All other fields use the byte order the
// options field declares.
//
// # Index entry
//
//	offset size field
//	0      8    xxHash64 of the table name
//	8      2    dimension count
//	10     2    reserved, must be zero
//	12     4    offset of the table in the uncompressed payload
package section
