// Package encoding implements the fixed-width column codecs used inside a
// snapshot payload.
//
// Axis samples and grid values are stored as raw IEEE 754 float64 values in
// the byte order of the snapshot. Compression is applied afterwards to the
// whole payload by the compress package, so no per-column compression is done
// here.
package encoding
