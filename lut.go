// Package lut provides N-dimensional lookup tables with multilinear
// interpolation, grouped in a registry keyed by name and dimension count.
//
// A table samples a function on a rectangular grid: one strictly increasing
// axis per dimension, one value per grid point, and a per-axis policy that
// decides how targets outside an axis are handled (clamped to the boundary,
// or extrapolated along the boundary segment).
//
// # Core Features
//
//   - Multilinear interpolation across any number of dimensions
//   - Per-axis Constant or Linear extrapolation, chosen separately per side
//   - Registry keyed by (dimension count, name), safe for concurrent lookups
//   - JSON documents for tables and registries
//   - CSV import of scattered (x1, ..., xN, value) rows
//   - Compact binary snapshots with optional Zstd, S2 or LZ4 compression
//
// # Basic Usage
//
// Building a table and looking it up:
//
//	x := axis.New(0, 1, 2)
//	y := axis.New(0, 10)
//	g, _ := grid.FromValues([]int{3, 2}, []float64{0, 1, 2, 3, 4, 5})
//	t, _ := table.NewUniform([]axis.Axis{x, y}, g, axis.UniformPolicy(format.Linear))
//
//	reg, _ := lut.NewRegistry()
//	_ = reg.Emplace("torque", t)
//
//	v, _ := reg.Lookup("torque", 1.5, 5) // 3.5
//
// Persisting the registry:
//
//	_ = lut.SaveRegistryFile("tables.json", reg)
//	data, _ := lut.EncodeSnapshot(reg)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the registry,
// document, csvtable and snapshot packages, simplifying the most common use
// cases. For fine-grained control, use those packages directly.
package lut

import (
	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/csvtable"
	"github.com/arloliu/lut/document"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/internal/hash"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/snapshot"
	"github.com/arloliu/lut/table"
)

// NewRegistry creates an empty table registry.
//
// Parameters:
//   - opts: Optional configuration functions (see registry.Option)
//
// Returns:
//   - *registry.Registry: The created registry
//   - error: An error if an option is invalid
//
// Available options:
//   - registry.WithMaxDims(n)
//   - registry.WithLogger(logger)
//
// Example:
//
//	reg, err := lut.NewRegistry(registry.WithMaxDims(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewRegistry(opts ...registry.Option) (*registry.Registry, error) {
	return registry.New(opts...)
}

// LoadTableFile reads a single table from a JSON document.
//
// The document holds "policies", "axes" and "data" keys; see package document
// for the layout.
func LoadTableFile(path string) (*table.Table, error) {
	return document.LoadTableFile(path)
}

// SaveTableFile writes t as a JSON document.
func SaveTableFile(path string, t *table.Table) error {
	return document.SaveTableFile(path, t)
}

// LoadRegistryFile reads a registry from a JSON registry document.
//
// Parameters:
//   - path: Path of a document written by SaveRegistryFile
//   - opts: Options for the new registry
//
// Returns:
//   - *registry.Registry: Registry holding every table of the document
//   - error: ErrMalformedInput for invalid documents, or registry errors
//
// Example:
//
//	reg, err := lut.LoadRegistryFile("combined.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := reg.Lookup("table2d", 2.0, 0.1)
func LoadRegistryFile(path string, opts ...registry.Option) (*registry.Registry, error) {
	return document.LoadRegistryFile(path, opts...)
}

// SaveRegistryFile writes every table of r as a JSON registry document.
func SaveRegistryFile(path string, r *registry.Registry) error {
	return document.SaveRegistryFile(path, r)
}

// LoadCSVTable builds a dims-dimensional table from a CSV file with one
// column per axis followed by a value column.
//
// Every axis uses Constant extrapolation unless policies are given; see
// csvtable.ToTable.
//
// Example:
//
//	t, err := lut.LoadCSVTable("2d/data.csv", 2)
func LoadCSVTable(path string, dims int, policies ...axis.Policy) (*table.Table, error) {
	c, err := csvtable.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return csvtable.ToTable(c, dims, policies...)
}

// EncodeSnapshot encodes r as a binary snapshot with recommended settings.
//
// The default configuration uses little-endian byte order and Zstd payload
// compression. Pass snapshot options to override them.
//
// Example:
//
//	data, err := lut.EncodeSnapshot(reg, snapshot.WithCompression(format.CompressionS2))
func EncodeSnapshot(r *registry.Registry, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Encode(r, opts...)
}

// EncodeSnapshotUncompressed encodes r as a binary snapshot without payload
// compression.
func EncodeSnapshotUncompressed(r *registry.Registry) ([]byte, error) {
	return snapshot.Encode(r, snapshot.WithCompression(format.CompressionNone))
}

// DecodeSnapshot restores a registry from a binary snapshot.
//
// Parameters:
//   - data: Snapshot bytes from EncodeSnapshot
//   - opts: Options for the new registry
//
// Returns:
//   - *registry.Registry: Registry holding every table of the snapshot
//   - error: Header, checksum or payload errors; see snapshot.Decode
func DecodeSnapshot(data []byte, opts ...registry.Option) (*registry.Registry, error) {
	return snapshot.Decode(data, opts...)
}

// TableID returns the 64-bit identifier of a table name, as stored in
// snapshot index entries.
//
// It uses xxHash64, so identical names always map to the same ID.
func TableID(name string) uint64 {
	return hash.ID(name)
}
