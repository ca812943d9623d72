// Package grid provides the N-dimensional value container of a lookup table.
//
// A Grid stores its values in one flat, row-major buffer whose length is the
// product of its extents. The dimension count is an ordinary runtime value,
// so indexing, reshaping and interpolation are implemented once for every
// dimensionality.
//
// # Layout
//
// For shape (n0, n1, ..., nk) the value at index tuple (i0, i1, ..., ik) is
// stored at offset i0*s0 + i1*s1 + ... + ik*sk, where sk = 1 and
// s(j) = s(j+1) * n(j+1). The first index therefore selects the outermost
// (slowest varying) dimension, matching the nesting order of persisted
// table documents.
package grid

import (
	"fmt"
	"slices"

	"github.com/arloliu/lut/errs"
)

// Grid is an N-dimensional, row-major container of float64 values.
//
// A Grid is not safe for concurrent mutation. Tables own a private copy of
// their grid and never mutate it, which makes concurrent reads safe.
type Grid struct {
	shape   []int
	strides []int
	data    []float64
}

// New creates a zero-filled grid with the given extents.
//
// Parameters:
//   - shape: Extent of each dimension (at least one, none negative)
//
// Returns:
//   - *Grid: Zero-filled grid
//   - error: ErrShapeMismatch if shape is empty or has a negative extent
func New(shape ...int) (*Grid, error) {
	size, err := numElements(shape)
	if err != nil {
		return nil, err
	}

	return &Grid{
		shape:   slices.Clone(shape),
		strides: computeStrides(shape),
		data:    make([]float64, size),
	}, nil
}

// FromValues creates a grid from row-major values.
//
// Parameters:
//   - shape: Extent of each dimension
//   - values: Row-major values (copied), len(values) must equal the product of shape
//
// Returns:
//   - *Grid: Grid holding a copy of values
//   - error: ErrShapeMismatch if the value count disagrees with shape
func FromValues(shape []int, values []float64) (*Grid, error) {
	size, err := numElements(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != size {
		return nil, fmt.Errorf("%w: shape %v holds %d values, got %d", errs.ErrShapeMismatch, shape, size, len(values))
	}

	return &Grid{
		shape:   slices.Clone(shape),
		strides: computeStrides(shape),
		data:    slices.Clone(values),
	}, nil
}

// Dims returns the number of dimensions.
func (g *Grid) Dims() int {
	return len(g.shape)
}

// Shape returns a copy of the grid extents.
func (g *Grid) Shape() []int {
	return slices.Clone(g.shape)
}

// Extent returns the extent of dimension i.
func (g *Grid) Extent(i int) int {
	return g.shape[i]
}

// Len returns the total number of values.
func (g *Grid) Len() int {
	return len(g.data)
}

// Values returns a copy of the row-major values.
func (g *Grid) Values() []float64 {
	return slices.Clone(g.data)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		shape:   slices.Clone(g.shape),
		strides: slices.Clone(g.strides),
		data:    slices.Clone(g.data),
	}
}

// Offset returns the flat offset of an index tuple.
//
// Returns:
//   - int: Row-major offset into the value buffer
//   - error: ErrShapeMismatch if the tuple length differs from Dims or an index is out of range
func (g *Grid) Offset(indices ...int) (int, error) {
	if len(indices) != len(g.shape) {
		return 0, fmt.Errorf("%w: %d indices for a %d-dimensional grid", errs.ErrShapeMismatch, len(indices), len(g.shape))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= g.shape[i] {
			return 0, fmt.Errorf("%w: index %d out of range [0, %d) in dimension %d", errs.ErrShapeMismatch, idx, g.shape[i], i)
		}
		offset += idx * g.strides[i]
	}

	return offset, nil
}

// At returns the value at an index tuple.
func (g *Grid) At(indices ...int) (float64, error) {
	offset, err := g.Offset(indices...)
	if err != nil {
		return 0, err
	}

	return g.data[offset], nil
}

// Set stores v at an index tuple.
func (g *Grid) Set(v float64, indices ...int) error {
	offset, err := g.Offset(indices...)
	if err != nil {
		return err
	}
	g.data[offset] = v

	return nil
}

// Equal reports whether both grids have the same shape and values.
func (g *Grid) Equal(other *Grid) bool {
	return slices.Equal(g.shape, other.shape) && slices.Equal(g.data, other.data)
}

func numElements(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: grid needs at least one dimension", errs.ErrShapeMismatch)
	}

	n := 1
	for i, extent := range shape {
		if extent < 0 {
			return 0, fmt.Errorf("%w: negative extent %d in dimension %d", errs.ErrShapeMismatch, extent, i)
		}
		n *= extent
	}

	return n, nil
}

// computeStrides calculates row-major strides: stride[i] is the product of all extents after i.
func computeStrides(shape []int) []int {
	strides := make([]int, len(shape))
	if len(shape) == 0 {
		return strides
	}

	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}

	return strides
}
