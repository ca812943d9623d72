package grid

import (
	"fmt"

	"github.com/arloliu/lut/errs"
)

// FromNested creates a grid from a nested array of numbers, as produced by
// decoding a JSON document into an any value.
//
// The nesting depth must equal dims and every level must be rectangular.
// Leaves may be float64 (encoding/json) or any other Go numeric type.
//
// Parameters:
//   - v: Nested []any (or []float64 at the innermost level)
//   - dims: Expected nesting depth
//
// Returns:
//   - *Grid: Grid holding the values in row-major order
//   - error: ErrMalformedInput for wrong depth, ragged rows or non-numeric leaves
func FromNested(v any, dims int) (*Grid, error) {
	if dims < 1 {
		return nil, fmt.Errorf("%w: nested grid needs at least one dimension, got %d", errs.ErrMalformedInput, dims)
	}

	shape := make([]int, dims)
	if err := measure(v, shape, 0); err != nil {
		return nil, err
	}

	g, err := New(shape...)
	if err != nil {
		return nil, err
	}

	data := g.data[:0]
	if err := flatten(v, shape, 0, &data); err != nil {
		return nil, err
	}

	return g, nil
}

// Nested returns the grid values as nested slices, outermost dimension first.
//
// The innermost level is a []float64 and every outer level is an []any, which
// encoding/json marshals as nested arrays.
func (g *Grid) Nested() any {
	return g.nest(0, 0)
}

func (g *Grid) nest(dim, base int) any {
	extent := g.shape[dim]
	stride := g.strides[dim]

	if dim == len(g.shape)-1 {
		row := make([]float64, extent)
		copy(row, g.data[base:base+extent])

		return row
	}

	level := make([]any, extent)
	for i := range extent {
		level[i] = g.nest(dim+1, base+i*stride)
	}

	return level
}

// measure records the extent of each level from the first element path.
func measure(v any, shape []int, dim int) error {
	n, ok := length(v)
	if !ok {
		return fmt.Errorf("%w: expected an array at nesting level %d, got %T", errs.ErrMalformedInput, dim, v)
	}
	shape[dim] = n

	if dim == len(shape)-1 || n == 0 {
		return nil
	}

	return measure(index(v, 0), shape, dim+1)
}

// flatten appends the leaves in row-major order and checks the shape is rectangular.
func flatten(v any, shape []int, dim int, data *[]float64) error {
	n, ok := length(v)
	if !ok {
		return fmt.Errorf("%w: expected an array at nesting level %d, got %T", errs.ErrMalformedInput, dim, v)
	}
	if n != shape[dim] {
		return fmt.Errorf("%w: ragged grid at nesting level %d: expected %d elements, got %d",
			errs.ErrMalformedInput, dim, shape[dim], n)
	}

	for i := range n {
		elem := index(v, i)
		if dim < len(shape)-1 {
			if err := flatten(elem, shape, dim+1, data); err != nil {
				return err
			}

			continue
		}

		f, ok := toFloat(elem)
		if !ok {
			return fmt.Errorf("%w: expected a number at nesting level %d, got %T", errs.ErrMalformedInput, dim, elem)
		}
		*data = append(*data, f)
	}

	return nil
}

func length(v any) (int, bool) {
	switch s := v.(type) {
	case []any:
		return len(s), true
	case []float64:
		return len(s), true
	default:
		return 0, false
	}
}

func index(v any, i int) any {
	switch s := v.(type) {
	case []any:
		return s[i]
	case []float64:
		return s[i]
	default:
		return nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
