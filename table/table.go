// Package table provides N-dimensional multilinear lookup tables.
//
// A Table owns N axes, one grid whose shape matches the axis lengths, and one
// extrapolation policy per axis. Tables are validated when they are built and
// never mutated afterwards, so any number of goroutines may call Lookup on the
// same Table concurrently.
//
// # Basic Usage
//
//	x := axis.New(0, 1)
//	y := axis.New(0, 1)
//	g, _ := grid.FromValues([]int{2, 2}, []float64{0, 1, 1, 2})
//	t, _ := table.NewUniform([]axis.Axis{x, y}, g, axis.Policy{})
//
//	v, _ := t.Lookup(0.5, 0.5) // 1.0
//
// Lookup with the wrong number of coordinates fails with errs.ErrArityMismatch;
// it never truncates or pads the coordinates.
package table

import (
	"fmt"
	"slices"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/grid"
)

// maxStackDims is the largest dimension count whose per-lookup bounds are
// kept in a fixed-size array instead of a heap-allocated slice.
const maxStackDims = 8

// Table is an immutable N-dimensional lookup table.
type Table struct {
	axes     []axis.Axis
	policies []axis.Policy
	grid     *grid.Grid
}

// New creates a table from its axes, grid and per-axis policies.
//
// The grid is copied, so later changes to g do not affect the table.
//
// Parameters:
//   - axes: One axis per dimension, each non-empty
//   - g: Grid whose shape equals the axis lengths
//   - policies: One extrapolation policy per axis
//
// Returns:
//   - *Table: Validated table
//   - error: ErrMalformedInput if there are no axes, the policy count differs
//     from the axis count or a policy is undefined; ErrShapeMismatch if the
//     grid shape disagrees with the axes or an axis is empty
func New(axes []axis.Axis, g *grid.Grid, policies []axis.Policy) (*Table, error) {
	if err := validate(axes, g, policies); err != nil {
		return nil, err
	}

	return &Table{
		axes:     slices.Clone(axes),
		policies: slices.Clone(policies),
		grid:     g.Clone(),
	}, nil
}

// NewUniform creates a table applying the same policy to every axis.
func NewUniform(axes []axis.Axis, g *grid.Grid, policy axis.Policy) (*Table, error) {
	policies := make([]axis.Policy, len(axes))
	for i := range policies {
		policies[i] = policy
	}

	return New(axes, g, policies)
}

func validate(axes []axis.Axis, g *grid.Grid, policies []axis.Policy) error {
	if len(axes) == 0 {
		return fmt.Errorf("%w: table needs at least one axis", errs.ErrMalformedInput)
	}
	if len(policies) != len(axes) {
		return fmt.Errorf("%w: %d policies for %d axes", errs.ErrMalformedInput, len(policies), len(axes))
	}
	for i, p := range policies {
		if !p.Valid() {
			return fmt.Errorf("%w: undefined extrapolation policy %+v on axis %d", errs.ErrMalformedInput, p, i)
		}
	}
	if g == nil {
		return fmt.Errorf("%w: table has no grid", errs.ErrShapeMismatch)
	}
	if g.Dims() != len(axes) {
		return fmt.Errorf("%w: %d-dimensional grid for %d axes", errs.ErrShapeMismatch, g.Dims(), len(axes))
	}
	for i, ax := range axes {
		if ax.IsEmpty() {
			return fmt.Errorf("%w: axis %d is empty", errs.ErrShapeMismatch, i)
		}
		if g.Extent(i) != ax.Len() {
			return fmt.Errorf("%w: grid extent %d in dimension %d, axis has %d samples",
				errs.ErrShapeMismatch, g.Extent(i), i, ax.Len())
		}
	}

	return nil
}

// Dims returns the number of dimensions of the table.
func (t *Table) Dims() int {
	return len(t.axes)
}

// Lookup evaluates the table at a coordinate.
//
// Each coordinate is located on its axis with axis.Search, then the grid is
// blended across all axes. The per-axis bounds live on the caller's stack,
// so concurrent lookups never share working state.
//
// Parameters:
//   - values: One coordinate per dimension, in axis order
//
// Returns:
//   - float64: Interpolated (or extrapolated) value
//   - error: ErrArityMismatch if len(values) != Dims()
func (t *Table) Lookup(values ...float64) (float64, error) {
	n := len(t.axes)
	if len(values) != n {
		return 0, fmt.Errorf("%w: %d-dimensional table looked up with %d coordinates", errs.ErrArityMismatch, n, len(values))
	}

	var stack [maxStackDims]axis.Bounds
	var bounds []axis.Bounds
	if n <= maxStackDims {
		bounds = stack[:n]
	} else {
		bounds = make([]axis.Bounds, n)
	}

	for i, v := range values {
		bounds[i] = axis.Search(t.axes[i], t.policies[i], v)
	}

	return t.grid.Interpolate(bounds), nil
}

// MustLookup is like Lookup but panics on an arity mismatch.
func (t *Table) MustLookup(values ...float64) float64 {
	v, err := t.Lookup(values...)
	if err != nil {
		panic(err)
	}

	return v
}

// Axis returns the axis of dimension i.
func (t *Table) Axis(i int) axis.Axis {
	return t.axes[i]
}

// Axes returns a copy of the table axes.
func (t *Table) Axes() []axis.Axis {
	return slices.Clone(t.axes)
}

// Policy returns the extrapolation policy of dimension i.
func (t *Table) Policy(i int) axis.Policy {
	return t.policies[i]
}

// Policies returns a copy of the per-axis policies.
func (t *Table) Policies() []axis.Policy {
	return slices.Clone(t.policies)
}

// Shape returns the grid extents, which equal the axis lengths.
func (t *Table) Shape() []int {
	return t.grid.Shape()
}

// Value returns the stored grid value at an index tuple.
func (t *Table) Value(indices ...int) (float64, error) {
	return t.grid.At(indices...)
}

// Grid returns a copy of the table grid.
func (t *Table) Grid() *grid.Grid {
	return t.grid.Clone()
}

// Equal reports whether both tables have identical axes, policies and values.
func (t *Table) Equal(other *Table) bool {
	if t.Dims() != other.Dims() {
		return false
	}
	for i := range t.axes {
		if !t.axes[i].Equal(other.axes[i]) || t.policies[i] != other.policies[i] {
			return false
		}
	}

	return t.grid.Equal(other.grid)
}
