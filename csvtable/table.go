package csvtable

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/grid"
	"github.com/arloliu/lut/table"
)

// ToTable builds a dims-dimensional table from c.
//
// Column i < dims supplies the samples of axis i: its values are sorted and
// duplicates removed. The last column supplies the grid values. Each row
// writes its value at the grid cell addressed by its coordinates; when
// several rows address the same cell the last one wins, and cells no row
// addresses stay 0.
//
// Parameters:
//   - c: Parsed CSV
//   - dims: Number of axis columns
//   - policies: None for Constant on every axis, one applied to every axis,
//     or exactly dims
//
// Returns:
//   - *table.Table: Table built from the rows
//   - error: ErrMalformedInput if there are fewer than dims+1 columns, a
//     cell is not a number, an axis cell is NaN or the policy count is wrong;
//     any table construction error
func ToTable(c *CSV, dims int, policies ...axis.Policy) (*table.Table, error) {
	if dims < 1 {
		return nil, fmt.Errorf("%w: table needs at least one dimension, got %d", errs.ErrMalformedInput, dims)
	}
	if len(c.Headers) < dims+1 {
		return nil, fmt.Errorf("%w: %d-dimensional table needs at least %d columns, got %d",
			errs.ErrMalformedInput, dims, dims+1, len(c.Headers))
	}

	resolved, err := resolvePolicies(dims, policies)
	if err != nil {
		return nil, err
	}

	coords := make([][]float64, dims)
	axes := make([]axis.Axis, dims)
	shape := make([]int, dims)
	for i := range dims {
		values, err := c.column(i)
		if err != nil {
			return nil, err
		}
		for row, v := range values {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: row %d, column %q: NaN is not a valid axis value",
					errs.ErrMalformedInput, row+2, c.Headers[i])
			}
		}
		coords[i] = values
		axes[i] = axis.New(values...)
		shape[i] = axes[i].Len()
	}

	values, err := c.column(len(c.Headers) - 1)
	if err != nil {
		return nil, err
	}

	g, err := grid.New(shape...)
	if err != nil {
		return nil, err
	}

	idx := make([]int, dims)
	for row, v := range values {
		for i := range dims {
			idx[i], _ = axes[i].Index(coords[i][row])
		}
		if err := g.Set(v, idx...); err != nil {
			return nil, err
		}
	}

	return table.New(axes, g, resolved)
}

// FromTable lists every grid cell of t as one row, in row-major order.
//
// Parameters:
//   - t: Source table
//   - headers: One header per axis followed by the value header
//
// Returns:
//   - *CSV: Comma-delimited CSV holding the table cells
//   - error: ErrMalformedInput if len(headers) != t.Dims()+1
func FromTable(t *table.Table, headers []string) (*CSV, error) {
	dims := t.Dims()
	if len(headers) != dims+1 {
		return nil, fmt.Errorf("%w: %d-dimensional table needs %d headers, got %d",
			errs.ErrMalformedInput, dims, dims+1, len(headers))
	}

	g := t.Grid()
	values := g.Values()
	shape := g.Shape()

	out := &CSV{
		Headers:   append([]string(nil), headers...),
		Rows:      make([][]string, 0, len(values)),
		Delimiter: ',',
	}

	idx := make([]int, dims)
	for _, v := range values {
		row := make([]string, dims+1)
		for i, j := range idx {
			row[i] = formatFloat(t.Axis(i).At(j))
		}
		row[dims] = formatFloat(v)
		out.Rows = append(out.Rows, row)

		for d := dims - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}

	return out, nil
}

func resolvePolicies(dims int, policies []axis.Policy) ([]axis.Policy, error) {
	switch len(policies) {
	case 0:
		return uniform(dims, axis.UniformPolicy(format.Constant)), nil
	case 1:
		return uniform(dims, policies[0]), nil
	case dims:
		return policies, nil
	default:
		return nil, fmt.Errorf("%w: %d policies for %d axes", errs.ErrMalformedInput, len(policies), dims)
	}
}

func uniform(dims int, p axis.Policy) []axis.Policy {
	out := make([]axis.Policy, dims)
	for i := range out {
		out[i] = p
	}

	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
