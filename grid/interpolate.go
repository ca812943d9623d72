package grid

import "github.com/arloliu/lut/axis"

// Interpolate blends the grid values selected by one Bounds per dimension.
//
// Bounds are consumed from the outermost dimension inwards. For a single
// remaining dimension the result is linear(g[lower], g[upper], slope); for
// more, it is the linear blend of the two sub-grid interpolations selected by
// the outer bounds. All 2^N corners contribute through the shared recursion.
//
// When every bound has slope 0 or 1 the result is exactly the stored value at
// the selected corner.
//
// The caller must supply exactly Dims() bounds with indices inside the grid;
// axis.Search on an axis of matching length guarantees this.
//
// Parameters:
//   - bounds: One Bounds per dimension, outermost first
//
// Returns:
//   - float64: Interpolated value
func (g *Grid) Interpolate(bounds []axis.Bounds) float64 {
	return g.interpolate(0, 0, bounds)
}

func (g *Grid) interpolate(dim, base int, bounds []axis.Bounds) float64 {
	b := bounds[dim]
	lower := base + b.Lower*g.strides[dim]
	upper := base + b.Upper*g.strides[dim]

	if dim == len(g.shape)-1 {
		return linear(g.data[lower], g.data[upper], b.Slope)
	}

	return linear(
		g.interpolate(dim+1, lower, bounds),
		g.interpolate(dim+1, upper, bounds),
		b.Slope,
	)
}

func linear(y0, y1, t float64) float64 {
	return y0 + t*(y1-y0)
}
