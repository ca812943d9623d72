// Package axis provides the sample coordinates of one table dimension and the
// boundary search that brackets a target value on it.
//
// An Axis is a strictly increasing sequence of distinct float64 values. It is
// immutable after construction, so a single Axis can be shared by any number
// of concurrent lookups.
//
// # Boundary Search
//
// Search locates the two samples that bracket a target value and the
// fractional position of the target between them:
//
//	ax := axis.New(0, 1, 2)
//	b := axis.Search(ax, axis.Policy{}, 1.5)
//	// b.Lower == 1, b.Upper == 2, b.Slope == 0.5
//
// Targets outside the sampled range are handled by the per-boundary
// extrapolation Policy: Constant clamps to the boundary sample, Linear
// continues the slope of the first or last segment.
package axis

import (
	"fmt"
	"slices"

	"github.com/arloliu/lut/errs"
)

// Axis is an immutable, strictly increasing sequence of sample coordinates.
//
// The zero value is an empty axis.
type Axis struct {
	values []float64
}

// New creates an axis from raw samples.
//
// The samples may be unordered and may contain duplicates; the resulting axis
// holds the sorted set of distinct values. An empty input yields an empty axis.
//
// Parameters:
//   - samples: Raw sample coordinates
//
// Returns:
//   - Axis: Sorted, deduplicated axis
func New(samples ...float64) Axis {
	values := slices.Clone(samples)
	slices.Sort(values)

	return Axis{values: slices.Compact(values)}
}

// FromSorted creates an axis from values that are already strictly increasing.
//
// This is used when decoding persisted tables, where the stored axis order is
// authoritative and must not be silently repaired.
//
// Parameters:
//   - values: Strictly increasing coordinates (copied)
//
// Returns:
//   - Axis: Axis holding a copy of values
//   - error: ErrMalformedInput if values are not strictly increasing
func FromSorted(values []float64) (Axis, error) {
	for i := 1; i < len(values); i++ {
		// Written as !(a < b) so NaN samples are rejected as well.
		if !(values[i-1] < values[i]) {
			return Axis{}, fmt.Errorf("%w: axis values not strictly increasing at index %d (%v, %v)",
				errs.ErrMalformedInput, i, values[i-1], values[i])
		}
	}

	return Axis{values: slices.Clone(values)}, nil
}

// Len returns the number of samples on the axis.
func (a Axis) Len() int {
	return len(a.values)
}

// IsEmpty returns true if the axis has no samples.
func (a Axis) IsEmpty() bool {
	return len(a.values) == 0
}

// At returns the sample at index i. It panics if i is out of range.
func (a Axis) At(i int) float64 {
	return a.values[i]
}

// First returns the smallest sample. It panics on an empty axis.
func (a Axis) First() float64 {
	return a.values[0]
}

// Last returns the largest sample. It panics on an empty axis.
func (a Axis) Last() float64 {
	return a.values[len(a.values)-1]
}

// Values returns a copy of the axis samples.
func (a Axis) Values() []float64 {
	return slices.Clone(a.values)
}

// Index returns the index of the sample exactly equal to v.
//
// Returns:
//   - int: Index of v on the axis
//   - bool: false if v is not a sample of the axis
func (a Axis) Index(v float64) (int, bool) {
	return slices.BinarySearch(a.values, v)
}

// Equal reports whether both axes hold the same samples.
func (a Axis) Equal(other Axis) bool {
	return slices.Equal(a.values, other.values)
}
