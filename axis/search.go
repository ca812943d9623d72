package axis

import (
	"sort"

	"github.com/arloliu/lut/format"
)

// Policy holds the extrapolation rule for each boundary of one axis.
//
// The zero value clamps at both ends.
type Policy struct {
	Lower format.ExtrapolationMode `json:"lower"`
	Upper format.ExtrapolationMode `json:"upper"`
}

// NewPolicy creates a policy with distinct lower and upper rules.
func NewPolicy(lower, upper format.ExtrapolationMode) Policy {
	return Policy{Lower: lower, Upper: upper}
}

// UniformPolicy creates a policy applying the same rule at both boundaries.
func UniformPolicy(mode format.ExtrapolationMode) Policy {
	return Policy{Lower: mode, Upper: mode}
}

// Valid reports whether both boundary modes are defined.
func (p Policy) Valid() bool {
	return p.Lower.Valid() && p.Upper.Valid()
}

// Bounds is the result of a boundary search on one axis.
//
// Lower and Upper are the bracketing sample indices and Slope is the
// fractional position of the target between them. Slope lies in [0, 1] for
// targets inside the sampled range; it is below 0 or above 1 only for
// linearly extrapolated targets.
type Bounds struct {
	Lower int
	Upper int
	Slope float64
}

// Search locates the samples of ax bracketing target.
//
// Rules, applied in order:
//   - empty axis: {0, 0, 0}
//   - target >= last sample: both indices at the last sample; with a Linear
//     upper policy the lower index steps back one to reuse the final segment
//   - target < first sample: both indices at 0; with a Linear lower policy the
//     upper index steps forward one to reuse the first segment
//   - target > first sample: Upper is the first sample greater than target,
//     Lower the one before it
//   - target == first sample: no branch applies and the zero bounds are kept,
//     which already select sample 0
//
// Slope is (target - ax[Lower]) / (ax[Upper] - ax[Lower]) when the indices
// differ and 0 otherwise. Non-finite targets are not guarded; a NaN target
// fails every comparison and yields the zero bounds.
//
// Parameters:
//   - ax: Axis to search (may be empty)
//   - policy: Extrapolation rule for each boundary
//   - target: Coordinate to locate
//
// Returns:
//   - Bounds: Bracketing indices and interpolation fraction
func Search(ax Axis, policy Policy, target float64) Bounds {
	var b Bounds

	values := ax.values
	n := len(values)
	if n == 0 {
		return b
	}

	last := n - 1
	if target >= values[last] {
		b.Upper = last
		b.Lower = last
		if policy.Upper == format.Linear {
			b.Lower--
		}
	} else if target < values[0] {
		b.Lower = 0
		b.Upper = 0
		if policy.Lower == format.Linear {
			b.Upper++
		}
	} else if target > values[0] {
		b.Upper = sort.Search(n, func(i int) bool { return values[i] > target })
		b.Lower = b.Upper - 1
	}

	// A single-sample axis has no segment to extrapolate along.
	b.Lower = clamp(b.Lower, last)
	b.Upper = clamp(b.Upper, last)

	if b.Lower != b.Upper {
		lowerValue := values[b.Lower]
		upperValue := values[b.Upper]
		b.Slope = (target - lowerValue) / (upperValue - lowerValue)
	}

	return b
}

func clamp(i, last int) int {
	return max(0, min(i, last))
}
