package document

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/grid"
	"github.com/arloliu/lut/table"
)

// TableDoc is the JSON form of a table.
type TableDoc struct {
	Policies []axis.Policy `json:"policies"`
	Axes     [][]float64   `json:"axes"`
	Data     any           `json:"data"`
}

// policyDoc requires both keys to be present when decoding.
type policyDoc struct {
	Lower *format.ExtrapolationMode `json:"lower"`
	Upper *format.ExtrapolationMode `json:"upper"`
}

type rawTableDoc struct {
	Policies *[]policyDoc `json:"policies"`
	Axes     *[][]float64 `json:"axes"`
	Data     any          `json:"data"`
}

// FromTable converts a table into its document form.
func FromTable(t *table.Table) TableDoc {
	axes := make([][]float64, t.Dims())
	for i := range axes {
		axes[i] = t.Axis(i).Values()
	}

	return TableDoc{
		Policies: t.Policies(),
		Axes:     axes,
		Data:     t.Grid().Nested(),
	}
}

// Table validates the document and builds the table it describes.
//
// Returns:
//   - *table.Table: Decoded table
//   - error: ErrMalformedInput for unsorted axes, a missing grid or a grid
//     nested to the wrong depth; ErrShapeMismatch if the grid shape differs
//     from the axis lengths
func (d TableDoc) Table() (*table.Table, error) {
	if len(d.Axes) == 0 {
		return nil, fmt.Errorf("%w: table document has no axes", errs.ErrMalformedInput)
	}
	if d.Data == nil {
		return nil, fmt.Errorf("%w: table document has no data", errs.ErrMalformedInput)
	}

	axes := make([]axis.Axis, len(d.Axes))
	for i, samples := range d.Axes {
		ax, err := axis.FromSorted(samples)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", i, err)
		}
		axes[i] = ax
	}

	g, err := grid.FromNested(d.Data, len(axes))
	if err != nil {
		return nil, err
	}

	return table.New(axes, g, d.Policies)
}

// MarshalTable encodes a table as a JSON document.
func MarshalTable(t *table.Table) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", errs.ErrMalformedInput)
	}

	return json.Marshal(FromTable(t))
}

// UnmarshalTable decodes a JSON table document.
//
// Parameters:
//   - data: JSON object with "policies", "axes" and "data" keys
//
// Returns:
//   - *table.Table: Decoded table
//   - error: ErrMalformedInput for invalid JSON or missing keys, otherwise
//     the validation errors of TableDoc.Table
func UnmarshalTable(data []byte) (*table.Table, error) {
	var raw rawTableDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	doc, err := raw.resolve()
	if err != nil {
		return nil, err
	}

	return doc.Table()
}

func (r rawTableDoc) resolve() (TableDoc, error) {
	if r.Policies == nil {
		return TableDoc{}, fmt.Errorf("%w: table document is missing %q", errs.ErrMalformedInput, "policies")
	}
	if r.Axes == nil {
		return TableDoc{}, fmt.Errorf("%w: table document is missing %q", errs.ErrMalformedInput, "axes")
	}
	if r.Data == nil {
		return TableDoc{}, fmt.Errorf("%w: table document is missing %q", errs.ErrMalformedInput, "data")
	}

	policies := make([]axis.Policy, len(*r.Policies))
	for i, p := range *r.Policies {
		if p.Lower == nil || p.Upper == nil {
			return TableDoc{}, fmt.Errorf("%w: policy %d needs both %q and %q", errs.ErrMalformedInput, i, "lower", "upper")
		}
		policies[i] = axis.NewPolicy(*p.Lower, *p.Upper)
	}

	return TableDoc{Policies: policies, Axes: *r.Axes, Data: r.Data}, nil
}
