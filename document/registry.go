package document

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/registry"
)

type entryDoc struct {
	Name  string   `json:"name"`
	Dims  int      `json:"dims"`
	Table TableDoc `json:"table"`
}

type rawEntryDoc struct {
	Name  *string      `json:"name"`
	Dims  *int         `json:"dims"`
	Table *rawTableDoc `json:"table"`
}

// MarshalRegistry encodes every table of r as a JSON registry document.
func MarshalRegistry(r *registry.Registry) ([]byte, error) {
	entries := make([]entryDoc, 0, r.Len())
	for e, t := range r.All() {
		entries = append(entries, entryDoc{Name: e.Name, Dims: e.Dims, Table: FromTable(t)})
	}

	return json.Marshal(entries)
}

// UnmarshalRegistry decodes a JSON registry document into a new registry.
//
// Entries are inserted in document order, so a later entry with the same
// name and dimension count replaces an earlier one.
//
// Parameters:
//   - data: JSON array of {"name", "dims", "table"} objects
//   - opts: Options for the new registry (WithMaxDims, WithLogger)
//
// Returns:
//   - *registry.Registry: Registry holding every decoded table
//   - error: ErrDimensionUnsupported if an entry's dims is outside the
//     registry range, ErrMalformedInput if dims disagrees with the table or
//     the document is invalid, or any table decoding error
func UnmarshalRegistry(data []byte, opts ...registry.Option) (*registry.Registry, error) {
	reg, err := registry.New(opts...)
	if err != nil {
		return nil, err
	}

	var raw []rawEntryDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	for i, entry := range raw {
		if entry.Name == nil || entry.Dims == nil || entry.Table == nil {
			return nil, fmt.Errorf("%w: registry entry %d needs %q, %q and %q",
				errs.ErrMalformedInput, i, "name", "dims", "table")
		}

		name, dims := *entry.Name, *entry.Dims
		if dims < 1 || dims > reg.MaxDims() {
			return nil, fmt.Errorf("%w: entry %q has %d dimensions, supported range is [1, %d]",
				errs.ErrDimensionUnsupported, name, dims, reg.MaxDims())
		}

		doc, err := entry.Table.resolve()
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		if len(doc.Axes) != dims {
			return nil, fmt.Errorf("%w: entry %q declares %d dimensions but its table has %d axes",
				errs.ErrMalformedInput, name, dims, len(doc.Axes))
		}

		t, err := doc.Table()
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		if err := reg.Emplace(name, t); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
