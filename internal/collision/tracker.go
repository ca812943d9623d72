// Package collision detects table name hash collisions while a snapshot
// index is being written.
package collision

import (
	"fmt"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/hash"
)

type key struct {
	dims int
	id   uint64
}

// Tracker records the (dims, name ID) pairs written to a snapshot index.
//
// Two tables may share a name ID only if they have different dimension
// counts, since the index is looked up by both.
type Tracker struct {
	names map[key]string
	order []string
	ids   []uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[key]string),
	}
}

// Track registers a table name and returns its ID.
//
// Returns:
//   - uint64: hash.ID(name)
//   - error: ErrInvalidTableName for an empty name, ErrHashCollision if a
//     different name of the same dimension count has the same ID,
//     ErrMalformedInput if the same name is tracked twice
func (t *Tracker) Track(dims int, name string) (uint64, error) {
	if name == "" {
		return 0, errs.ErrInvalidTableName
	}

	id := hash.ID(name)
	k := key{dims: dims, id: id}
	if existing, ok := t.names[k]; ok {
		if existing == name {
			return 0, fmt.Errorf("%w: %d-dimensional table %q tracked twice", errs.ErrMalformedInput, dims, name)
		}

		return 0, fmt.Errorf("%w: %q and %q both hash to 0x%016x", errs.ErrHashCollision, existing, name, id)
	}

	t.names[k] = name
	t.order = append(t.order, name)
	t.ids = append(t.ids, id)

	return id, nil
}

// Names returns the tracked names in the order Track was called.
func (t *Tracker) Names() []string {
	return t.order
}

// IDs returns the name IDs in the order Track was called.
func (t *Tracker) IDs() []uint64 {
	return t.ids
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
	t.ids = t.ids[:0]
}
