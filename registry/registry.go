// Package registry stores lookup tables keyed by dimension count and name.
//
// A Registry is typically filled once during start-up, frozen, and then used
// read-only from many goroutines:
//
//	reg, _ := registry.New()
//	_ = reg.Emplace("torque", torqueTable) // a 2-dimensional table
//	reg.Freeze()
//
//	v, err := reg.Lookup("torque", rpm, load)
//
// The number of coordinates passed to Lookup selects the dimension bucket, so
// the same name may refer to different tables of different dimension counts.
package registry

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/options"
	"github.com/arloliu/lut/table"
)

// DefaultMaxDims is the largest dimension count accepted by a registry built
// without WithMaxDims.
const DefaultMaxDims = 5

// Entry identifies one table held by a registry.
type Entry struct {
	Name string
	Dims int
}

// Registry maps (dimension count, name) to a table.
//
// All methods are safe for concurrent use. Lookups take a read lock, so they
// never block each other; Emplace and Remove take the write lock.
type Registry struct {
	mu      sync.RWMutex
	buckets map[int]map[string]*table.Table
	frozen  bool

	maxDims int
	logger  *zap.Logger
}

// New creates an empty registry.
//
// Parameters:
//   - opts: Registry options (WithMaxDims, WithLogger)
//
// Returns:
//   - *Registry: Empty registry
//   - error: Invalid option value
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		buckets: make(map[int]map[string]*table.Table),
		maxDims: DefaultMaxDims,
		logger:  zap.NewNop(),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// MaxDims returns the largest dimension count the registry accepts.
func (r *Registry) MaxDims() int {
	return r.maxDims
}

// Emplace inserts t under name, replacing any table of the same dimension
// count and name.
//
// Parameters:
//   - name: Table name, must not be empty
//   - t: Table to store; its Dims() selects the bucket
//
// Returns:
//   - error: ErrInvalidTableName, ErrMalformedInput (nil table),
//     ErrDimensionUnsupported or ErrRegistryFrozen
func (r *Registry) Emplace(name string, t *table.Table) error {
	if name == "" {
		return fmt.Errorf("%w: empty table name", errs.ErrInvalidTableName)
	}
	if t == nil {
		return fmt.Errorf("%w: nil table %q", errs.ErrMalformedInput, name)
	}

	dims := t.Dims()
	if err := r.checkDims(dims); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot emplace %q", errs.ErrRegistryFrozen, name)
	}

	bucket, ok := r.buckets[dims]
	if !ok {
		bucket = make(map[string]*table.Table)
		r.buckets[dims] = bucket
	}

	if _, replaced := bucket[name]; replaced {
		r.logger.Debug("replacing table", zap.String("name", name), zap.Int("dims", dims))
	}
	bucket[name] = t

	return nil
}

// Lookup evaluates the table called name whose dimension count equals
// len(values).
//
// Parameters:
//   - name: Table name
//   - values: Coordinates, one per dimension
//
// Returns:
//   - float64: Interpolated value
//   - error: ErrDimensionUnsupported if len(values) is outside [1, MaxDims()],
//     ErrMissingKey if no such table exists
func (r *Registry) Lookup(name string, values ...float64) (float64, error) {
	dims := len(values)
	if err := r.checkDims(dims); err != nil {
		return 0, err
	}

	t, ok := r.get(dims, name)
	if !ok {
		return 0, fmt.Errorf("%w: no %d-dimensional table %q", errs.ErrMissingKey, dims, name)
	}

	return t.Lookup(values...)
}

// Table returns the table stored under (dims, name).
func (r *Registry) Table(dims int, name string) (*table.Table, error) {
	if err := r.checkDims(dims); err != nil {
		return nil, err
	}

	t, ok := r.get(dims, name)
	if !ok {
		return nil, fmt.Errorf("%w: no %d-dimensional table %q", errs.ErrMissingKey, dims, name)
	}

	return t, nil
}

// Contains reports whether a table is stored under (dims, name).
func (r *Registry) Contains(dims int, name string) bool {
	_, ok := r.get(dims, name)
	return ok
}

// Remove deletes the table stored under (dims, name) and reports whether it
// existed. A frozen registry is left unchanged.
func (r *Registry) Remove(dims int, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return false
	}

	bucket, ok := r.buckets[dims]
	if !ok {
		return false
	}
	if _, ok := bucket[name]; !ok {
		return false
	}

	delete(bucket, name)
	if len(bucket) == 0 {
		delete(r.buckets, dims)
	}

	return true
}

// Len returns the total number of tables across all dimension counts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, bucket := range r.buckets {
		n += len(bucket)
	}

	return n
}

// Dims returns the dimension counts holding at least one table, ascending.
func (r *Registry) Dims() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dims := make([]int, 0, len(r.buckets))
	for d := range r.buckets {
		dims = append(dims, d)
	}
	slices.Sort(dims)

	return dims
}

// Names returns the sorted names of the tables with the given dimension count.
func (r *Registry) Names(dims int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.buckets[dims]
	names := make([]string, 0, len(bucket))
	for name := range bucket {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// All returns an iterator over every entry and its table, ordered by
// dimension count and then by name.
//
// The iterator works on a snapshot taken when iteration starts, so the
// registry may be modified from the loop body.
func (r *Registry) All() iter.Seq2[Entry, *table.Table] {
	return func(yield func(Entry, *table.Table) bool) {
		for _, e := range r.entries() {
			t, ok := r.get(e.Dims, e.Name)
			if !ok {
				continue
			}
			if !yield(e, t) {
				return
			}
		}
	}
}

// Freeze ends the build phase. Emplace and Remove fail afterwards.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frozen {
		r.frozen = true
		r.logger.Debug("registry frozen", zap.Int("tables", r.lenLocked()))
	}
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

func (r *Registry) checkDims(dims int) error {
	if dims < 1 || dims > r.maxDims {
		return fmt.Errorf("%w: %d dimensions, supported range is [1, %d]", errs.ErrDimensionUnsupported, dims, r.maxDims)
	}

	return nil
}

func (r *Registry) get(dims int, name string) (*table.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.buckets[dims][name]

	return t, ok
}

func (r *Registry) entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, r.lenLocked())
	for dims, bucket := range r.buckets {
		for name := range bucket {
			entries = append(entries, Entry{Name: name, Dims: dims})
		}
	}
	slices.SortFunc(entries, compareEntries)

	return entries
}

func (r *Registry) lenLocked() int {
	n := 0
	for _, bucket := range r.buckets {
		n += len(bucket)
	}

	return n
}

func compareEntries(a, b Entry) int {
	if a.Dims != b.Dims {
		return a.Dims - b.Dims
	}
	switch {
	case a.Name < b.Name:
		return -1
	case a.Name > b.Name:
		return 1
	default:
		return 0
	}
}
