package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/grid"
	"github.com/arloliu/lut/table"
)

// sumTable builds a table over [0, 1]^dims whose value at a corner is
// offset plus the sum of the corner coordinates.
func sumTable(t testing.TB, dims int, offset float64) *table.Table {
	t.Helper()

	shape := make([]int, dims)
	axes := make([]axis.Axis, dims)
	for i := range shape {
		shape[i] = 2
		axes[i] = axis.New(0, 1)
	}

	values := make([]float64, 1<<dims)
	for i := range values {
		v := offset
		for bit := range dims {
			v += float64((i >> bit) & 1)
		}
		values[i] = v
	}
	g, err := grid.FromValues(shape, values)
	require.NoError(t, err)

	tbl, err := table.NewUniform(axes, g, axis.Policy{})
	require.NoError(t, err)

	return tbl
}

func TestNewOptions(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.Equal(t, DefaultMaxDims, r.MaxDims())
	require.Zero(t, r.Len())
	require.False(t, r.Frozen())

	r, err = New(WithMaxDims(8))
	require.NoError(t, err)
	require.Equal(t, 8, r.MaxDims())

	_, err = New(WithMaxDims(0))
	require.ErrorIs(t, err, errs.ErrDimensionUnsupported)
}

func TestEmplaceAndLookup(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for dims := 1; dims <= DefaultMaxDims; dims++ {
		require.NoError(t, r.Emplace(fmt.Sprintf("table%dd", dims), sumTable(t, dims, 0)))
	}
	require.Equal(t, DefaultMaxDims, r.Len())
	require.Equal(t, []int{1, 2, 3, 4, 5}, r.Dims())

	v, err := r.Lookup("table1d", 0.25)
	require.NoError(t, err)
	require.InDelta(t, 0.25, v, 1e-12)

	v, err = r.Lookup("table3d", 0.5, 0.5, 0.5)
	require.NoError(t, err)
	require.InDelta(t, 1.5, v, 1e-12)

	v, err = r.Lookup("table5d", 1, 1, 1, 1, 1)
	require.NoError(t, err)
	require.InDelta(t, 5.0, v, 1e-12)
}

func TestSameNameDifferentDims(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	require.NoError(t, r.Emplace("gain", sumTable(t, 1, 100)))
	require.NoError(t, r.Emplace("gain", sumTable(t, 2, 200)))
	require.Equal(t, 2, r.Len())

	v, err := r.Lookup("gain", 0)
	require.NoError(t, err)
	require.InDelta(t, 100.0, v, 1e-12)

	v, err = r.Lookup("gain", 0, 0)
	require.NoError(t, err)
	require.InDelta(t, 200.0, v, 1e-12)
}

func TestLookupErrors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Emplace("t3", sumTable(t, 3, 0)))

	tests := []struct {
		name   string
		table  string
		values []float64
		err    error
	}{
		{"no coordinates", "t3", nil, errs.ErrDimensionUnsupported},
		{"too many coordinates", "t3", make([]float64, DefaultMaxDims+1), errs.ErrDimensionUnsupported},
		{"unknown name", "missing", []float64{0, 0, 0}, errs.ErrMissingKey},
		{"registered with other dims", "t3", []float64{0, 0}, errs.ErrMissingKey},
		{"empty registry bucket", "t3", []float64{0}, errs.ErrMissingKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Lookup(tt.table, tt.values...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEmplaceErrors(t *testing.T) {
	r, err := New(WithMaxDims(2))
	require.NoError(t, err)

	require.ErrorIs(t, r.Emplace("", sumTable(t, 1, 0)), errs.ErrInvalidTableName)
	require.ErrorIs(t, r.Emplace("nil", nil), errs.ErrMalformedInput)
	require.ErrorIs(t, r.Emplace("t3", sumTable(t, 3, 0)), errs.ErrDimensionUnsupported)
	require.Zero(t, r.Len())
}

func TestEmplaceReplaces(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, r.Emplace("t", sumTable(t, 1, 0)))
	require.Zero(t, logs.Len())

	require.NoError(t, r.Emplace("t", sumTable(t, 1, 10)))
	require.Equal(t, 1, r.Len())

	v, err := r.Lookup("t", 0)
	require.NoError(t, err)
	require.InDelta(t, 10.0, v, 1e-12)

	entries := logs.FilterMessage("replacing table").AllUntimed()
	require.Len(t, entries, 1)
	require.Equal(t, "t", entries[0].ContextMap()["name"])
	require.EqualValues(t, 1, entries[0].ContextMap()["dims"])
}

func TestFreeze(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, r.Emplace("t", sumTable(t, 2, 0)))

	r.Freeze()
	r.Freeze()
	require.True(t, r.Frozen())
	require.Equal(t, 1, logs.FilterMessage("registry frozen").Len())

	require.ErrorIs(t, r.Emplace("u", sumTable(t, 2, 0)), errs.ErrRegistryFrozen)
	require.False(t, r.Remove(2, "t"))

	v, err := r.Lookup("t", 1, 1)
	require.NoError(t, err)
	require.InDelta(t, 2.0, v, 1e-12)
}

func TestRemove(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Emplace("a", sumTable(t, 2, 0)))
	require.NoError(t, r.Emplace("b", sumTable(t, 2, 0)))

	require.True(t, r.Remove(2, "a"))
	require.False(t, r.Remove(2, "a"))
	require.False(t, r.Remove(1, "b"))
	require.False(t, r.Contains(2, "a"))
	require.True(t, r.Contains(2, "b"))

	require.True(t, r.Remove(2, "b"))
	require.Empty(t, r.Dims())
}

func TestTableAccessor(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	want := sumTable(t, 2, 0)
	require.NoError(t, r.Emplace("t", want))

	got, err := r.Table(2, "t")
	require.NoError(t, err)
	require.Same(t, want, got)

	_, err = r.Table(1, "t")
	require.ErrorIs(t, err, errs.ErrMissingKey)
	_, err = r.Table(9, "t")
	require.ErrorIs(t, err, errs.ErrDimensionUnsupported)
}

func TestAllOrder(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	require.NoError(t, r.Emplace("zeta", sumTable(t, 1, 0)))
	require.NoError(t, r.Emplace("beta", sumTable(t, 3, 0)))
	require.NoError(t, r.Emplace("alpha", sumTable(t, 1, 0)))
	require.NoError(t, r.Emplace("alpha", sumTable(t, 3, 0)))

	var got []Entry
	for e, tbl := range r.All() {
		require.Equal(t, e.Dims, tbl.Dims())
		got = append(got, e)
	}
	require.Equal(t, []Entry{
		{Name: "alpha", Dims: 1},
		{Name: "zeta", Dims: 1},
		{Name: "alpha", Dims: 3},
		{Name: "beta", Dims: 3},
	}, got)

	require.Equal(t, []string{"alpha", "beta"}, r.Names(3))
	require.Empty(t, r.Names(2))

	count := 0
	for range r.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestConcurrentLookupAndEmplace(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Emplace("t2", sumTable(t, 2, 0)))
	line := sumTable(t, 1, 0)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				v, err := r.Lookup("t2", 0.5, 0.5)
				if err != nil || v != 1.0 {
					t.Errorf("lookup: got %v, %v", v, err)
					return
				}
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("writer%d", i)
			for range 20 {
				if err := r.Emplace(name, line); err != nil {
					t.Errorf("emplace: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 9, r.Len())
}

func BenchmarkRegistryLookup(b *testing.B) {
	r, err := New()
	if err != nil {
		b.Fatal(err)
	}

	if err := r.Emplace("t3", sumTable(b, 3, 0)); err != nil {
		b.Fatal(err)
	}
	r.Freeze()

	b.ResetTimer()
	for b.Loop() {
		_, _ = r.Lookup("t3", 0.1, 0.2, 0.3)
	}
}
