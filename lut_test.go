package lut

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/grid"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/snapshot"
	"github.com/arloliu/lut/table"
)

func torqueTable(t testing.TB) *table.Table {
	t.Helper()

	g, err := grid.FromValues([]int{3, 2}, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	tbl, err := table.NewUniform([]axis.Axis{axis.New(0, 1, 2), axis.New(0, 10)}, g, axis.UniformPolicy(format.Linear))
	require.NoError(t, err)

	return tbl
}

// TestRegistryFileRoundTrip verifies JSON persistence through the top-level wrappers
func TestRegistryFileRoundTrip(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Emplace("torque", torqueTable(t)))

	path := filepath.Join(t.TempDir(), "combined.json")
	require.NoError(t, SaveRegistryFile(path, reg))

	back, err := LoadRegistryFile(path)
	require.NoError(t, err)

	v, err := back.Lookup("torque", 1.5, 5)
	require.NoError(t, err)
	require.InDelta(t, 3.5, v, 1e-12)
}

// TestTableFileRoundTrip verifies single-table documents
func TestTableFileRoundTrip(t *testing.T) {
	tbl := torqueTable(t)

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, SaveTableFile(path, tbl))

	back, err := LoadTableFile(path)
	require.NoError(t, err)
	require.True(t, tbl.Equal(back))
}

// TestLoadCSVTable verifies CSV import with the default Constant policy
func TestLoadCSVTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,v\n0,0,0\n0,10,1\n1,0,2\n1,10,3\n"), 0o600))

	tbl, err := LoadCSVTable(path, 2)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, tbl.Shape())
	require.InDelta(t, 3.0, tbl.MustLookup(5, 50), 1e-12)

	_, err = LoadCSVTable(filepath.Join(t.TempDir(), "missing.csv"), 2)
	require.Error(t, err)
}

// TestSnapshotWrappers verifies encode/decode with default and uncompressed settings
func TestSnapshotWrappers(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Emplace("torque", torqueTable(t)))

	compressed, err := EncodeSnapshot(reg)
	require.NoError(t, err)
	info, err := snapshot.Inspect(compressed)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, info.Compression)

	raw, err := EncodeSnapshotUncompressed(reg)
	require.NoError(t, err)
	info, err = snapshot.Inspect(raw)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, info.Compression)

	for _, data := range [][]byte{compressed, raw} {
		back, err := DecodeSnapshot(data)
		require.NoError(t, err)
		require.Equal(t, 1, back.Len())
	}

	_, err = DecodeSnapshot(raw, registry.WithMaxDims(1))
	require.ErrorIs(t, err, errs.ErrDimensionUnsupported)
}

// TestTableID verifies IDs are stable and distinct
func TestTableID(t *testing.T) {
	require.Equal(t, TableID("torque"), TableID("torque"))
	require.NotEqual(t, TableID("torque"), TableID("fuel"))
}

func ExampleNewRegistry() {
	x := axis.New(0, 1, 2)
	y := axis.New(0, 10)
	g, _ := grid.FromValues([]int{3, 2}, []float64{0, 1, 2, 3, 4, 5})
	t, _ := table.NewUniform([]axis.Axis{x, y}, g, axis.UniformPolicy(format.Linear))

	reg, _ := NewRegistry()
	_ = reg.Emplace("torque", t)

	v, _ := reg.Lookup("torque", 1.5, 5)
	fmt.Println(v)

	// Beyond the last x sample the boundary segment is extended.
	v, _ = reg.Lookup("torque", 3, 0)
	fmt.Println(v)

	_, err := reg.Lookup("torque", 1.5)
	fmt.Println(err)
	// Output:
	// 3.5
	// 6
	// table not found: no 1-dimensional table "torque"
}

func ExampleEncodeSnapshot() {
	g, _ := grid.FromValues([]int{2}, []float64{10, 20})
	t, _ := table.NewUniform([]axis.Axis{axis.New(0, 1)}, g, axis.Policy{})

	reg, _ := NewRegistry()
	_ = reg.Emplace("gain", t)

	data, _ := EncodeSnapshot(reg, snapshot.WithCompression(format.CompressionS2))
	restored, _ := DecodeSnapshot(data)

	v, _ := restored.Lookup("gain", 0.25)
	fmt.Println(v)
	// Output: 12.5
}
