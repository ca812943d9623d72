package csvtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
)

const torqueCSV = `rpm,load,torque
2000,0.8,92
1000,0.2,35
1000,0.8,80
2000,0.2,40
`

func TestToTable(t *testing.T) {
	c, err := Read(strings.NewReader(torqueCSV))
	require.NoError(t, err)

	tbl, err := ToTable(c, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{1000, 2000}, tbl.Axis(0).Values())
	require.Equal(t, []float64{0.2, 0.8}, tbl.Axis(1).Values())
	require.Equal(t, axis.UniformPolicy(format.Constant), tbl.Policy(1))

	for _, tc := range []struct {
		rpm, load, want float64
	}{
		{1000, 0.2, 35},
		{1000, 0.8, 80},
		{2000, 0.2, 40},
		{2000, 0.8, 92},
		{1500, 0.5, (35 + 80 + 40 + 92) / 4.0},
		{5000, 0.8, 92},
	} {
		require.InDelta(t, tc.want, tbl.MustLookup(tc.rpm, tc.load), 1e-9)
	}
}

func TestToTableLastRowWins(t *testing.T) {
	c, err := Read(strings.NewReader("x,v\n0,1\n1,2\n0,7\n"))
	require.NoError(t, err)

	tbl, err := ToTable(c, 1)
	require.NoError(t, err)
	require.InDelta(t, 7.0, tbl.MustLookup(0), 1e-12)
	require.InDelta(t, 2.0, tbl.MustLookup(1), 1e-12)
}

func TestToTableMissingCellsAreZero(t *testing.T) {
	c, err := Read(strings.NewReader("x,y,v\n0,0,1\n1,1,4\n"))
	require.NoError(t, err)

	tbl, err := ToTable(c, 2)
	require.NoError(t, err)

	v, err := tbl.Value(0, 1)
	require.NoError(t, err)
	require.Zero(t, v)
	v, err = tbl.Value(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
}

func TestToTableUsesLastColumnAsValue(t *testing.T) {
	c, err := Read(strings.NewReader("x,note,v\n0,9,1\n1,9,3\n"))
	require.NoError(t, err)

	tbl, err := ToTable(c, 1)
	require.NoError(t, err)
	require.InDelta(t, 2.0, tbl.MustLookup(0.5), 1e-12)
}

func TestToTablePolicies(t *testing.T) {
	c, err := Read(strings.NewReader("x,y,v\n0,0,0\n0,1,1\n1,0,1\n1,1,2\n"))
	require.NoError(t, err)

	linear := axis.UniformPolicy(format.Linear)
	tbl, err := ToTable(c, 2, linear)
	require.NoError(t, err)
	require.InDelta(t, 4.0, tbl.MustLookup(2, 2), 1e-12)

	mixed := []axis.Policy{linear, axis.UniformPolicy(format.Constant)}
	tbl, err = ToTable(c, 2, mixed...)
	require.NoError(t, err)
	require.InDelta(t, 3.0, tbl.MustLookup(2, 2), 1e-12)

	_, err = ToTable(c, 2, linear, linear, linear)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestToTableErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		dims int
	}{
		{"too few columns", "x,y\n0,1\n", 2},
		{"zero dims", "x,v\n0,1\n", 0},
		{"bad axis cell", "x,v\nabc,1\n", 1},
		{"bad value cell", "x,v\n0,abc\n", 1},
		{"empty value cell", "x,v\n0\n", 1},
		{"nan axis cell", "x,v\nNaN,1\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Read(strings.NewReader(tt.csv))
			require.NoError(t, err)

			_, err = ToTable(c, tt.dims)
			require.ErrorIs(t, err, errs.ErrMalformedInput)
		})
	}
}

func TestFromTableRoundTrip(t *testing.T) {
	c, err := Read(strings.NewReader(torqueCSV))
	require.NoError(t, err)
	tbl, err := ToTable(c, 2)
	require.NoError(t, err)

	out, err := FromTable(tbl, []string{"rpm", "load", "torque"})
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"1000", "0.2", "35"},
		{"1000", "0.8", "80"},
		{"2000", "0.2", "40"},
		{"2000", "0.8", "92"},
	}, out.Rows)

	back, err := ToTable(out, 2)
	require.NoError(t, err)
	require.True(t, tbl.Equal(back))

	_, err = FromTable(tbl, []string{"rpm", "torque"})
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}
