package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	maxDims int
	name    string
	calls   []string
}

type testOption = Option[*testConfig]

func withMaxDims(n int) testOption {
	return New(func(c *testConfig) error {
		if n < 1 {
			return errors.New("max dims must be positive")
		}
		c.maxDims = n
		c.calls = append(c.calls, "maxDims")

		return nil
	})
}

func withName(name string) testOption {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withMaxDims(5), withName("table2d"))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.maxDims)
	require.Equal(t, "table2d", cfg.name)
	require.Equal(t, []string{"maxDims", "name"}, cfg.calls)
}

func TestApplyOrderLastWins(t *testing.T) {
	cfg := &testConfig{}

	require.NoError(t, Apply(cfg, withMaxDims(3), withMaxDims(7)))
	require.Equal(t, 7, cfg.maxDims)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withMaxDims(0), withName("never"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "max dims must be positive")
	require.Empty(t, cfg.name)
	require.Empty(t, cfg.calls)
}

func TestApplySkipsNil(t *testing.T) {
	cfg := &testConfig{}

	require.NoError(t, Apply(cfg, nil, withName("x"), nil))
	require.Equal(t, "x", cfg.name)

	require.NoError(t, Apply[*testConfig](cfg))
}
