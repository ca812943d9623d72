package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/lut/document"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/snapshot"
)

const table2dCSV = `x,y,value
1,0,10
1,0.1,20
1,0.2,30
2,0,20
2,0.1,30
2,0.2,40
3,0,30
3,0.1,40
3,0.2,50
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// sampleRoot creates a conversion root with 1d and 2d tables.
func sampleRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1d", "data.csv"), "x,value\n0,0\n1,5\n")
	writeFile(t, filepath.Join(root, "2d", "data.csv"), table2dCSV)

	return root
}

func defaultSettings(t *testing.T) settings {
	t.Helper()

	s, err := defaultConvertConfig().settings()
	require.NoError(t, err)

	return s
}

func TestConvert(t *testing.T) {
	root := sampleRoot(t)
	core, logs := observer.New(zapcore.DebugLevel)

	var out bytes.Buffer
	require.NoError(t, convert(root, defaultSettings(t), zap.New(core), &out))

	require.Contains(t, out.String(), "converted 2 tables")
	require.Contains(t, out.String(), "table2d(2, 0.1) = 30\n")

	for _, name := range []string{"1d/data.json", "2d/data.json", "combined.json", "combined.lut"} {
		require.FileExists(t, filepath.Join(root, name))
	}

	tbl, err := document.LoadTableFile(filepath.Join(root, "2d", "data.json"))
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, tbl.Shape())

	data, err := os.ReadFile(filepath.Join(root, "combined.lut"))
	require.NoError(t, err)
	info, err := snapshot.Inspect(data)
	require.NoError(t, err)
	require.Equal(t, 2, info.Tables)
	require.Equal(t, format.CompressionZstd, info.Compression)

	require.Equal(t, 2, logs.FilterMessage("converted table").Len())
	require.Equal(t, 2, logs.FilterMessage("no table").Len())
	require.Equal(t, 1, logs.FilterMessage("registry frozen").Len())
	require.Equal(t, 1, logs.FilterMessage("wrote snapshot").Len())
}

func TestConvertPolicyAndMaxDims(t *testing.T) {
	root := sampleRoot(t)

	cfg := defaultConvertConfig()
	cfg.MaxDims = 1
	cfg.Policy = "linear"
	cfg.Lookup = "table1d:2"
	s, err := cfg.settings()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, convert(root, s, zap.NewNop(), &out))
	require.Contains(t, out.String(), "converted 1 tables")
	require.Contains(t, out.String(), "table1d(2) = 10\n")
	require.NoFileExists(t, filepath.Join(root, "2d", "data.json"))
}

func TestConvertErrors(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		err := convert(t.TempDir(), defaultSettings(t), zap.NewNop(), io.Discard)
		require.ErrorContains(t, err, "no tables found")
	})

	t.Run("missing lookup table", func(t *testing.T) {
		cfg := defaultConvertConfig()
		cfg.Lookup = "table3d:1,2,3"
		s, err := cfg.settings()
		require.NoError(t, err)

		err = convert(sampleRoot(t), s, zap.NewNop(), io.Discard)
		require.ErrorIs(t, err, errs.ErrMissingKey)
	})

	t.Run("wrong lookup arity", func(t *testing.T) {
		cfg := defaultConvertConfig()
		cfg.Lookup = "table2d:1"
		s, err := cfg.settings()
		require.NoError(t, err)

		err = convert(sampleRoot(t), s, zap.NewNop(), io.Discard)
		require.ErrorIs(t, err, errs.ErrMissingKey)
	})

	t.Run("malformed csv", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "2d", "data.csv"), "x,y,value\n1,a,3\n")

		err := convert(root, defaultSettings(t), zap.NewNop(), io.Discard)
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})

	t.Run("too few columns", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "3d", "data.csv"), "x,y,value\n1,2,3\n")

		err := convert(root, defaultSettings(t), zap.NewNop(), io.Discard)
		require.ErrorIs(t, err, errs.ErrMalformedInput)
	})
}

func TestVerifyReportsEveryDifference(t *testing.T) {
	root := sampleRoot(t)
	require.NoError(t, convert(root, defaultSettings(t), zap.NewNop(), io.Discard))

	full, err := document.LoadRegistryFile(filepath.Join(root, "combined.json"))
	require.NoError(t, err)
	require.NoError(t, verify(full, full, "self"))

	partial, err := document.LoadRegistryFile(filepath.Join(root, "combined.json"))
	require.NoError(t, err)
	require.True(t, partial.Remove(1, "table1d"))

	err = verify(full, partial, "partial")
	require.ErrorIs(t, err, errs.ErrMissingKey)
	require.ErrorContains(t, err, "1 tables, expected 2")
}

func TestRun(t *testing.T) {
	root := sampleRoot(t)
	configPath := filepath.Join(t.TempDir(), "lutconv.gcfg")
	writeFile(t, configPath, "[convert]\ncompression = s2\nlookup = table1d:0.5\n")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", configPath, "-compression", "lz4", root}, &out, io.Discard))
	require.Contains(t, out.String(), "table1d(0.5) = 2.5\n")

	// The flag overrides the config file.
	data, err := os.ReadFile(filepath.Join(root, "combined.lut"))
	require.NoError(t, err)
	info, err := snapshot.Inspect(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, info.Compression)
}

func TestRunUsage(t *testing.T) {
	err := run([]string{"-h"}, io.Discard, io.Discard)
	require.True(t, errors.Is(err, flag.ErrHelp))

	require.Error(t, run(nil, io.Discard, io.Discard))
	require.Error(t, run([]string{"-compression", "brotli", t.TempDir()}, io.Discard, io.Discard))
}
