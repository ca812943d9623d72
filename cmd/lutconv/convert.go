package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arloliu/lut/csvtable"
	"github.com/arloliu/lut/document"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/snapshot"
	"github.com/arloliu/lut/table"
)

const (
	tableJSONName    = "data.json"
	combinedJSONName = "combined.json"
	snapshotName     = "combined.lut"
)

func tableName(dims int) string {
	return fmt.Sprintf("table%dd", dims)
}

// convert runs one conversion of root and prints a summary to out.
func convert(root string, s settings, logger *zap.Logger, out io.Writer) error {
	combined, err := registry.New(s.registryOptions(registry.WithLogger(logger))...)
	if err != nil {
		return err
	}

	for dims := 1; dims <= s.maxDims; dims++ {
		dir := filepath.Join(root, fmt.Sprintf("%dd", dims))
		csvPath := filepath.Join(dir, s.csvName)

		if _, err := os.Stat(csvPath); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no table", zap.Int("dims", dims), zap.String("path", csvPath))
			continue
		} else if err != nil {
			return err
		}

		t, err := convertTable(csvPath, filepath.Join(dir, tableJSONName), dims, s)
		if err != nil {
			return fmt.Errorf("%s: %w", csvPath, err)
		}
		if err := combined.Emplace(tableName(dims), t); err != nil {
			return err
		}

		logger.Info("converted table",
			zap.String("table", tableName(dims)),
			zap.String("source", csvPath),
			zap.Ints("shape", t.Shape()),
		)
	}

	if combined.Len() == 0 {
		return fmt.Errorf("no tables found under %s (expected Nd/%s)", root, s.csvName)
	}
	combined.Freeze()

	jsonPath := filepath.Join(root, combinedJSONName)
	if err := document.SaveRegistryFile(jsonPath, combined); err != nil {
		return err
	}
	logger.Info("wrote registry document", zap.String("path", jsonPath), zap.Int("tables", combined.Len()))

	lutPath := filepath.Join(root, snapshotName)
	if err := writeSnapshot(lutPath, combined, s, logger); err != nil {
		return err
	}

	fromJSON, err := document.LoadRegistryFile(jsonPath, s.registryOptions()...)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(lutPath)
	if err != nil {
		return err
	}
	fromSnapshot, err := snapshot.Decode(raw, s.registryOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", lutPath, err)
	}

	if err := multierr.Combine(
		verify(combined, fromJSON, combinedJSONName),
		verify(combined, fromSnapshot, snapshotName),
	); err != nil {
		return err
	}

	fmt.Fprintf(out, "converted %d tables into %s and %s\n", combined.Len(), jsonPath, lutPath)

	if s.lookup == nil {
		return nil
	}

	q := *s.lookup
	v, err := fromJSON.Lookup(q.Name, q.Values...)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", q, err)
	}
	if w, err := fromSnapshot.Lookup(q.Name, q.Values...); err != nil || w != v {
		return fmt.Errorf("lookup %s: snapshot gives %v (%v), document gives %v", q, w, err, v)
	}
	fmt.Fprintf(out, "%s = %v\n", q, v)

	return nil
}

// convertTable builds a table from csvPath and writes it to jsonPath.
func convertTable(csvPath, jsonPath string, dims int, s settings) (*table.Table, error) {
	c, err := csvtable.ReadFile(csvPath)
	if err != nil {
		return nil, err
	}

	t, err := csvtable.ToTable(c, dims, s.policy)
	if err != nil {
		return nil, err
	}

	if err := document.SaveTableFile(jsonPath, t); err != nil {
		return nil, err
	}

	return t, nil
}

func writeSnapshot(path string, r *registry.Registry, s settings, logger *zap.Logger) (err error) {
	data, err := snapshot.Encode(r, snapshot.WithCompression(s.compression))
	if err != nil {
		return err
	}

	info, err := snapshot.Inspect(data)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	if _, err := f.Write(data); err != nil {
		return err
	}

	logger.Info("wrote snapshot",
		zap.String("path", path),
		zap.Stringer("compression", info.Compression),
		zap.Int("tables", info.Tables),
		zap.Int("raw_payload_bytes", info.RawPayloadSize),
		zap.Int("payload_bytes", info.PayloadSize),
		zap.Int("bytes", info.Size),
	)

	return nil
}

// verify reports every table of want that got lacks or holds differently.
func verify(want, got *registry.Registry, source string) error {
	var err error
	if want.Len() != got.Len() {
		err = multierr.Append(err, fmt.Errorf("%s: %d tables, expected %d", source, got.Len(), want.Len()))
	}

	for e, t := range want.All() {
		other, lerr := got.Table(e.Dims, e.Name)
		if lerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", source, lerr))
			continue
		}
		if !t.Equal(other) {
			err = multierr.Append(err, fmt.Errorf("%s: table %q differs from its source", source, e.Name))
		}
	}

	return err
}
