package document

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/registry"
	"github.com/arloliu/lut/table"
)

// LoadFile reads the JSON file at path into v.
func LoadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrMalformedInput, path, err)
	}

	return nil
}

// SaveFile writes v as JSON to path, replacing any existing file.
func SaveFile(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

// LoadTableFile reads a table document from path.
func LoadTableFile(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := UnmarshalTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// SaveTableFile writes t as a table document to path.
func SaveTableFile(path string, t *table.Table) error {
	data, err := MarshalTable(t)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

// LoadRegistryFile reads a registry document from path.
func LoadRegistryFile(path string, opts ...registry.Option) (*registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := UnmarshalRegistry(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// SaveRegistryFile writes r as a registry document to path.
func SaveRegistryFile(path string, r *registry.Registry) error {
	data, err := MarshalRegistry(r)
	if err != nil {
		return err
	}

	return writeFile(path, data)
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.Write(data)

	return err
}
