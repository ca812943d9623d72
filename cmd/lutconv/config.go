package main

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/registry"
)

// ConvertConfig is the [convert] section of a lutconv config file.
//
//	[convert]
//	MaxDims = 4
//	Compression = zstd
//	CSVName = data.csv
//	Lookup = table2d:2.0,0.1
//	Policy = constant:linear
type ConvertConfig struct {
	MaxDims     int
	Compression string
	CSVName     string
	Lookup      string
	Policy      string
}

type configFile struct {
	Convert ConvertConfig
}

func defaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		MaxDims:     4,
		Compression: "zstd",
		CSVName:     "data.csv",
		Lookup:      "table2d:2.0,0.1",
		Policy:      "constant",
	}
}

// readConfigFile overlays the values of a gcfg file on cfg.
func readConfigFile(path string, cfg ConvertConfig) (ConvertConfig, error) {
	wrap := configFile{Convert: cfg}
	if err := gcfg.ReadFileInto(&wrap, path); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	return wrap.Convert, nil
}

// lookupQuery is a parsed "name:v1,v2,..." lookup request.
type lookupQuery struct {
	Name   string
	Values []float64
}

func (q lookupQuery) String() string {
	coords := make([]string, len(q.Values))
	for i, v := range q.Values {
		coords[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return fmt.Sprintf("%s(%s)", q.Name, strings.Join(coords, ", "))
}

// settings is the validated form of ConvertConfig.
type settings struct {
	maxDims     int
	compression format.CompressionType
	csvName     string
	lookup      *lookupQuery
	policy      axis.Policy
}

func (c ConvertConfig) settings() (settings, error) {
	var s settings

	if c.MaxDims < 1 {
		return s, fmt.Errorf("MaxDims must be positive, got %d", c.MaxDims)
	}
	s.maxDims = c.MaxDims

	ct, err := format.ParseCompressionType(c.Compression)
	if err != nil {
		return s, err
	}
	s.compression = ct

	if c.CSVName == "" || strings.ContainsAny(c.CSVName, `/\`) {
		return s, fmt.Errorf("CSVName must be a plain file name, got %q", c.CSVName)
	}
	s.csvName = c.CSVName

	if s.policy, err = parsePolicy(c.Policy); err != nil {
		return s, err
	}

	if c.Lookup != "" {
		q, err := parseLookup(c.Lookup)
		if err != nil {
			return s, err
		}
		s.lookup = &q
	}

	return s, nil
}

// registryOptions returns the options every registry built by a run shares.
func (s settings) registryOptions(extra ...registry.Option) []registry.Option {
	return append([]registry.Option{registry.WithMaxDims(s.maxDims)}, extra...)
}

// parsePolicy accepts "mode" for both sides or "lower:upper".
func parsePolicy(s string) (axis.Policy, error) {
	lower, upper, found := strings.Cut(s, ":")
	if !found {
		upper = lower
	}

	lo, err := format.ParseExtrapolationMode(lower)
	if err != nil {
		return axis.Policy{}, fmt.Errorf("policy %q: %w", s, err)
	}
	hi, err := format.ParseExtrapolationMode(upper)
	if err != nil {
		return axis.Policy{}, fmt.Errorf("policy %q: %w", s, err)
	}

	return axis.NewPolicy(lo, hi), nil
}

// parseLookup parses "name:v1,v2,...".
func parseLookup(s string) (lookupQuery, error) {
	name, coords, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !found || name == "" || strings.TrimSpace(coords) == "" {
		return lookupQuery{}, fmt.Errorf("lookup %q: expected name:v1,v2,...", s)
	}

	fields := strings.Split(coords, ",")
	q := lookupQuery{Name: name, Values: make([]float64, len(fields))}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return lookupQuery{}, fmt.Errorf("lookup %q: coordinate %d: %w", s, i+1, err)
		}
		q.Values[i] = v
	}

	return q, nil
}
