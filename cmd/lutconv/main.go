// Command lutconv converts directories of CSV lookup tables into JSON
// documents and a binary registry snapshot.
//
// The root directory holds one subdirectory per dimension count, named 1d,
// 2d, 3d and so on, each with a data.csv file whose header names the axis
// columns followed by the value column:
//
//	root/
//	  2d/data.csv
//	  3d/data.csv
//
// For every table found, lutconv writes Nd/data.json next to the CSV file.
// It then writes root/combined.json holding all tables (named table1d,
// table2d, ...) and root/combined.lut, the same registry as a snapshot.
// Both outputs are loaded back and compared before an optional lookup is
// printed.
//
// Usage:
//
//	lutconv [-config lutconv.gcfg] [-compression zstd] [-lookup table2d:2.0,0.1] [-v] <root>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "lutconv:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lutconv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "gcfg file with a [convert] section")
	compression := fs.String("compression", "", "snapshot compression: none, zstd, s2 or lz4")
	lookup := fs.String("lookup", "", "lookup to print after conversion, as name:v1,v2,...")
	maxDims := fs.Int("max-dims", 0, "largest dimension count to convert")
	policy := fs.String("policy", "", "extrapolation policy for CSV tables: mode or lower:upper")
	verbose := fs.Bool("v", false, "development logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: lutconv [flags] <root>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one root directory")
	}

	cfg := defaultConvertConfig()
	if *configPath != "" {
		var err error
		if cfg, err = readConfigFile(*configPath, cfg); err != nil {
			return err
		}
	}

	// Flags given on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "compression":
			cfg.Compression = *compression
		case "lookup":
			cfg.Lookup = *lookup
		case "max-dims":
			cfg.MaxDims = *maxDims
		case "policy":
			cfg.Policy = *policy
		}
	})

	s, err := cfg.settings()
	if err != nil {
		return err
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return convert(fs.Arg(0), s, logger, stdout)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
