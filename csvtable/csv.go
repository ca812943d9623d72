// Package csvtable converts between delimited text files and lookup tables.
//
// The first row of a file is the header. When a file is turned into a table
// with N dimensions, the first N columns are the axis coordinates and the
// last column holds the table value:
//
//	rpm,load,torque
//	1000,0.2,35.1
//	1000,0.8,80.4
//	2000,0.2,40.0
//	2000,0.8,92.3
//
// Reading is lenient in the same places hand-edited spreadsheets tend to be
// messy: line endings are normalised, cells are trimmed, blank rows are
// skipped and rows are padded or truncated to the header width.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/options"
)

// CSV is a header row plus data rows, each row holding one cell per header.
type CSV struct {
	Headers   []string
	Rows      [][]string
	Delimiter rune
}

// Read parses delimited text from r.
//
// Parameters:
//   - r: Source of the delimited text
//   - opts: Read options (WithDelimiter)
//
// Returns:
//   - *CSV: Parsed header and rows; a file without any non-blank row yields
//     an empty CSV
//   - error: ErrMalformedInput for unparseable quoting, or a read error
func Read(r io.Reader, opts ...Option) (*CSV, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(normalizeNewlines(raw)))
	reader.Comma = cfg.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	out := &CSV{Delimiter: cfg.delimiter}
	for _, record := range records {
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if allEmpty(record) {
			continue
		}

		if out.Headers == nil {
			out.Headers = record
			continue
		}
		out.Rows = append(out.Rows, fitRow(record, len(out.Headers)))
	}

	return out, nil
}

// ReadFile parses the delimited text file at path.
func ReadFile(path string, opts ...Option) (*CSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Write writes the header followed by every row to w.
func (c *CSV) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if c.Delimiter != 0 {
		writer.Comma = c.Delimiter
	}

	if err := writer.Write(c.Headers); err != nil {
		return err
	}
	for _, row := range c.Rows {
		if err := writer.Write(fitRow(row, len(c.Headers))); err != nil {
			return err
		}
	}
	writer.Flush()

	return writer.Error()
}

// WriteFile writes c to the file at path, replacing any existing file.
func WriteFile(path string, c *CSV) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return c.Write(f)
}

// ColumnIndex returns the position of the header called name.
func (c *CSV) ColumnIndex(name string) (int, bool) {
	for i, h := range c.Headers {
		if h == name {
			return i, true
		}
	}

	return -1, false
}

// Column parses every cell of the named column as a float64.
//
// Returns:
//   - []float64: One value per row, in row order
//   - error: ErrMalformedInput if the column does not exist or a cell is not
//     a number; the message names the offending row and column
func (c *CSV) Column(name string) ([]float64, error) {
	col, ok := c.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", errs.ErrMalformedInput, name)
	}

	return c.column(col)
}

func (c *CSV) column(col int) ([]float64, error) {
	values := make([]float64, len(c.Rows))
	for i, row := range c.Rows {
		var cell string
		if col < len(row) {
			cell = row[col]
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			// Rows are numbered as in the file, counting the header as row 1.
			return nil, fmt.Errorf("%w: row %d, column %q: %q is not a number",
				errs.ErrMalformedInput, i+2, c.Headers[col], cell)
		}
		values[i] = v
	}

	return values, nil
}

func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))

	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}

	return true
}

// fitRow truncates or pads record with empty cells to exactly n cells.
func fitRow(record []string, n int) []string {
	if len(record) >= n {
		return record[:n:n]
	}

	row := make([]string, n)
	copy(row, record)

	return row
}
