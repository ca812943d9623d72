package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/lut/errs"
)

type (
	ExtrapolationMode uint8
	CompressionType   uint8
)

const (
	Constant ExtrapolationMode = 0x0 // Constant clamps to the boundary sample.
	Linear   ExtrapolationMode = 0x1 // Linear continues the slope of the nearest segment.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (m ExtrapolationMode) String() string {
	switch m {
	case Constant:
		return "Constant"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the defined extrapolation modes.
func (m ExtrapolationMode) Valid() bool {
	return m == Constant || m == Linear
}

// ParseExtrapolationMode parses a mode name ("constant" or "linear", case-insensitive).
func ParseExtrapolationMode(s string) (ExtrapolationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constant":
		return Constant, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w: unknown extrapolation mode %q", errs.ErrMalformedInput, s)
	}
}

// MarshalJSON encodes the mode as its integer value, which is the layout
// used by persisted table documents.
func (m ExtrapolationMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown extrapolation mode %d", errs.ErrMalformedInput, m)
	}

	return json.Marshal(int(m))
}

// UnmarshalJSON accepts either the integer value or the mode name.
func (m *ExtrapolationMode) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n != int(Constant) && n != int(Linear) {
			return fmt.Errorf("%w: unknown extrapolation mode %d", errs.ErrMalformedInput, n)
		}
		*m = ExtrapolationMode(n) //nolint: gosec

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: extrapolation mode must be an integer or a name: %s", errs.ErrMalformedInput, data)
	}

	mode, err := ParseExtrapolationMode(s)
	if err != nil {
		return err
	}
	*m = mode

	return nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a compression name ("none", "zstd", "s2", "lz4", case-insensitive).
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type %q", s)
	}
}
