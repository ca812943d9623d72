package snapshot

import (
	"fmt"
	"math"

	"github.com/arloliu/lut/axis"
	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/encoding"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/format"
	"github.com/arloliu/lut/grid"
	"github.com/arloliu/lut/internal/pool"
	"github.com/arloliu/lut/table"
)

func packPolicy(p axis.Policy) byte {
	return byte(p.Lower)&0x0F | byte(p.Upper)<<4
}

func unpackPolicy(b byte) axis.Policy {
	return axis.NewPolicy(format.ExtrapolationMode(b&0x0F), format.ExtrapolationMode(b>>4))
}

// appendTable appends the payload form of t to buf.
func appendTable(buf *pool.ByteBuffer, t *table.Table, floats *encoding.Float64RawEncoder, engine endian.EndianEngine) error {
	dims := t.Dims()
	for i := range dims {
		buf.B = append(buf.B, packPolicy(t.Policy(i)))
	}

	floats.Reset()
	for i := range dims {
		ax := t.Axis(i)
		if uint64(ax.Len()) > math.MaxUint32 {
			return fmt.Errorf("%w: axis %d has %d samples", errs.ErrShapeMismatch, i, ax.Len())
		}
		buf.B = engine.AppendUint32(buf.B, uint32(ax.Len())) //nolint: gosec
		floats.WriteSlice(ax.Values())
	}
	floats.WriteSlice(t.Grid().Values())

	_, _ = buf.Write(floats.Bytes())

	return nil
}

// decodeTable decodes one dims-dimensional table from the start of data.
func decodeTable(data []byte, dims int, engine endian.EndianEngine) (*table.Table, error) {
	if dims < 1 {
		return nil, fmt.Errorf("%w: table with %d dimensions", errs.ErrMalformedInput, dims)
	}

	header := dims + dims*4
	if len(data) < header {
		return nil, fmt.Errorf("%w: table header needs %d bytes, have %d", errs.ErrMalformedInput, header, len(data))
	}

	policies := make([]axis.Policy, dims)
	for i := range dims {
		policies[i] = unpackPolicy(data[i])
	}

	// The shape is checked against the bytes present before allocating.
	limit := (len(data) - header) / encoding.Float64Size
	shape := make([]int, dims)
	axisTotal, gridSize := 0, 1
	for i := range dims {
		n := int(engine.Uint32(data[dims+i*4:]))
		shape[i] = n
		axisTotal += n
		if n > 0 && gridSize > limit/n {
			return nil, fmt.Errorf("%w: table shape %v exceeds payload", errs.ErrMalformedInput, shape[:i+1])
		}
		gridSize *= n
	}
	if axisTotal+gridSize > limit {
		return nil, fmt.Errorf("%w: table of shape %v needs %d values, payload holds %d",
			errs.ErrMalformedInput, shape, axisTotal+gridSize, limit)
	}

	values, cleanup := pool.GetFloat64Slice(axisTotal + gridSize)
	defer cleanup()

	decoder := encoding.NewFloat64RawDecoder(engine)
	if _, err := decoder.DecodeInto(values, data[header:]); err != nil {
		return nil, err
	}

	axes := make([]axis.Axis, dims)
	pos := 0
	for i, n := range shape {
		ax, err := axis.FromSorted(values[pos : pos+n])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", i, err)
		}
		axes[i] = ax
		pos += n
	}

	g, err := grid.FromValues(shape, values[pos:])
	if err != nil {
		return nil, err
	}

	return table.New(axes, g, policies)
}
