package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/lut/endian"
	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/pool"
)

// Float64Size is the encoded size of one value.
const Float64Size = 8

// Float64RawEncoder writes float64 values as raw 8-byte words.
type Float64RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*Float64RawEncoder)(nil)

// NewFloat64RawEncoder creates an encoder backed by a pooled buffer.
//
// Call Finish when done to return the buffer to the pool:
//
//	enc := encoding.NewFloat64RawEncoder(engine)
//	defer enc.Finish()
//
//	enc.WriteSlice(axis.Values())
//	payload = append(payload, enc.Bytes()...)
func NewFloat64RawEncoder(engine endian.EndianEngine) *Float64RawEncoder {
	return &Float64RawEncoder{
		engine: engine,
		buf:    pool.GetSnapshotBuffer(),
	}
}

// Write encodes a single value.
func (e *Float64RawEncoder) Write(val float64) {
	e.mustBuffer()

	e.count++
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(val))
}

// WriteSlice encodes every value of values.
func (e *Float64RawEncoder) WriteSlice(values []float64) {
	e.mustBuffer()

	e.count += len(values)
	e.buf.Grow(len(values) * Float64Size)
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// Bytes returns the encoded values.
func (e *Float64RawEncoder) Bytes() []byte {
	e.mustBuffer()

	return e.buf.Bytes()
}

// Len returns the number of values written since the last Reset.
func (e *Float64RawEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *Float64RawEncoder) Size() int {
	e.mustBuffer()

	return e.buf.Len()
}

// Reset empties the encoder and keeps its buffer.
func (e *Float64RawEncoder) Reset() {
	e.mustBuffer()

	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *Float64RawEncoder) Finish() {
	if e.buf != nil {
		pool.PutSnapshotBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *Float64RawEncoder) mustBuffer() {
	if e.buf == nil {
		panic("encoder already finished")
	}
}

// Float64RawDecoder reads values written by Float64RawEncoder.
type Float64RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = Float64RawDecoder{}

// NewFloat64RawDecoder creates a decoder for the given byte order.
func NewFloat64RawDecoder(engine endian.EndianEngine) Float64RawDecoder {
	return Float64RawDecoder{engine: engine}
}

// All yields count values decoded from data.
func (d Float64RawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*Float64Size {
			return
		}

		for i := range count {
			start := i * Float64Size
			if !yield(math.Float64frombits(d.engine.Uint64(data[start : start+Float64Size]))) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d Float64RawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * Float64Size
	if start+Float64Size > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[start : start+Float64Size])), true
}

// DecodeInto fills dst with the first len(dst) values of data.
//
// Returns:
//   - int: Number of bytes consumed
//   - error: ErrMalformedInput if data holds fewer than len(dst) values
func (d Float64RawDecoder) DecodeInto(dst []float64, data []byte) (int, error) {
	need := len(dst) * Float64Size
	if len(data) < need {
		return 0, fmt.Errorf("%w: need %d bytes for %d values, have %d", errs.ErrMalformedInput, need, len(dst), len(data))
	}

	for i := range dst {
		start := i * Float64Size
		dst[i] = math.Float64frombits(d.engine.Uint64(data[start : start+Float64Size]))
	}

	return need, nil
}
