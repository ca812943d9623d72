package encoding

import "iter"

// ColumnarEncoder accumulates encoded values of type T in an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded bytes. The slice is valid until the next
	// Write, WriteSlice, Reset or Finish call and must not be modified.
	Bytes() []byte

	// Len returns the number of values written since the last Reset.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset empties the encoder so it can be reused.
	Reset()

	// Finish releases the internal buffer. The encoder must not be used
	// afterwards.
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes every value of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of type T from encoded bytes.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count decoded values. It yields nothing if data is
	// shorter than count values.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false if index is outside
	// [0, count) or data is too short.
	At(data []byte, index int, count int) (T, bool)
}
