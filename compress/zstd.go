package compress

// ZstdCompressor compresses payloads with Zstandard.
//
// It gives the best ratio of the built-in codecs and is the default for
// snapshots written by the lutconv tool. The pure Go implementation from
// klauspost/compress is used unless the module is built with the gozstd tag
// and cgo enabled, which switches to the libzstd bindings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
