package compress

// ZstdCompressor handles zone files compressed with Zstandard.
//
// The pure Go implementation from klauspost/compress is used by default.
// Building with cgo and the gozstd tag switches to the libzstd binding from
// valyala/gozstd; both read and write the standard zstd frame format.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
