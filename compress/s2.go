package compress

import "github.com/klauspost/compress/s2"

// S2Compressor reads and writes ".s2" zone sources.
//
// Zone files are small enough to be encoded as a single S2 block, which is
// what s2.Encode produces. Stream-framed files written by the s2c tool are
// not accepted; decompress those to blocks first.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns the codec for ".s2" zone sources.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes a zone file as one S2 block. An empty zone stays empty.
func (c S2Compressor) Compress(zone []byte) ([]byte, error) {
	if len(zone) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, zone), nil
}

// Decompress decodes a single S2 block back to the zone file bytes.
//
// The block header carries the decoded length, so the output is allocated
// once at its final size.
func (c S2Compressor) Decompress(block []byte) ([]byte, error) {
	if len(block) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, block)
}
