package compress

import (
	"fmt"

	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/format"
)

// Compressor compresses a whole zone file in one call.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a zone file compressed by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes of data. It returns an error if
	// data is corrupt or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.SourceEncoding]Codec{
	format.EncodingNone: NewNoOpCompressor(),
	format.EncodingZstd: NewZstdCompressor(),
	format.EncodingS2:   NewS2Compressor(),
	format.EncodingLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for enc.
//
// Built-in codecs are stateless values and safe for concurrent use.
func GetCodec(enc format.SourceEncoding) (Codec, error) {
	if codec, ok := builtinCodecs[enc]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnsupportedEncoding, enc, uint8(enc))
}

// Decode decompresses data stored with enc.
func Decode(enc format.SourceEncoding, data []byte) ([]byte, error) {
	codec, err := GetCodec(enc)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decode: %w", enc, err)
	}

	return out, nil
}
