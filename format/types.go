package format

import "strings"

// SourceEncoding identifies how a zone source file is stored on disk.
//
// The archive always holds decoded zone bytes; the encoding only matters to
// the source layer that reads them.
type SourceEncoding uint8

const (
	EncodingNone SourceEncoding = 0x1 // EncodingNone represents a plain zone file.
	EncodingZstd SourceEncoding = 0x2 // EncodingZstd represents a Zstandard-compressed zone file.
	EncodingS2   SourceEncoding = 0x3 // EncodingS2 represents an S2-compressed zone file.
	EncodingLZ4  SourceEncoding = 0x4 // EncodingLZ4 represents an LZ4 frame-compressed zone file.
)

// CompressedEncodings lists the encodings tried, in order, when looking for a
// compressed variant of a zone source file.
var CompressedEncodings = []SourceEncoding{EncodingZstd, EncodingS2, EncodingLZ4}

func (e SourceEncoding) String() string {
	switch e {
	case EncodingNone:
		return "None"
	case EncodingZstd:
		return "Zstd"
	case EncodingS2:
		return "S2"
	case EncodingLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix used for the encoding, including the
// leading dot. EncodingNone has no suffix.
func (e SourceEncoding) Extension() string {
	switch e {
	case EncodingZstd:
		return ".zst"
	case EncodingS2:
		return ".s2"
	case EncodingLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// EncodingFromPath returns the encoding implied by a file name suffix.
// Paths without a known suffix are EncodingNone.
func EncodingFromPath(path string) SourceEncoding {
	for _, enc := range CompressedEncodings {
		if strings.HasSuffix(path, enc.Extension()) {
			return enc
		}
	}

	return EncodingNone
}
