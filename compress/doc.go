// Package compress decodes zone source files that are stored compressed.
//
// Some build trees keep compiled zone files compressed to save space (for
// example "Africa/Dakar.zst"). The source package uses these codecs to turn
// such files back into the raw TZif bytes before they are packed; archives
// themselves are never compressed.
//
// Supported encodings, selected by format.SourceEncoding:
//
//	format.EncodingNone  plain file, passed through
//	format.EncodingZstd  Zstandard frame (klauspost/compress, or valyala/gozstd with -tags gozstd)
//	format.EncodingS2    S2 block (klauspost/compress/s2)
//	format.EncodingLZ4   LZ4 frame (pierrec/lz4)
//
// Example:
//
//	raw, err := compress.Decode(format.EncodingFromPath(path), data)
//	if err != nil {
//	    return err
//	}
//
// All codecs are safe for concurrent use.
package compress
