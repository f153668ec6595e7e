//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zoneZstdLevel matches zstd.SpeedDefault in the pure Go build, so ".zst"
// zone sources written by either build are comparable in size.
const zoneZstdLevel = 3

// Compress writes a zone file as one zstd frame using libzstd.
func (c ZstdCompressor) Compress(zone []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, zone, zoneZstdLevel), nil
}

// Decompress reads a ".zst" zone source using libzstd. Any standard zstd
// frame is accepted, including ones written by the zstd command line tool.
func (c ZstdCompressor) Decompress(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, nil
	}

	zone, err := gozstd.Decompress(nil, frame)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return zone, nil
}
