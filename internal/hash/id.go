// Package hash computes the xxHash64 digests tzpack uses to fingerprint zone
// contents.
package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumString computes the xxHash64 of s without copying it.
func SumString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Format renders a digest as 16 lowercase hex digits.
func Format(digest uint64) string {
	s := strconv.FormatUint(digest, 16)
	for len(s) < 16 {
		s = "0" + s
	}

	return s
}

// Parse parses a digest produced by Format.
func Parse(s string) (uint64, error) {
	return strconv.ParseUint(s, 16, 64)
}
