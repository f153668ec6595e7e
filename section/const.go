package section

import "math"

// Field and section sizes of the archive layout, in bytes.
const (
	VersionSize    = 12                   // zero-padded ASCII version string at offset 0
	HeaderSize     = VersionSize + 3*4    // version + index, data and final offsets
	ZoneNameSize   = 40                   // zero-padded ASCII zone name in an index entry
	MaxZoneNameLen = ZoneNameSize - 1     // longest name that still leaves a zero terminator
	IndexEntrySize = ZoneNameSize + 4 + 4 // name + data offset + data length
)

// Byte positions of the header offset fields. The writer stores zero
// placeholders here and patches them once the section positions are known.
const (
	IndexOffsetField = VersionSize     // 12
	DataOffsetField  = VersionSize + 4 // 16
	FinalOffsetField = VersionSize + 8 // 20
)

const (
	// MaxOffset is the largest position or length a u32 field can hold.
	MaxOffset = math.MaxUint32
	// MaxASCII is the largest byte value accepted in versions and zone names ('~').
	MaxASCII = 0x7E
)
