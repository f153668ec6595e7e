// Package section defines the fixed binary structures of the tzpack archive format.
//
// An archive is a single file holding many zone files and a sorted index:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Header (24 bytes, fixed)                             │
//	│  - Version (12 bytes): ASCII, zero-padded            │
//	│  - IndexOffset (4 bytes)                             │
//	│  - DataOffset (4 bytes)                              │
//	│  - FinalOffset (4 bytes)                             │
//	├──────────────────────────────────────────────────────┤
//	│ Index (N × 48 bytes, sorted by zone name)            │
//	│  - Name (40 bytes): ASCII, zero-padded               │
//	│  - Offset (4 bytes): relative to DataOffset          │
//	│  - Length (4 bytes)                                  │
//	├──────────────────────────────────────────────────────┤
//	│ Data (variable)                                      │
//	│  - zone bytes concatenated in insertion order        │
//	├──────────────────────────────────────────────────────┤
//	│ Future sections (optional, after FinalOffset)        │
//	└──────────────────────────────────────────────────────┘
//
// All integers are unsigned 32-bit big-endian.
//
// Names are at most 39 bytes so the 40-byte field always ends in at least one
// zero byte; readers may treat the field as a NUL-terminated C string. Only
// bytes up to 0x7E ('~') are accepted in names and in the version string.
//
// The index and data sections are ordered independently: the index is sorted
// so a reader can binary search it, while the data keeps the order in which
// zones were added. Existing readers depend on both orders.
//
// Most users should use the archive package instead of this one.
package section
