package section

import (
	"fmt"

	"github.com/arloliu/tzpack/errs"
)

// IndexEntry describes one zone in the index section. It is a fixed 48 bytes:
//
//	Bytes  | Field  | Description
//	-------|--------|------------------------------------------
//	0-39   | Name   | ASCII zone name, zero-padded
//	40-43  | Offset | start of the zone bytes, relative to DataOffset
//	44-47  | Length | number of zone bytes
//
// Offsets follow the order zones were added to the archive, not the sorted
// order of the index, so consecutive entries are not contiguous in general.
type IndexEntry struct {
	Name   [ZoneNameSize]byte
	Offset uint32
	Length uint32
}

// NewIndexEntry validates name and builds an entry for it.
func NewIndexEntry(name string, offset, length uint32) (IndexEntry, error) {
	var e IndexEntry
	if err := ValidateZoneName(name); err != nil {
		return e, err
	}

	_ = PutASCII(e.Name[:], name)
	e.Offset = offset
	e.Length = length

	return e, nil
}

// ZoneName returns the name without its zero padding.
func (e *IndexEntry) ZoneName() string {
	return ASCIIString(e.Name[:])
}

// End returns the data-relative position just past the zone bytes.
// It is computed in 64 bits so corrupt entries cannot wrap around.
func (e *IndexEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// AppendTo appends the serialized entry to b.
func (e *IndexEntry) AppendTo(b []byte) []byte {
	b = append(b, e.Name[:]...)
	b = engine.AppendUint32(b, e.Offset)

	return engine.AppendUint32(b, e.Length)
}

// ParseIndexEntry parses an index entry from the first IndexEntrySize bytes of data.
func ParseIndexEntry(data []byte) (IndexEntry, error) {
	var e IndexEntry
	if len(data) < IndexEntrySize {
		return e, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidIndexEntrySize, len(data), IndexEntrySize)
	}

	copy(e.Name[:], data[:ZoneNameSize])
	e.Offset = engine.Uint32(data[ZoneNameSize:])
	e.Length = engine.Uint32(data[ZoneNameSize+4:])

	return e, nil
}
