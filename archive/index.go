package archive

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/hash"
)

// Entry locates one zone's bytes within the data section.
type Entry struct {
	Name   string
	Offset uint32 // relative to the start of the data section
	Length uint32
}

// End returns the data-relative position just past the zone bytes.
func (e Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

func compareEntries(a, b Entry) int {
	return strings.Compare(a.Name, b.Name)
}

// Index is the result of an IndexBuilder: the data blob plus one entry per
// zone, kept in insertion order.
type Index struct {
	entries []Entry
	digests []uint64
	byName  map[string]int
	dupOf   map[string]string
	data    []byte

	collisions int
}

// Stats summarizes an Index.
type Stats struct {
	// Zones is the number of entries.
	Zones int
	// DataSize is the size of the data blob in bytes.
	DataSize int
	// DuplicateZones counts zones whose bytes are identical to an earlier zone.
	// These are usually aliases that could be declared as links.
	DuplicateZones int
	// DuplicateBytes is the part of DataSize taken by duplicate zones.
	DuplicateBytes int
	// HashCollisions counts zones whose digest matched an earlier zone with
	// different bytes.
	HashCollisions int
}

// NewIndex assembles an Index from explicit entries and a data blob.
//
// Entries must have distinct names and lie inside data; they may overlap.
// Most callers should use IndexBuilder instead.
func NewIndex(entries []Entry, data []byte) (*Index, error) {
	idx := &Index{
		entries: make([]Entry, 0, len(entries)),
		digests: make([]uint64, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		data:    data,
	}

	for _, e := range entries {
		if _, exists := idx.byName[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateZone, e.Name)
		}

		if e.End() > uint64(len(data)) {
			return nil, fmt.Errorf("%w: %q ends at %d, data is %d bytes",
				errs.ErrOffsetOutOfRange, e.Name, e.End(), len(data))
		}

		idx.add(e, hash.Sum(data[e.Offset:e.End()]))
	}

	return idx, nil
}

func (idx *Index) add(e Entry, digest uint64) {
	idx.byName[e.Name] = len(idx.entries)
	idx.entries = append(idx.entries, e)
	idx.digests = append(idx.digests, digest)
}

// Len returns the number of zones.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Data returns the data blob. The slice must not be modified.
func (idx *Index) Data() []byte {
	return idx.data
}

// Entries returns a copy of the entries in insertion order, which is also the
// order of their bytes in the data blob.
func (idx *Index) Entries() []Entry {
	return slices.Clone(idx.entries)
}

// Sorted returns a copy of the entries sorted by name in ascending byte
// order, the order of the archive index section.
func (idx *Index) Sorted() []Entry {
	sorted := slices.Clone(idx.entries)
	slices.SortFunc(sorted, compareEntries)

	return sorted
}

// Entry returns the entry for name.
func (idx *Index) Entry(name string) (Entry, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Entry{}, false
	}

	return idx.entries[i], true
}

// Bytes returns the zone bytes for name as a sub-slice of the data blob.
func (idx *Index) Bytes(name string) ([]byte, bool) {
	e, ok := idx.Entry(name)
	if !ok {
		return nil, false
	}

	return idx.data[e.Offset:e.End()], true
}

// Digest returns the xxHash64 digest of the zone bytes for name.
func (idx *Index) Digest(name string) (uint64, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return 0, false
	}

	return idx.digests[i], true
}

// DuplicateOf returns the first zone added with bytes identical to name's,
// if name is such a duplicate.
func (idx *Index) DuplicateOf(name string) (string, bool) {
	first, ok := idx.dupOf[name]
	return first, ok
}

// Stats returns a summary of the index.
func (idx *Index) Stats() Stats {
	s := Stats{
		Zones:          len(idx.entries),
		DataSize:       len(idx.data),
		DuplicateZones: len(idx.dupOf),
		HashCollisions: idx.collisions,
	}

	for name := range idx.dupOf {
		e, _ := idx.Entry(name)
		s.DuplicateBytes += int(e.Length)
	}

	return s
}
