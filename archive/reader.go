package archive

import (
	"cmp"
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/section"
)

// Archive is a parsed, validated archive held in memory.
//
// Lookups return sub-slices of the underlying buffer; callers must not
// modify them. An Archive is safe for concurrent reads.
type Archive struct {
	header  section.Header
	entries []Entry // sorted by name, as stored in the index section
	data    []byte  // data section
	trailer []byte  // bytes after FinalOffset
}

// Open parses and validates an archive. data is retained, not copied.
//
// Validation covers the header size, the section offsets, the index size,
// that index names are strictly ascending, and that every entry lies inside
// the data section. Bytes after the final offset are kept as the trailer and
// not interpreted.
func Open(data []byte) (*Archive, error) {
	if len(data) < section.HeaderSize {
		return nil, fmt.Errorf("%w: archive is %d bytes, want at least %d",
			errs.ErrInvalidHeaderSize, len(data), section.HeaderSize)
	}

	a := &Archive{}
	if err := a.header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	if err := a.header.Validate(len(data)); err != nil {
		return nil, err
	}

	a.data = data[a.header.DataOffset:a.header.FinalOffset]
	a.trailer = data[a.header.FinalOffset:]

	if err := a.parseIndex(data[a.header.IndexOffset:a.header.DataOffset]); err != nil {
		return nil, err
	}

	return a, nil
}

// OpenFile reads and opens the archive at path.
func OpenFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	a, err := Open(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

func (a *Archive) parseIndex(index []byte) error {
	count := len(index) / section.IndexEntrySize
	a.entries = make([]Entry, count)

	for i := range count {
		raw, err := section.ParseIndexEntry(index[i*section.IndexEntrySize:])
		if err != nil {
			return err
		}

		e := Entry{Name: raw.ZoneName(), Offset: raw.Offset, Length: raw.Length}
		if e.End() > uint64(len(a.data)) {
			return fmt.Errorf("%w: %q ends at %d, data section is %d bytes",
				errs.ErrOffsetOutOfRange, e.Name, e.End(), len(a.data))
		}

		if i > 0 && a.entries[i-1].Name >= e.Name {
			return fmt.Errorf("%w: %q follows %q", errs.ErrIndexNotSorted, e.Name, a.entries[i-1].Name)
		}

		a.entries[i] = e
	}

	return nil
}

// Version returns the archive version without padding.
func (a *Archive) Version() string {
	return a.header.VersionString()
}

// Header returns a copy of the archive header.
func (a *Archive) Header() section.Header {
	return a.header
}

// Len returns the number of zones.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Names returns the zone names in index order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}

	return names
}

// Entries returns a copy of the index entries in index order.
func (a *Archive) Entries() []Entry {
	return slices.Clone(a.entries)
}

// Entry finds name in the index by binary search.
func (a *Archive) Entry(name string) (Entry, bool) {
	i, found := slices.BinarySearchFunc(a.entries, name, func(e Entry, name string) int {
		return strings.Compare(e.Name, name)
	})
	if found {
		return a.entries[i], true
	}

	return Entry{}, false
}

// Lookup returns the bytes of zone name.
func (a *Archive) Lookup(name string) ([]byte, error) {
	e, ok := a.Entry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrZoneNotFound, name)
	}

	return a.data[e.Offset:e.End()], nil
}

// Data returns the whole data section.
func (a *Archive) Data() []byte {
	return a.data
}

// Trailer returns the bytes after the final offset. Current writers never
// produce any.
func (a *Archive) Trailer() []byte {
	return a.trailer
}

// All iterates over the zones in index order, yielding each entry with its
// bytes.
func (a *Archive) All() iter.Seq2[Entry, []byte] {
	return func(yield func(Entry, []byte) bool) {
		for _, e := range a.entries {
			if !yield(e, a.data[e.Offset:e.End()]) {
				return
			}
		}
	}
}

// Index rebuilds an Index from the archive, with entries in data order.
// Writing it back produces the same bytes as the original archive, minus any
// trailer.
func (a *Archive) Index() (*Index, error) {
	byOffset := a.Entries()
	slices.SortStableFunc(byOffset, func(x, y Entry) int {
		return cmp.Compare(x.Offset, y.Offset)
	})

	return NewIndex(byOffset, a.data)
}
