package archive

import (
	"bytes"
	"fmt"

	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/collision"
	"github.com/arloliu/tzpack/internal/hash"
	"github.com/arloliu/tzpack/internal/options"
	"github.com/arloliu/tzpack/internal/pool"
	"github.com/arloliu/tzpack/section"
	"github.com/arloliu/tzpack/source"
)

const initialIndexCapacity = 64

// IndexBuilder accumulates zones into a data blob and an Index.
//
// Zones are appended in the order they are added; adding a name that is
// already present is a no-op, so callers may pass lists with duplicates.
//
// Note: The IndexBuilder is NOT thread-safe and NOT reusable. After Finish,
// a new builder must be created.
type IndexBuilder struct {
	idx         *Index
	buf         *pool.ByteBuffer
	dups        *collision.Tracker
	sum         func([]byte) uint64
	maxDataSize uint64
	finished    bool
}

// BuilderOption configures an IndexBuilder.
type BuilderOption = options.Option[*IndexBuilder]

// WithBlobCapacity reserves n bytes for the data blob up front.
func WithBlobCapacity(n int) BuilderOption {
	return options.Named("blob capacity", func(b *IndexBuilder) error {
		if n < 0 {
			return fmt.Errorf("must not be negative, got %d", n)
		}
		b.buf.Grow(n)

		return nil
	})
}

// WithMaxDataSize caps the data blob at n bytes. The default, and the upper
// bound, is the largest offset a u32 index field can hold.
func WithMaxDataSize(n uint64) BuilderOption {
	return options.Named("max data size", func(b *IndexBuilder) error {
		if n > section.MaxOffset {
			return fmt.Errorf("%d exceeds %d", n, uint64(section.MaxOffset))
		}
		b.maxDataSize = n

		return nil
	})
}

// NewIndexBuilder creates an empty IndexBuilder.
func NewIndexBuilder(opts ...BuilderOption) (*IndexBuilder, error) {
	b := &IndexBuilder{
		idx: &Index{
			entries: make([]Entry, 0, initialIndexCapacity),
			digests: make([]uint64, 0, initialIndexCapacity),
			byName:  make(map[string]int, initialIndexCapacity),
		},
		buf:         pool.GetBlobBuffer(),
		dups:        collision.NewTracker(),
		sum:         hash.Sum,
		maxDataSize: section.MaxOffset,
	}

	if err := options.Apply(b, opts...); err != nil {
		pool.PutBlobBuffer(b.buf)
		return nil, err
	}

	return b, nil
}

// Len returns the number of zones added so far.
func (b *IndexBuilder) Len() int {
	return len(b.idx.entries)
}

// DataSize returns the current size of the data blob.
func (b *IndexBuilder) DataSize() int {
	if b.buf == nil {
		return len(b.idx.data)
	}

	return b.buf.Len()
}

// Contains reports whether name was already added.
func (b *IndexBuilder) Contains(name string) bool {
	_, ok := b.idx.byName[name]
	return ok
}

// Add appends data as the bytes of zone name.
//
// The zone's offset is the current blob length and its length is len(data).
// Add reports false, without touching the blob, if name was already added.
//
// Returns:
//   - bool: whether the zone was added
//   - error: ErrBuilderFinished, or ErrArchiveTooLarge if the blob would exceed
//     the maximum data size
func (b *IndexBuilder) Add(name string, data []byte) (bool, error) {
	if b.finished {
		return false, errs.ErrBuilderFinished
	}

	if b.Contains(name) {
		return false, nil
	}

	offset := uint64(b.buf.Len())
	if offset+uint64(len(data)) > b.maxDataSize {
		return false, fmt.Errorf("%w: adding %q (%d bytes) to %d bytes of data exceeds %d",
			errs.ErrArchiveTooLarge, name, len(data), offset, b.maxDataSize)
	}

	digest := b.sum(data)
	b.dups.Track(name, digest, func(earlier string) bool {
		e, _ := b.idx.Entry(earlier)
		return bytes.Equal(b.buf.Bytes()[e.Offset:e.End()], data)
	})

	_, _ = b.buf.Write(data)

	b.idx.add(Entry{Name: name, Offset: uint32(offset), Length: uint32(len(data))}, digest) //nolint: gosec

	return true, nil
}

// AddFrom fetches zone name from f and adds it. Names already added are not
// fetched again.
func (b *IndexBuilder) AddFrom(name string, f source.Fetcher) (bool, error) {
	if b.finished {
		return false, errs.ErrBuilderFinished
	}

	if b.Contains(name) {
		return false, nil
	}

	data, err := f.Fetch(name)
	if err != nil {
		return false, fmt.Errorf("zone %q: %w", name, err)
	}

	return b.Add(name, data)
}

// Finish returns the completed Index. The builder cannot be used afterwards.
func (b *IndexBuilder) Finish() (*Index, error) {
	if b.finished {
		return nil, errs.ErrBuilderFinished
	}
	b.finished = true

	idx := b.idx
	idx.data = b.buf.Clone()
	idx.dupOf = b.dups.Duplicates()
	idx.collisions = b.dups.Collisions()

	pool.PutBlobBuffer(b.buf)
	b.buf = nil
	b.dups = nil

	return idx, nil
}

// release returns the pooled buffer of a builder abandoned after an error.
func (b *IndexBuilder) release() {
	if b.finished {
		return
	}
	b.finished = true
	pool.PutBlobBuffer(b.buf)
	b.buf = nil
}

// Build fetches every zone in ids, in order, and finishes the builder.
// The first fetch failure aborts the build; no partial index is returned and
// the builder cannot be used again.
func (b *IndexBuilder) Build(ids []string, f source.Fetcher) (*Index, error) {
	for _, id := range ids {
		if _, err := b.AddFrom(id, f); err != nil {
			b.release()
			return nil, err
		}
	}

	return b.Finish()
}

// BuildIndex creates an IndexBuilder with opts and runs Build.
func BuildIndex(ids []string, f source.Fetcher, opts ...BuilderOption) (*Index, error) {
	b, err := NewIndexBuilder(opts...)
	if err != nil {
		return nil, err
	}

	return b.Build(ids, f)
}
