package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/options"
	"github.com/arloliu/tzpack/section"
)

const defaultFileMode fs.FileMode = 0o644

// Writer lays out an Index as an archive.
//
// The archive is assembled in memory and emitted in a single write: the
// header is written with zero offsets, followed by the sorted index and the
// data blob, and the offsets are patched in once every section position is
// known.
type Writer struct {
	header   section.Header
	fileMode fs.FileMode
	maxSize  uint64
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithFileMode sets the permission bits used by WriteFile when it creates
// the archive. The default is 0644.
func WithFileMode(mode fs.FileMode) WriterOption {
	return options.NoError(func(w *Writer) {
		w.fileMode = mode.Perm()
	})
}

// WithMaxArchiveSize caps the total archive size. The default, and the upper
// bound, is the largest offset the header can hold.
func WithMaxArchiveSize(n uint64) WriterOption {
	return options.Named("max archive size", func(w *Writer) error {
		if n < section.HeaderSize || n > section.MaxOffset {
			return fmt.Errorf("must be in [%d, %d], got %d", section.HeaderSize, uint64(section.MaxOffset), n)
		}
		w.maxSize = n

		return nil
	})
}

// NewWriter creates a Writer that stamps archives with version.
//
// Parameters:
//   - version: ASCII tzdata version, at most 12 bytes (e.g. "tzdata2025a")
//   - opts: optional writer options
//
// Returns:
//   - *Writer: the writer
//   - error: ErrVersionTooLong or ErrNonASCIIInput for a bad version
func NewWriter(version string, opts ...WriterOption) (*Writer, error) {
	h, err := section.NewHeader(version)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		header:   *h,
		fileMode: defaultFileMode,
		maxSize:  section.MaxOffset,
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Version returns the version stamped into archives.
func (w *Writer) Version() string {
	return w.header.VersionString()
}

// Validate checks every zone name in idx and that the resulting archive
// fits the configured maximum size. Encode calls it before writing anything.
func (w *Writer) Validate(idx *Index) error {
	_, err := w.Layout(idx)
	return err
}

// Layout validates idx and returns the header the archive would carry.
func (w *Writer) Layout(idx *Index) (section.Header, error) {
	if idx == nil {
		return section.Header{}, fmt.Errorf("%w: nil index", errs.ErrInvalidIndex)
	}

	for _, e := range idx.entries {
		if err := section.ValidateZoneName(e.Name); err != nil {
			return section.Header{}, err
		}
	}

	indexSize := uint64(idx.Len()) * section.IndexEntrySize
	dataSize := uint64(len(idx.data))
	total := section.HeaderSize + indexSize + dataSize
	if total > w.maxSize {
		return section.Header{}, fmt.Errorf("%w: %d zones and %d data bytes need %d bytes, max %d",
			errs.ErrArchiveTooLarge, idx.Len(), dataSize, total, w.maxSize)
	}

	h := w.header
	// total is bounded by maxSize, which fits in u32
	h.IndexOffset = section.HeaderSize
	h.DataOffset = uint32(section.HeaderSize + indexSize) //nolint: gosec
	h.FinalOffset = uint32(total)                         //nolint: gosec

	return h, nil
}

// Encode returns the complete archive for idx.
//
// Every zone name is validated before any byte is produced, so an invalid
// name yields no output at all.
func (w *Writer) Encode(idx *Index) ([]byte, error) {
	layout, err := w.Layout(idx)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, layout.FinalOffset)

	// version followed by zero placeholders for the three offsets
	header := w.header
	buf = append(buf, header.Bytes()...)

	header.IndexOffset = uint32(len(buf)) //nolint: gosec
	for _, e := range idx.Sorted() {
		entry, err := section.NewIndexEntry(e.Name, e.Offset, e.Length)
		if err != nil {
			return nil, err
		}
		buf = entry.AppendTo(buf)
	}

	header.DataOffset = uint32(len(buf)) //nolint: gosec
	buf = append(buf, idx.data...)

	header.FinalOffset = uint32(len(buf)) //nolint: gosec
	header.PatchOffsets(buf)

	return buf, nil
}

// WriteArchive encodes idx and writes it to dst in one call.
func (w *Writer) WriteArchive(dst io.Writer, idx *Index) (int64, error) {
	data, err := w.Encode(idx)
	if err != nil {
		return 0, err
	}

	n, err := dst.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	return int64(n), nil
}

// WriteFile encodes idx and writes it to path, creating or truncating the
// file.
//
// The archive is encoded before the file is opened, so validation errors
// leave any existing file untouched. The write itself is not atomic: an I/O
// failure part way through may leave a truncated file behind.
func (w *Writer) WriteFile(path string, idx *Index) (err error) {
	data, err := w.Encode(idx)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, w.fileMode)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", errs.ErrIOFailure, path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %w", errs.ErrIOFailure, path, err)
	}

	return nil
}
