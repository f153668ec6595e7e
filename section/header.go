package section

import (
	"fmt"

	"github.com/arloliu/tzpack/endian"
	"github.com/arloliu/tzpack/errs"
)

var engine = endian.ArchiveEngine()

// Header is the fixed 24-byte header at the start of an archive.
//
// The three offsets are absolute file positions. FinalOffset marks the end of
// the sections defined today; later format revisions may append sections
// after it, so it need not equal the file size.
type Header struct {
	// Version is the ASCII tzdata version, zero-padded (e.g. "tzdata2025a").
	Version [VersionSize]byte // 12 bytes, offset 0-11
	// IndexOffset is the position of the first index entry.
	IndexOffset uint32 // 4 bytes, offset 12-15
	// DataOffset is the position of the data section.
	DataOffset uint32 // 4 bytes, offset 16-19
	// FinalOffset is the position just past the data section.
	FinalOffset uint32 // 4 bytes, offset 20-23
}

// NewHeader creates a header for version with zero offsets.
func NewHeader(version string) (*Header, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}

	h := &Header{}
	_ = PutASCII(h.Version[:], version)

	return h, nil
}

// VersionString returns the version without its zero padding.
func (h *Header) VersionString() string {
	return ASCIIString(h.Version[:])
}

// IndexCount returns the number of index entries implied by the offsets.
// It assumes the header passed Validate.
func (h *Header) IndexCount() int {
	return int(h.DataOffset-h.IndexOffset) / IndexEntrySize
}

// DataSize returns the size of the data section.
func (h *Header) DataSize() uint32 {
	return h.FinalOffset - h.DataOffset
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	copy(h.Version[:], data[:VersionSize])
	h.IndexOffset = engine.Uint32(data[IndexOffsetField:])
	h.DataOffset = engine.Uint32(data[DataOffsetField:])
	h.FinalOffset = engine.Uint32(data[FinalOffsetField:])

	return nil
}

// Validate checks that the offsets describe well-ordered sections inside a
// file of fileSize bytes and that the index section holds whole entries.
func (h *Header) Validate(fileSize int) error {
	if h.IndexOffset < HeaderSize || h.IndexOffset > h.DataOffset || h.DataOffset > h.FinalOffset ||
		int64(h.FinalOffset) > int64(fileSize) {
		return fmt.Errorf("%w: index=%d data=%d final=%d size=%d",
			errs.ErrInvalidSectionOffsets, h.IndexOffset, h.DataOffset, h.FinalOffset, fileSize)
	}

	if (h.DataOffset-h.IndexOffset)%IndexEntrySize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d",
			errs.ErrInvalidIndexSize, h.DataOffset-h.IndexOffset, IndexEntrySize)
	}

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	_ = h.WriteToSlice(b)

	return b
}

// WriteToSlice writes the header into the first HeaderSize bytes of b.
func (h *Header) WriteToSlice(b []byte) error {
	if len(b) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	copy(b[:VersionSize], h.Version[:])
	h.PatchOffsets(b)

	return nil
}

// PatchOffsets overwrites the three offset fields of an already written
// header in b. b must hold at least HeaderSize bytes.
func (h *Header) PatchOffsets(b []byte) {
	engine.PutUint32(b[IndexOffsetField:], h.IndexOffset)
	engine.PutUint32(b[DataOffsetField:], h.DataOffset)
	engine.PutUint32(b[FinalOffsetField:], h.FinalOffset)
}
