// Package errs defines the sentinel errors shared by the tzpack packages.
//
// Errors returned by tzpack are wrapped with context using fmt.Errorf and %w,
// so callers should match them with errors.Is:
//
//	if errors.Is(err, errs.ErrNameTooLong) {
//	    // handle
//	}
package errs

import "errors"

// Packing errors.
var (
	// ErrSourceNotFound is returned when a listed zone has no source data.
	ErrSourceNotFound = errors.New("zone source not found")
	// ErrNameTooLong is returned when a zone name does not fit the fixed index name field.
	ErrNameTooLong = errors.New("zone name too long")
	// ErrNonASCIIInput is returned when a version string or zone name contains a non-ASCII byte.
	ErrNonASCIIInput = errors.New("non-ASCII input")
	// ErrIOFailure wraps any failure creating, reading, writing or seeking files.
	ErrIOFailure = errors.New("i/o failure")
	// ErrVersionTooLong is returned when the version string does not fit the header version field.
	ErrVersionTooLong = errors.New("version string too long")
	// ErrInvalidZoneName is returned for empty zone names, names containing NUL,
	// or names that would escape a source directory.
	ErrInvalidZoneName = errors.New("invalid zone name")
	// ErrArchiveTooLarge is returned when an offset would not fit in 32 bits.
	ErrArchiveTooLarge = errors.New("archive too large")
	// ErrDuplicateZone is returned when an index is assembled with the same name twice.
	ErrDuplicateZone = errors.New("duplicate zone")
	// ErrBuilderFinished is returned when an index builder is used after Finish.
	ErrBuilderFinished = errors.New("index builder already finished")
	// ErrInvalidIndex is returned when a writer is given no index to encode.
	ErrInvalidIndex = errors.New("invalid index")
)

// Archive format errors.
var (
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidSectionOffsets = errors.New("invalid section offsets")
	ErrInvalidIndexSize      = errors.New("invalid index section size")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrOffsetOutOfRange      = errors.New("offset out of range")
	ErrIndexNotSorted        = errors.New("index not sorted")
	ErrZoneNotFound          = errors.New("zone not found")
)

// Setup and source errors.
var (
	ErrInvalidSetupLine    = errors.New("invalid setup line")
	ErrLinkCycle           = errors.New("zone link cycle")
	ErrUnsupportedEncoding = errors.New("unsupported source encoding")
	ErrZoneTooLarge        = errors.New("zone source too large")
	ErrDigestMismatch      = errors.New("zone digest mismatch")
)
