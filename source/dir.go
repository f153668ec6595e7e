package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arloliu/tzpack/compress"
	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/format"
	"github.com/arloliu/tzpack/internal/options"
	"github.com/arloliu/tzpack/section"
)

// Dir fetches zones from a directory tree laid out like zic output, where
// the zone "America/Argentina/Jujuy" lives at <root>/America/Argentina/Jujuy.
type Dir struct {
	root        string
	compressed  bool
	maxZoneSize int64
}

var _ Fetcher = (*Dir)(nil)

// DirOption configures a Dir.
type DirOption = options.Option[*Dir]

// WithCompressedVariants makes Dir fall back to <id>.zst, <id>.s2 and
// <id>.lz4, in that order, when the plain file does not exist.
func WithCompressedVariants() DirOption {
	return options.NoError(func(d *Dir) {
		d.compressed = true
	})
}

// WithMaxZoneSize rejects zone files larger than n bytes once decoded.
// The default is the largest length an index entry can record.
func WithMaxZoneSize(n int64) DirOption {
	return options.Named("max zone size", func(d *Dir) error {
		if n <= 0 {
			return fmt.Errorf("must be positive, got %d", n)
		}
		d.maxZoneSize = n

		return nil
	})
}

// NewDir creates a Fetcher reading zone files under root.
func NewDir(root string, opts ...DirOption) (*Dir, error) {
	d := &Dir{
		root:        root,
		maxZoneSize: section.MaxOffset,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Root returns the directory zones are read from.
func (d *Dir) Root() string {
	return d.root
}

// Fetch reads the zone file for id.
func (d *Dir) Fetch(id string) ([]byte, error) {
	rel := filepath.FromSlash(id)
	if id == "" || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %q is not a path below the source directory", errs.ErrInvalidZoneName, id)
	}

	path := filepath.Join(d.root, rel)
	data, err := d.readFile(path, format.EncodingNone)
	if err == nil || !errors.Is(err, errs.ErrSourceNotFound) || !d.compressed {
		return data, err
	}

	for _, enc := range format.CompressedEncodings {
		data, err := d.readFile(path+enc.Extension(), enc)
		if errors.Is(err, errs.ErrSourceNotFound) {
			continue
		}

		return data, err
	}

	return nil, fmt.Errorf("%w: %q in %s", errs.ErrSourceNotFound, id, d.root)
}

func (d *Dir) readFile(path string, enc format.SourceEncoding) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errs.ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", errs.ErrSourceNotFound, path)
	}

	if enc == format.EncodingNone && info.Size() > d.maxZoneSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, max %d", errs.ErrZoneTooLarge, path, info.Size(), d.maxZoneSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	if enc == format.EncodingNone {
		return data, nil
	}

	decoded, err := compress.Decode(enc, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrIOFailure, path, err)
	}

	if int64(len(decoded)) > d.maxZoneSize {
		return nil, fmt.Errorf("%w: %s decodes to %d bytes, max %d", errs.ErrZoneTooLarge, path, len(decoded), d.maxZoneSize)
	}

	return decoded, nil
}
