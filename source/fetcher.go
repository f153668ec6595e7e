// Package source supplies the raw bytes of each zone to the archive builder.
//
// The archive package only needs a Fetcher; this package provides the
// implementations used by the command line tool and by tests:
//
//	dir := source.NewDir("out/zoneinfo", source.WithCompressedVariants())
//	fetcher := source.WithLinks(dir, setup.Links)
//	data, err := fetcher.Fetch("Africa/Dakar")
//
// Zone bytes are opaque; nothing here parses or validates TZif content.
package source

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/tzpack/errs"
)

// Fetcher returns the raw bytes of a zone.
//
// Implementations return an error wrapping errs.ErrSourceNotFound when no
// data exists for id, and errs.ErrIOFailure for other read failures.
type Fetcher interface {
	Fetch(id string) ([]byte, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(id string) ([]byte, error)

// Fetch calls f(id).
func (f FetchFunc) Fetch(id string) ([]byte, error) {
	return f(id)
}

// Map is an in-memory Fetcher keyed by zone identifier.
type Map map[string][]byte

var _ Fetcher = Map(nil)

// Fetch returns the bytes stored for id.
func (m Map) Fetch(id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrSourceNotFound, id)
	}

	return data, nil
}

// Names returns the identifiers in m in sorted order.
func (m Map) Names() []string {
	return slices.Sorted(maps.Keys(m))
}
