package commands

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/opencontainers/go-digest"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/hash"
)

// Manifest describes a packed archive for release tooling.
type Manifest struct {
	Archive string          `yaml:"archive"`
	Version string          `yaml:"version"`
	Size    int64           `yaml:"size"`
	Digest  digest.Digest   `yaml:"digest"`
	Zones   []ManifestEntry `yaml:"zones"`
}

// ManifestEntry is one zone of a Manifest, listed in data order.
type ManifestEntry struct {
	Name   string `yaml:"name"`
	Offset uint32 `yaml:"offset"`
	Length uint32 `yaml:"length"`
	XXHash string `yaml:"xxhash"`
	SameAs string `yaml:"same_as,omitempty"`
}

func newManifest(path, version string, size int64, dgst digest.Digest, idx *archive.Index) *Manifest {
	m := &Manifest{
		Archive: path,
		Version: version,
		Size:    size,
		Digest:  dgst,
		Zones:   make([]ManifestEntry, 0, idx.Len()),
	}

	for _, e := range idx.Entries() {
		sum, _ := idx.Digest(e.Name)
		first, _ := idx.DuplicateOf(e.Name)
		m.Zones = append(m.Zones, ManifestEntry{
			Name:   e.Name,
			Offset: e.Offset,
			Length: e.Length,
			XXHash: hash.Format(sum),
			SameAs: first,
		})
	}

	return m
}

// WriteFile writes the manifest as YAML.
func (m *Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	return nil
}

// ReadManifest reads a manifest written by WriteFile.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	return m, nil
}
