// Package tzpack packs individually stored binary timezone rule files into a
// single indexed archive and reads such archives back.
//
// An archive has three sections after a fixed 24-byte header:
//
//   - the tzdata version, zero-padded to 12 bytes, and three big-endian u32
//     offsets: index, data and final
//   - the index: one 48-byte entry per zone, sorted by zone name
//   - the data: every zone's bytes, concatenated in the order zones were listed
//
// # Basic Usage
//
// Packing from a setup file, the way the tzdata build does it:
//
//	path, err := tzpack.PackSetup("setup", "zoneinfo", "out", "tzdata2025a")
//	// path == "out/tzdata"
//
// Packing from memory:
//
//	zones := source.Map{
//	    "Europe/Paris": paris,
//	    "GMT":          gmt,
//	}
//	data, err := tzpack.Pack([]string{"Europe/Paris", "GMT"}, zones, "tzdata2025a")
//
// Reading:
//
//	a, _ := tzpack.OpenFile("out/tzdata")
//	paris, err := a.Lookup("Europe/Paris")
//
// # Package Structure
//
// This package provides top-level wrappers around the archive, source and
// zoneset packages for the common cases. Use those packages directly for
// incremental building, custom fetchers or writer options.
package tzpack

import (
	"path/filepath"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/source"
	"github.com/arloliu/tzpack/zoneset"
)

// ArchiveFileName is the name of the archive written into the output directory.
const ArchiveFileName = "tzdata"

// Pack fetches every zone in ids and returns the encoded archive.
//
// Parameters:
//   - ids: zone identifiers in data order; duplicates are collapsed
//   - f: where zone bytes come from
//   - version: tzdata version stamped into the header, at most 12 ASCII bytes
//
// Returns:
//   - []byte: the complete archive
//   - error: the first fetch or validation failure
func Pack(ids []string, f source.Fetcher, version string) ([]byte, error) {
	w, err := archive.NewWriter(version)
	if err != nil {
		return nil, err
	}

	idx, err := archive.BuildIndex(ids, f)
	if err != nil {
		return nil, err
	}

	return w.Encode(idx)
}

// PackFile is like Pack but writes the archive to path.
func PackFile(path string, ids []string, f source.Fetcher, version string) error {
	w, err := archive.NewWriter(version)
	if err != nil {
		return err
	}

	idx, err := archive.BuildIndex(ids, f)
	if err != nil {
		return err
	}

	return w.WriteFile(path, idx)
}

// PackSetup packs the zones listed in setupFile, reading each from dataDir,
// and writes the archive to outputDir/tzdata. "Link <target> <link name>"
// lines in the setup file make the link name reuse the target zone's file.
//
// outputDir must already exist.
//
// Returns the path of the written archive.
func PackSetup(setupFile, dataDir, outputDir, version string, opts ...source.DirOption) (string, error) {
	setup, err := zoneset.ReadSetupFile(setupFile)
	if err != nil {
		return "", err
	}

	dir, err := source.NewDir(dataDir, opts...)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, ArchiveFileName)
	if err := PackFile(path, setup.Zones.Names(), source.WithLinks(dir, setup.Links), version); err != nil {
		return "", err
	}

	return path, nil
}

// Open parses an archive held in memory.
func Open(data []byte) (*archive.Archive, error) {
	return archive.Open(data)
}

// OpenFile reads and parses the archive at path.
func OpenFile(path string) (*archive.Archive, error) {
	return archive.OpenFile(path)
}
