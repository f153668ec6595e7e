// Package archive builds, writes and reads tzpack archives.
//
// Packing happens in two steps:
//
//  1. IndexBuilder fetches every zone, in the order given, and concatenates the
//     bytes into one data blob while recording each zone's offset and length.
//  2. Writer validates the names and version, then lays out the header, the
//     index sorted by zone name, and the data blob, and fills in the header
//     offsets once the section positions are known.
//
// Example:
//
//	idx, err := archive.BuildIndex(setup.Zones.Names(), fetcher)
//	if err != nil {
//	    return err
//	}
//
//	w, err := archive.NewWriter("tzdata2025a")
//	if err != nil {
//	    return err
//	}
//
//	if err := w.WriteFile(filepath.Join(outDir, "tzdata"), idx); err != nil {
//	    return err
//	}
//
// Reading:
//
//	a, err := archive.OpenFile("tzdata")
//	data, err := a.Lookup("Africa/Dakar")
//
// The data section keeps insertion order while the index is sorted; the two
// orders are independent and both are part of the format. See the section
// package for the byte layout.
//
// Builders and writers are single-use and NOT thread-safe. An opened Archive
// is read-only and safe for concurrent use.
package archive
