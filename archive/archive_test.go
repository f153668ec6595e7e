package archive

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tzpack/section"
	"github.com/arloliu/tzpack/source"
)

const testVersion = "tzdata2025a"

// zone returns n bytes filled with b.
func zone(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// sampleFetcher holds three zones of 30, 45 and 10 bytes.
func sampleFetcher() source.Map {
	return source.Map{
		"Europe/Paris": zone('p', 30),
		"Africa/Dakar": zone('d', 45),
		"GMT":          zone('g', 10),
	}
}

var sampleIDs = []string{"Europe/Paris", "Africa/Dakar", "GMT"}

func buildSample(t *testing.T) *Index {
	t.Helper()

	idx, err := BuildIndex(sampleIDs, sampleFetcher())
	require.NoError(t, err)

	return idx
}

func encodeSample(t *testing.T) []byte {
	t.Helper()

	w, err := NewWriter(testVersion)
	require.NoError(t, err)

	data, err := w.Encode(buildSample(t))
	require.NoError(t, err)

	return data
}

func u32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off:])
}

// rawEntry serializes an index entry by hand, bypassing name validation.
func rawEntry(name string, offset, length uint32) []byte {
	b := make([]byte, section.IndexEntrySize)
	copy(b, name)
	binary.BigEndian.PutUint32(b[section.ZoneNameSize:], offset)
	binary.BigEndian.PutUint32(b[section.ZoneNameSize+4:], length)

	return b
}

// rawArchive assembles an archive from hand-made sections with correct offsets.
func rawArchive(version string, entries [][]byte, data []byte) []byte {
	var buf bytes.Buffer
	v := make([]byte, section.VersionSize)
	copy(v, version)
	buf.Write(v)

	indexOffset := uint32(section.HeaderSize)
	dataOffset := indexOffset + uint32(len(entries)*section.IndexEntrySize) //nolint: gosec
	finalOffset := dataOffset + uint32(len(data))                          //nolint: gosec

	buf.Write(binary.BigEndian.AppendUint32(nil, indexOffset))
	buf.Write(binary.BigEndian.AppendUint32(nil, dataOffset))
	buf.Write(binary.BigEndian.AppendUint32(nil, finalOffset))

	for _, e := range entries {
		buf.Write(e)
	}
	buf.Write(data)

	return buf.Bytes()
}

func TestPackAndOpen_RoundTrip(t *testing.T) {
	fetcher := sampleFetcher()
	a, err := Open(encodeSample(t))
	require.NoError(t, err)

	require.Equal(t, testVersion, a.Version())
	require.Equal(t, len(sampleIDs), a.Len())

	for _, id := range sampleIDs {
		got, err := a.Lookup(id)
		require.NoError(t, err)
		require.Equal(t, fetcher[id], got, id)
	}
}

func TestPackAndOpen_Scenario(t *testing.T) {
	data := encodeSample(t)

	require.Equal(t, []byte("tzdata2025a\x00"), data[:section.VersionSize])

	indexOffset := u32(data, section.IndexOffsetField)
	dataOffset := u32(data, section.DataOffsetField)
	finalOffset := u32(data, section.FinalOffsetField)
	require.Equal(t, uint32(24), indexOffset)
	require.Equal(t, uint32(24+3*48), dataOffset)
	require.Equal(t, dataOffset+85, finalOffset)
	require.Equal(t, int(finalOffset), len(data))

	// index sorted by name, offsets in insertion order
	wantIndex := [][]byte{
		rawEntry("Africa/Dakar", 30, 45),
		rawEntry("Europe/Paris", 0, 30),
		rawEntry("GMT", 75, 10),
	}
	require.Equal(t, bytes.Join(wantIndex, nil), data[indexOffset:dataOffset])

	wantData := bytes.Join([][]byte{zone('p', 30), zone('d', 45), zone('g', 10)}, nil)
	require.Equal(t, wantData, data[dataOffset:finalOffset])
}

func TestPackAndOpen_IndexIsSorted(t *testing.T) {
	ids := []string{"Pacific/Auckland", "America/New_York", "UTC", "America/Argentina/Jujuy", "Etc/GMT+1", "Etc/GMT-1"}
	fetcher := source.Map{}
	for i, id := range ids {
		fetcher[id] = zone(byte('a'+i), i+1)
	}

	idx, err := BuildIndex(ids, fetcher)
	require.NoError(t, err)

	w, err := NewWriter(testVersion)
	require.NoError(t, err)
	data, err := w.Encode(idx)
	require.NoError(t, err)

	a, err := Open(data)
	require.NoError(t, err)

	names := a.Names()
	require.True(t, sortedStrictly(names), names)
	require.ElementsMatch(t, ids, names)

	// data section keeps insertion order
	var wantData []byte
	for _, id := range ids {
		wantData = append(wantData, fetcher[id]...)
	}
	require.Equal(t, wantData, a.Data())

	for _, e := range a.Entries() {
		require.LessOrEqual(t, e.End(), uint64(len(a.Data())))
	}
}

func sortedStrictly(names []string) bool {
	for i := 1; i < len(names); i++ {
		if strings.Compare(names[i-1], names[i]) >= 0 {
			return false
		}
	}

	return true
}

func TestPackAndOpen_Empty(t *testing.T) {
	idx, err := BuildIndex(nil, source.Map{})
	require.NoError(t, err)

	w, err := NewWriter(testVersion)
	require.NoError(t, err)
	data, err := w.Encode(idx)
	require.NoError(t, err)

	require.Len(t, data, section.HeaderSize)
	require.Equal(t, uint32(24), u32(data, section.IndexOffsetField))
	require.Equal(t, uint32(24), u32(data, section.DataOffsetField))
	require.Equal(t, uint32(24), u32(data, section.FinalOffsetField))

	a, err := Open(data)
	require.NoError(t, err)
	require.Zero(t, a.Len())
	require.Empty(t, a.Data())
	require.Empty(t, a.Trailer())
}

func TestPackAndOpen_ZeroLengthZone(t *testing.T) {
	idx, err := BuildIndex([]string{"A", "B", "C"}, source.Map{"A": zone('a', 3), "B": nil, "C": zone('c', 2)})
	require.NoError(t, err)

	w, err := NewWriter(testVersion)
	require.NoError(t, err)
	data, err := w.Encode(idx)
	require.NoError(t, err)

	a, err := Open(data)
	require.NoError(t, err)

	e, ok := a.Entry("B")
	require.True(t, ok)
	require.Equal(t, Entry{Name: "B", Offset: 3, Length: 0}, e)

	got, err := a.Lookup("B")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestArchive_IndexRoundTrip(t *testing.T) {
	data := encodeSample(t)
	a, err := Open(data)
	require.NoError(t, err)

	idx, err := a.Index()
	require.NoError(t, err)
	require.Equal(t, []string{"Europe/Paris", "Africa/Dakar", "GMT"}, entryNames(idx.Entries()))

	w, err := NewWriter(a.Version())
	require.NoError(t, err)
	again, err := w.Encode(idx)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	return names
}
