package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tzpack/archive"
	"github.com/arloliu/tzpack/errs"
	"github.com/arloliu/tzpack/internal/hash"
	"github.com/arloliu/tzpack/source"
)

var testZones = source.Map{
	"Europe/Paris": []byte("paris-rules"),
	"Africa/Dakar": []byte("dakar-rules"),
	"GMT":          []byte("gmt"),
	"Etc/GMT":      []byte("gmt"),
}

var testIDs = []string{"Europe/Paris", "Africa/Dakar", "GMT", "Etc/GMT"}

func testIndex(t *testing.T) *archive.Index {
	t.Helper()

	idx, err := archive.BuildIndex(testIDs, testZones)
	require.NoError(t, err)

	return idx
}

func testArchive(t *testing.T) (*archive.Archive, []byte) {
	t.Helper()

	w, err := archive.NewWriter("tzdata2025a")
	require.NoError(t, err)
	data, err := w.Encode(testIndex(t))
	require.NoError(t, err)
	a, err := archive.Open(data)
	require.NoError(t, err)

	return a, data
}

func TestWriteArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tzdata")
	w, err := archive.NewWriter("tzdata2025a")
	require.NoError(t, err)

	size, dgst, err := writeArchive(path, w, testIndex(t))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), size)
	require.Equal(t, digest.FromBytes(data), dgst)
	require.NoError(t, dgst.Validate())

	_, _, err = writeArchive(filepath.Join(t.TempDir(), "missing", "tzdata"), w, testIndex(t))
	require.ErrorIs(t, err, errs.ErrIOFailure)
}

func TestManifest_RoundTrip(t *testing.T) {
	idx := testIndex(t)
	dgst := digest.FromString("archive")
	m := newManifest("out/tzdata", "tzdata2025a", 1234, dgst, idx)

	require.Len(t, m.Zones, 4)
	require.Equal(t, "Europe/Paris", m.Zones[0].Name)
	require.Equal(t, uint32(0), m.Zones[0].Offset)
	require.Equal(t, hash.Format(hash.Sum([]byte("paris-rules"))), m.Zones[0].XXHash)
	require.Equal(t, "GMT", m.Zones[3].SameAs)
	require.Empty(t, m.Zones[2].SameAs)

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, m.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "version: tzdata2025a")
	require.Contains(t, string(raw), "same_as: GMT")

	got, err := ReadManifest(path)
	require.NoError(t, err)
	require.Equal(t, m, got)

	_, err = ReadManifest(filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, errs.ErrIOFailure)
}

func TestListing(t *testing.T) {
	a, _ := testArchive(t)
	l := newListing(a)

	require.Equal(t, "tzdata2025a", l.Version)
	require.Equal(t, uint32(24), l.IndexOffset)
	require.Equal(t, uint32(24+4*48), l.DataOffset)
	require.Equal(t, []string{"Africa/Dakar", "Etc/GMT", "Europe/Paris", "GMT"}, listedNames(l))

	var text bytes.Buffer
	require.NoError(t, writeListing(&text, l, false))
	out := text.String()
	require.Contains(t, out, "version: tzdata2025a\n")
	require.Contains(t, out, "zones: 4\n")
	require.NotContains(t, out, "trailer")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.True(t, strings.HasPrefix(lines[3], "Africa/Dakar "))

	var y bytes.Buffer
	require.NoError(t, writeListing(&y, l, true))
	require.Contains(t, y.String(), "index_offset: 24")
	require.Contains(t, y.String(), "- name: Africa/Dakar")
}

func listedNames(l *Listing) []string {
	names := make([]string, len(l.Zones))
	for i, z := range l.Zones {
		names[i] = z.Name
	}

	return names
}

func TestVerifyZones(t *testing.T) {
	a, _ := testArchive(t)

	t.Run("all match", func(t *testing.T) {
		checks, err := verifyZones(context.Background(), a, testIDs, testZones, 2)
		require.NoError(t, err)
		require.Len(t, checks, 4)
		for i, c := range checks {
			require.Equal(t, testIDs[i], c.Name)
			require.True(t, c.OK(), c.String())
		}

		var out bytes.Buffer
		require.Zero(t, printChecks(&out, checks, false, false))
		require.Equal(t, 4, strings.Count(out.String(), "OK"))

		out.Reset()
		require.Zero(t, printChecks(&out, checks, true, false))
		require.Empty(t, out.String())
	})

	t.Run("changed source", func(t *testing.T) {
		changed := source.Map{}
		for k, v := range testZones {
			changed[k] = v
		}
		changed["GMT"] = []byte("gmt-2")
		delete(changed, "Africa/Dakar")

		checks, err := verifyZones(context.Background(), a, testIDs[:3], changed, 0)
		require.NoError(t, err)
		require.Len(t, checks, 4)

		require.True(t, checks[0].OK())
		require.ErrorIs(t, checks[1].Err, errs.ErrSourceNotFound)
		require.False(t, checks[2].OK())
		require.NoError(t, checks[2].Err)
		require.Equal(t, "Etc/GMT", checks[3].Name)
		require.ErrorIs(t, checks[3].Err, errNotInSetup)

		var out bytes.Buffer
		require.Equal(t, 3, printChecks(&out, checks, true, false))
		require.Equal(t, 3, strings.Count(out.String(), "FAIL"))
		require.NotContains(t, out.String(), "\x1b[")
	})

	t.Run("zone missing from archive", func(t *testing.T) {
		checks, err := verifyZones(context.Background(), a, []string{"UTC"}, testZones, 1)
		require.NoError(t, err)
		require.ErrorIs(t, checks[0].Err, errs.ErrZoneNotFound)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := verifyZones(ctx, a, testIDs, testZones, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDiff(t *testing.T) {
	a, _ := testArchive(t)

	var out bytes.Buffer
	require.False(t, writeDiff(&out, zoneLines(a), zoneLines(a)))
	require.Empty(t, out.String())

	w, err := archive.NewWriter("tzdata2025b")
	require.NoError(t, err)
	idx, err := archive.BuildIndex([]string{"Europe/Paris", "Africa/Dakar", "UTC"}, source.Map{
		"Europe/Paris": []byte("paris-rules-v2"),
		"Africa/Dakar": []byte("dakar-rules"),
		"UTC":          []byte("utc"),
	})
	require.NoError(t, err)
	data, err := w.Encode(idx)
	require.NoError(t, err)
	b, err := archive.Open(data)
	require.NoError(t, err)

	require.True(t, writeDiff(&out, zoneLines(a), zoneLines(b)))
	got := out.String()
	require.Contains(t, got, "- version tzdata2025a\n")
	require.Contains(t, got, "+ version tzdata2025b\n")
	require.Contains(t, got, "- Etc/GMT 3 ")
	require.Contains(t, got, "+ UTC 3 ")
	require.Contains(t, got, "+ Europe/Paris 14 ")
	require.NotContains(t, got, "Africa/Dakar")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false)
	log.Debug("hidden")
	log.Info("packed", "zones", 3)
	log.Warn("careful")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.NotContains(t, out, "time=")
	require.Contains(t, out, "msg=packed zones=3\n")
	require.Contains(t, out, "level=WARN msg=careful\n")

	buf.Reset()
	newLogger(&buf, true).Debug("zone", "name", "GMT")
	require.Contains(t, buf.String(), "level=DEBUG msg=zone name=GMT")
}
