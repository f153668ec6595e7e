package section

import (
	"testing"

	"github.com/arloliu/tzpack/errs"
	"github.com/stretchr/testify/require"
)

func TestNewHeader(t *testing.T) {
	t.Run("Valid version", func(t *testing.T) {
		header, err := NewHeader("tzdata2025a")

		require.NoError(t, err)
		require.Equal(t, "tzdata2025a", header.VersionString())
		require.Equal(t, byte(0), header.Version[11])
		require.Zero(t, header.IndexOffset)
		require.Zero(t, header.DataOffset)
		require.Zero(t, header.FinalOffset)
	})

	t.Run("Version of exactly 12 bytes", func(t *testing.T) {
		header, err := NewHeader("tzdata2025ab")

		require.NoError(t, err)
		require.Equal(t, "tzdata2025ab", header.VersionString())
	})

	t.Run("Version too long", func(t *testing.T) {
		header, err := NewHeader("tzdata2025abc")

		require.ErrorIs(t, err, errs.ErrVersionTooLong)
		require.Nil(t, header)
	})

	t.Run("Non-ASCII version", func(t *testing.T) {
		header, err := NewHeader("tzdata\x7f")

		require.ErrorIs(t, err, errs.ErrNonASCIIInput)
		require.Nil(t, header)
	})
}

func TestHeader_Bytes(t *testing.T) {
	header, err := NewHeader("2025a")
	require.NoError(t, err)
	header.IndexOffset = 24
	header.DataOffset = 24 + 2*IndexEntrySize
	header.FinalOffset = 1000

	b := header.Bytes()

	require.Len(t, b, HeaderSize)
	require.Equal(t, []byte("2025a\x00\x00\x00\x00\x00\x00\x00"), b[:VersionSize])
	require.Equal(t, []byte{0, 0, 0, 24}, b[12:16])
	require.Equal(t, []byte{0, 0, 0, 120}, b[16:20])
	require.Equal(t, []byte{0, 0, 0x03, 0xE8}, b[20:24])
}

func TestHeader_Parse(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		original, err := NewHeader("tzdata2024b")
		require.NoError(t, err)
		original.IndexOffset = 24
		original.DataOffset = 72
		original.FinalOffset = 100

		parsed := &Header{}
		require.NoError(t, parsed.Parse(original.Bytes()))
		require.Equal(t, *original, *parsed)
		require.Equal(t, 1, parsed.IndexCount())
		require.Equal(t, uint32(28), parsed.DataSize())
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &Header{}
		err := header.Parse([]byte{1, 2, 3})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

func TestHeader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		size    int
		wantErr error
	}{
		{"empty archive", Header{IndexOffset: 24, DataOffset: 24, FinalOffset: 24}, 24, nil},
		{"trailing section", Header{IndexOffset: 24, DataOffset: 72, FinalOffset: 80}, 120, nil},
		{"index inside header", Header{IndexOffset: 20, DataOffset: 24, FinalOffset: 24}, 24, errs.ErrInvalidSectionOffsets},
		{"data before index", Header{IndexOffset: 72, DataOffset: 24, FinalOffset: 80}, 80, errs.ErrInvalidSectionOffsets},
		{"final before data", Header{IndexOffset: 24, DataOffset: 72, FinalOffset: 70}, 80, errs.ErrInvalidSectionOffsets},
		{"final past end", Header{IndexOffset: 24, DataOffset: 72, FinalOffset: 81}, 80, errs.ErrInvalidSectionOffsets},
		{"partial entry", Header{IndexOffset: 24, DataOffset: 50, FinalOffset: 60}, 60, errs.ErrInvalidIndexSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Validate(tt.size)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHeader_PatchOffsets(t *testing.T) {
	header, err := NewHeader("v1")
	require.NoError(t, err)

	b := header.Bytes()
	require.Equal(t, make([]byte, 12), b[12:24])

	header.IndexOffset = 24
	header.DataOffset = 168
	header.FinalOffset = 253
	header.PatchOffsets(b)

	parsed := &Header{}
	require.NoError(t, parsed.Parse(b))
	require.Equal(t, uint32(24), parsed.IndexOffset)
	require.Equal(t, uint32(168), parsed.DataOffset)
	require.Equal(t, uint32(253), parsed.FinalOffset)
	require.Equal(t, "v1", parsed.VersionString())
}
