package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceEncodingString(t *testing.T) {
	require.Equal(t, "None", EncodingNone.String())
	require.Equal(t, "Zstd", EncodingZstd.String())
	require.Equal(t, "S2", EncodingS2.String())
	require.Equal(t, "LZ4", EncodingLZ4.String())
	require.Equal(t, "Unknown", SourceEncoding(0).String())
}

func TestEncodingFromPath(t *testing.T) {
	tests := []struct {
		path string
		want SourceEncoding
	}{
		{"Africa/Dakar", EncodingNone},
		{"Africa/Dakar.zst", EncodingZstd},
		{"Africa/Dakar.s2", EncodingS2},
		{"Africa/Dakar.lz4", EncodingLZ4},
		{"Etc/GMT+2", EncodingNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := EncodingFromPath(tt.path)
			require.Equal(t, tt.want, got)
			if got != EncodingNone {
				require.Equal(t, tt.path, "Africa/Dakar"+got.Extension())
			}
		})
	}
}
