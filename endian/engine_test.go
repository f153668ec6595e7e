package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestArchiveEngineIsBigEndian(t *testing.T) {
	engine := ArchiveEngine()
	require.Equal(t, binary.BigEndian, engine)

	b := make([]byte, 4)
	engine.PutUint32(b, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b)

	appended := engine.AppendUint32(nil, 24)
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x18}, appended)
}

func TestNativeEngine(t *testing.T) {
	var v uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&v))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, NativeEngine())
		require.True(t, IsNative(GetBigEndianEngine()))
		require.False(t, IsNative(GetLittleEndianEngine()))
	case 0x02:
		require.Equal(t, binary.LittleEndian, NativeEngine())
		require.True(t, IsNative(GetLittleEndianEngine()))
		require.False(t, IsNative(GetBigEndianEngine()))
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
}

func TestEnginesRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()} {
		buf := engine.AppendUint32(nil, 0xDEADBEEF)
		require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf))
	}
}
