// Package endian provides the byte order engine used by the tzpack archive format.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so that the
// same value can be used both to patch fixed positions in a buffer and to
// append to a growing one:
//
//	engine := endian.ArchiveEngine()
//	buf = engine.AppendUint32(buf, entry.Offset)
//	engine.PutUint32(header[12:16], indexOffset)
//
// Every integer in a tzpack archive is big-endian, matching the layout that
// existing tzdata archive readers expect. The little-endian engine is only
// exposed for tools that need to compare layouts.
//
// # Thread Safety
//
// The returned engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.BigEndian and binary.LittleEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// ArchiveEngine returns the engine used for every integer field of an archive.
func ArchiveEngine() EndianEngine {
	return binary.BigEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	// 0x0100: the first byte in memory is 0x01 only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order.
func IsNative(engine EndianEngine) bool {
	return engine == NativeEngine()
}
