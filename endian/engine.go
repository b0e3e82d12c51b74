// Package endian provides byte order utilities for raw fixed-width integer fields outside of
// band encoding. The packer uses it to read each input class file's big-endian major-version
// halfword (bytes 6-7). Every multi-byte band value is BHSD/varint encoded and therefore has no
// "endianness" of its own; the segment magic and version numbers (§4.8) are written by package
// segment as raw single bytes, not through this package.
//
// The format is fixed big-endian on the wire (network byte order, per the published Pack200
// specification); the EndianEngine abstraction is kept anyway, matching the teacher's own
// ByteOrder/AppendByteOrder split, so tests can exercise both orders without duplicating the
// read/write call sites.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary into one interface,
// satisfied directly by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness inspects the host's native byte order. Used only by diagnostics/tests; the
// wire format itself always uses GetBigEndianEngine regardless of host order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host's native byte order is little-endian.
func IsNativeLittleEndian() bool { return CheckEndianness() == binary.LittleEndian }

// IsNativeBigEndian reports whether the host's native byte order is big-endian.
func IsNativeBigEndian() bool { return CheckEndianness() == binary.BigEndian }

// CompareNativeEndian reports whether engine uses the host's native byte order.
func CompareNativeEndian(engine EndianEngine) bool { return engine == CheckEndianness() }

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used to read a class file's raw
// major-version field.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
