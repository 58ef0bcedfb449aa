package quadlet

import (
	"encoding/binary"
	"math/bits"
)

// Size is the length of a quadlet in bytes.
const Size = 4

// BuildU32 writes v into the first quadlet of raw.
func BuildU32(raw []byte, v uint32) {
	binary.BigEndian.PutUint32(raw[:Size], v)
}

// ParseU32 reads the first quadlet of raw.
func ParseU32(raw []byte) uint32 {
	return binary.BigEndian.Uint32(raw[:Size])
}

// BuildI32 writes v into the first quadlet of raw.
func BuildI32(raw []byte, v int32) {
	BuildU32(raw, uint32(v))
}

// ParseI32 reads the first quadlet of raw as a signed value.
func ParseI32(raw []byte) int32 {
	return int32(ParseU32(raw))
}

// BuildBool writes 1 for true and 0 for false.
func BuildBool(raw []byte, v bool) {
	var q uint32
	if v {
		q = 1
	}
	BuildU32(raw, q)
}

// ParseBool reports whether the first quadlet of raw is nonzero.
func ParseBool(raw []byte) bool {
	return ParseU32(raw) != 0
}

// BuildBits replaces the bits selected by mask with val, shifted to the
// position of the lowest bit of mask. Other bits of the quadlet are kept.
func BuildBits(raw []byte, mask, val uint32) {
	if mask == 0 {
		return
	}
	shift := bits.TrailingZeros32(mask)
	q := ParseU32(raw)
	q = (q &^ mask) | ((val << shift) & mask)
	BuildU32(raw, q)
}

// ParseBits returns the bits selected by mask, shifted down to bit 0.
func ParseBits(raw []byte, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	return (ParseU32(raw) & mask) >> bits.TrailingZeros32(mask)
}

// BuildFlag sets or clears flag in the quadlet, keeping other bits.
func BuildFlag(raw []byte, flag uint32, on bool) {
	q := ParseU32(raw)
	if on {
		q |= flag
	} else {
		q &^= flag
	}
	BuildU32(raw, q)
}

// ParseFlag reports whether any bit of flag is set.
func ParseFlag(raw []byte, flag uint32) bool {
	return ParseU32(raw)&flag != 0
}

// BuildU32Block writes vals as consecutive quadlets.
func BuildU32Block(raw []byte, vals []uint32) {
	MustSize(raw, len(vals)*Size, "u32 block")
	for i, v := range vals {
		BuildU32(raw[i*Size:], v)
	}
}

// ParseU32Block fills vals from consecutive quadlets.
func ParseU32Block(raw []byte, vals []uint32) {
	MustSize(raw, len(vals)*Size, "u32 block")
	for i := range vals {
		vals[i] = ParseU32(raw[i*Size:])
	}
}

// BuildI32Block writes vals as consecutive quadlets.
func BuildI32Block(raw []byte, vals []int32) {
	MustSize(raw, len(vals)*Size, "i32 block")
	for i, v := range vals {
		BuildI32(raw[i*Size:], v)
	}
}

// ParseI32Block fills vals from consecutive quadlets.
func ParseI32Block(raw []byte, vals []int32) {
	MustSize(raw, len(vals)*Size, "i32 block")
	for i := range vals {
		vals[i] = ParseI32(raw[i*Size:])
	}
}

// BuildBoolBlock writes vals as consecutive boolean quadlets.
func BuildBoolBlock(raw []byte, vals []bool) {
	MustSize(raw, len(vals)*Size, "bool block")
	for i, v := range vals {
		BuildBool(raw[i*Size:], v)
	}
}

// ParseBoolBlock fills vals from consecutive boolean quadlets.
func ParseBoolBlock(raw []byte, vals []bool) {
	MustSize(raw, len(vals)*Size, "bool block")
	for i := range vals {
		vals[i] = ParseBool(raw[i*Size:])
	}
}

// ToU32s converts a quadlet-aligned byte slice into words.
func ToU32s(raw []byte) []uint32 {
	vals := make([]uint32, len(raw)/Size)
	for i := range vals {
		vals[i] = ParseU32(raw[i*Size:])
	}
	return vals
}
