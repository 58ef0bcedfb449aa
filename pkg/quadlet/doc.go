// Package quadlet provides the big-endian quadlet codec used by register
// based FireWire audio devices.
//
// A quadlet is a 4-byte big-endian word, the addressing and transfer unit of
// the IEEE 1394 register space. Every field in a device segment is placed on
// a quadlet boundary. Scalars occupy a whole quadlet; packed fields share one
// quadlet and are accessed through a mask.
//
// # Booleans
//
// A boolean occupies a full quadlet. Zero decodes as false, any other value
// as true. Encoding always writes 1 for true.
//
// # Bitfields
//
// BuildBits and ParseBits operate on the containing quadlet through a mask.
// The shift is taken from the lowest set bit of the mask, and bits outside
// the mask are left as they were, so a field can be updated in a buffer that
// was previously read from hardware:
//
//	quadlet.BuildBits(raw, 0x0000000f, 2) // touches bits 0-3 only
//	quadlet.BuildFlag(raw, 0x00000010, true)
//
// # Enumerations
//
// Enumerated fields decode through a caller supplied function that maps
// every documented value and falls back to a default for anything else.
// Decoding an enumeration never fails:
//
//	mode := quadlet.ParseEnum(raw, decodeMode)
//
// # Sizes
//
// Composite encoders are handed buffers whose length is fixed by the device
// layout. CheckSize reports a mismatch as a *SizeError; MustSize panics with
// the same error, for call sites where a wrong length is a programming error.
package quadlet
