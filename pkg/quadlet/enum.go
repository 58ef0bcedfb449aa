package quadlet

// Encoder is implemented by enumerated field types.
type Encoder interface {
	Encode() uint32
}

// BuildEnum writes the encoded value of e into the first quadlet of raw.
func BuildEnum(raw []byte, e Encoder) {
	BuildU32(raw, e.Encode())
}

// ParseEnum decodes the first quadlet of raw with decode. decode is expected
// to map unknown values to the field's default variant.
func ParseEnum[T any](raw []byte, decode func(uint32) T) T {
	return decode(ParseU32(raw))
}

// BuildEnumBits writes e into the bits selected by mask.
func BuildEnumBits(raw []byte, mask uint32, e Encoder) {
	BuildBits(raw, mask, e.Encode())
}

// ParseEnumBits decodes the bits selected by mask with decode.
func ParseEnumBits[T any](raw []byte, mask uint32, decode func(uint32) T) T {
	return decode(ParseBits(raw, mask))
}
