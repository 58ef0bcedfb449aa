package ctl

import (
	"fmt"
	"slices"
)

// ElemIface is the interface class an element belongs to.
type ElemIface uint8

// Element interfaces.
const (
	IfaceCard  ElemIface = 0x00
	IfaceMixer ElemIface = 0x02
)

// String returns the interface name.
func (i ElemIface) String() string {
	switch i {
	case IfaceCard:
		return "card"
	case IfaceMixer:
		return "mixer"
	default:
		return fmt.Sprintf("iface(%d)", uint8(i))
	}
}

// ElemID identifies an element on a card.
type ElemID struct {
	Iface ElemIface
	Name  string
	Index uint32
}

// MixerID returns the id of the first mixer element called name.
func MixerID(name string) ElemID {
	return ElemID{Iface: IfaceMixer, Name: name}
}

// CardID returns the id of the first card element called name.
func CardID(name string) ElemID {
	return ElemID{Iface: IfaceCard, Name: name}
}

// String returns the id in "iface:name[index]" form.
func (id ElemID) String() string {
	if id.Index == 0 {
		return fmt.Sprintf("%s:%s", id.Iface, id.Name)
	}
	return fmt.Sprintf("%s:%s[%d]", id.Iface, id.Name, id.Index)
}

// ElemKind is the value type of an element.
type ElemKind uint8

// Element kinds.
const (
	KindBool ElemKind = iota
	KindInt
	KindEnum
)

// String returns the kind name.
func (k ElemKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// DBRange maps the integer range of an element to decibels, in 1/100 dB.
// When Mute is set the element's minimum value means silence.
type DBRange struct {
	Min  int32
	Max  int32
	Mute bool
}

// ElemInfo describes an element.
type ElemInfo struct {
	ID       ElemID
	Kind     ElemKind
	Count    int
	Writable bool

	// Integer elements only.
	Min  int32
	Max  int32
	Step int32
	DB   *DBRange

	// Sentinels are integer values accepted outside [Min, Max], such as a
	// mute value below the numeric range.
	Sentinels []int32

	// Enumerated elements only.
	Labels []string
}

// ElemValue holds the values of one element. Only the slice matching the
// element kind is used.
type ElemValue struct {
	Bools []bool
	Ints  []int32
	Enums []uint32
}

// BoolValue returns a boolean element value.
func BoolValue(vals ...bool) ElemValue {
	return ElemValue{Bools: vals}
}

// IntValue returns an integer element value.
func IntValue(vals ...int32) ElemValue {
	return ElemValue{Ints: vals}
}

// EnumValue returns an enumerated element value.
func EnumValue(vals ...uint32) ElemValue {
	return ElemValue{Enums: vals}
}

// Clone returns a deep copy of v.
func (v ElemValue) Clone() ElemValue {
	return ElemValue{
		Bools: slices.Clone(v.Bools),
		Ints:  slices.Clone(v.Ints),
		Enums: slices.Clone(v.Enums),
	}
}

// Equal reports whether v and o hold the same values.
func (v ElemValue) Equal(o ElemValue) bool {
	return slices.Equal(v.Bools, o.Bools) && slices.Equal(v.Ints, o.Ints) && slices.Equal(v.Enums, o.Enums)
}

// Int64s flattens the value of an element of kind k, as used in trace
// records.
func (v ElemValue) Int64s(k ElemKind) []int64 {
	var out []int64
	switch k {
	case KindBool:
		for _, b := range v.Bools {
			if b {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	case KindInt:
		for _, n := range v.Ints {
			out = append(out, int64(n))
		}
	case KindEnum:
		for _, n := range v.Enums {
			out = append(out, int64(n))
		}
	}
	return out
}
