package unit

import (
	"fmt"
	"slices"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

// field binds one element to host side state. write is nil for read-only
// elements.
type field struct {
	info  ctl.ElemInfo
	read  func(v *ctl.ElemValue)
	write func(v ctl.ElemValue)
}

func (f field) register(card ctl.Card) error {
	i := f.info
	switch i.Kind {
	case ctl.KindBool:
		return card.AddBoolElems(i.ID, i.Count, i.Writable)
	case ctl.KindInt:
		return card.AddIntElems(i.ID, i.Count, i.Min, i.Max, i.Step, i.DB, i.Writable, i.Sentinels...)
	default:
		return card.AddEnumElems(i.ID, i.Count, i.Labels, i.Writable)
	}
}

func boolsField(id ctl.ElemID, count int, get func(i int) bool, set func(i int, b bool)) field {
	f := field{
		info: ctl.ElemInfo{ID: id, Kind: ctl.KindBool, Count: count, Writable: set != nil},
		read: func(v *ctl.ElemValue) {
			v.Bools = make([]bool, count)
			for i := range v.Bools {
				v.Bools[i] = get(i)
			}
		},
	}
	if set != nil {
		f.write = func(v ctl.ElemValue) {
			for i, b := range v.Bools {
				set(i, b)
			}
		}
	}
	return f
}

func boolField(id ctl.ElemID, p *bool, writable bool) field {
	var set func(int, bool)
	if writable {
		set = func(_ int, b bool) { *p = b }
	}
	return boolsField(id, 1, func(int) bool { return *p }, set)
}

// intRange is the integer range of an element.
type intRange struct {
	min, max, step int32
	db             *ctl.DBRange
}

func intsField(id ctl.ElemID, count int, r intRange, get func(i int) int32, set func(i int, n int32)) field {
	f := field{
		info: ctl.ElemInfo{
			ID: id, Kind: ctl.KindInt, Count: count, Writable: set != nil,
			Min: r.min, Max: r.max, Step: r.step, DB: r.db,
		},
		read: func(v *ctl.ElemValue) {
			v.Ints = make([]int32, count)
			for i := range v.Ints {
				v.Ints[i] = get(i)
			}
		},
	}
	if set != nil {
		f.write = func(v ctl.ElemValue) {
			for i, n := range v.Ints {
				set(i, n)
			}
		}
	}
	return f
}

func intField(id ctl.ElemID, p *int32, r intRange, writable bool) field {
	var set func(int, int32)
	if writable {
		set = func(_ int, n int32) { *p = n }
	}
	return intsField(id, 1, r, func(int) int32 { return *p }, set)
}

func uintField(id ctl.ElemID, p *uint32, r intRange, writable bool) field {
	var set func(int, int32)
	if writable {
		set = func(_ int, n int32) { *p = uint32(n) }
	}
	return intsField(id, 1, r, func(int) int32 { return int32(*p) }, set)
}

func enumsField[T comparable](id ctl.ElemID, count int, items []T, labels []string, get func(i int) T, set func(i int, t T)) field {
	f := field{
		info: ctl.ElemInfo{
			ID: id, Kind: ctl.KindEnum, Count: count, Writable: set != nil,
			Labels: labels,
		},
		read: func(v *ctl.ElemValue) {
			v.Enums = make([]uint32, count)
			for i := range v.Enums {
				if pos := slices.Index(items, get(i)); pos >= 0 {
					v.Enums[i] = uint32(pos)
				}
			}
		},
	}
	if set != nil {
		f.write = func(v ctl.ElemValue) {
			for i, n := range v.Enums {
				set(i, items[n])
			}
		}
	}
	return f
}

type labeled interface {
	comparable
	fmt.Stringer
}

func labelsOf[T fmt.Stringer](items []T) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.String()
	}
	return labels
}

func enumField[T labeled](id ctl.ElemID, items []T, p *T, writable bool) field {
	var set func(int, T)
	if writable {
		set = func(_ int, t T) { *p = t }
	}
	return enumsField(id, 1, items, labelsOf(items), func(int) T { return *p }, set)
}

// indexField exposes a uint32 holding an index into labels.
func indexField(id ctl.ElemID, labels []string, p *uint32, writable bool) field {
	var set func(int, uint32)
	if writable {
		set = func(_ int, n uint32) { *p = n }
	}
	return enumsField(id, 1, indices(len(labels)), labels, func(int) uint32 { return *p }, set)
}

func indices(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
