// Package inspect resolves, parses and formats control elements for
// interactive use.
//
// Element references take the forms:
//   - "name" - first element called name on any interface
//   - "name[2]" - element index 2
//   - "mixer:name" or "card:name[1]" - explicit interface
package inspect

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

// Reference errors.
var (
	ErrEmptyRef      = errors.New("empty element reference")
	ErrInvalidRef    = errors.New("invalid element reference")
	ErrInvalidNumber = errors.New("invalid number")
)

// Ref is a parsed element reference.
type Ref struct {
	Iface    ctl.ElemIface
	HasIface bool
	Name     string
	Index    uint32
	Raw      string
}

// ParseRef parses an element reference.
func ParseRef(input string) (*Ref, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyRef
	}
	r := &Ref{Raw: input}

	rest := input
	if prefix, name, ok := strings.Cut(input, ":"); ok {
		switch strings.ToLower(prefix) {
		case "mixer":
			r.Iface = ctl.IfaceMixer
		case "card":
			r.Iface = ctl.IfaceCard
		default:
			return nil, fmt.Errorf("%w: interface %q", ErrInvalidRef, prefix)
		}
		r.HasIface = true
		rest = name
	}

	if open := strings.IndexByte(rest, '['); open >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRef, input)
		}
		idx, err := ParseNumber(rest[open+1 : len(rest)-1])
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx > int64(^uint32(0)) {
			return nil, fmt.Errorf("%w: index %d", ErrInvalidRef, idx)
		}
		r.Index = uint32(idx)
		rest = rest[:open]
	}

	if rest == "" || strings.ContainsAny(rest, " []:") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRef, input)
	}
	r.Name = rest
	return r, nil
}

// Elements is a set of elements. *ctl.MemoryCard and *service.Service
// implement it.
type Elements interface {
	Elements() []ctl.ElemInfo
	Info(id ctl.ElemID) (ctl.ElemInfo, error)
}

// Resolve maps the reference to an element of elems. Without an explicit
// interface the first element with the name wins.
func (r *Ref) Resolve(elems Elements) (ctl.ElemInfo, error) {
	id := ctl.ElemID{Iface: r.Iface, Name: r.Name, Index: r.Index}
	if !r.HasIface {
		all := elems.Elements()
		i := slices.IndexFunc(all, func(info ctl.ElemInfo) bool {
			return info.ID.Name == r.Name
		})
		if i < 0 {
			return ctl.ElemInfo{}, fmt.Errorf("%w: %s", ctl.ErrElemNotFound, r.Raw)
		}
		id.Iface = all[i].ID.Iface
	}
	return elems.Info(id)
}

// ParseNumber parses a decimal or 0x-prefixed hexadecimal integer.
func ParseNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var n int64
	var err error
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		n, err = strconv.ParseInt(digits[2:], 16, 64)
	} else {
		n, err = strconv.ParseInt(digits, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if neg {
		n = -n
	}
	return n, nil
}

// Compile-time interface satisfaction check.
var _ Elements = (*ctl.MemoryCard)(nil)
