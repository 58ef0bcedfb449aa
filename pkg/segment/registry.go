package segment

import (
	"fmt"
	"sort"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
)

// Registry is the fixed, ordered set of segments of one device model.
type Registry struct {
	model   string
	entries []Entry
	byName  map[string]Entry
}

// NewRegistry validates the segment windows and builds a registry. Entries
// keep their declaration order.
func NewRegistry(model string, entries ...Entry) (*Registry, error) {
	r := &Registry{
		model:   model,
		entries: entries,
		byName:  make(map[string]Entry, len(entries)),
	}

	for _, e := range entries {
		d := e.Descriptor()
		if d.Size <= 0 {
			return nil, fmt.Errorf("%w: %s in %s has size %d", ErrInvalidSize, d.Name, model, d.Size)
		}
		if d.Offset%quadlet.Size != 0 || d.Size%quadlet.Size != 0 {
			return nil, fmt.Errorf("%w: %s in %s", ErrMisaligned, d, model)
		}
		if _, ok := r.byName[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateName, d.Name, model)
		}
		r.byName[d.Name] = e
	}

	sorted := make([]Descriptor, len(entries))
	for i, e := range entries {
		sorted[i] = e.Descriptor()
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Offset+uint64(prev.Size) > cur.Offset {
			return nil, fmt.Errorf("%w: %s and %s in %s", ErrOverlap, prev, cur, model)
		}
	}

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// registries built from constant layout tables.
func MustRegistry(model string, entries ...Entry) *Registry {
	r, err := NewRegistry(model, entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Model returns the model identifier.
func (r *Registry) Model() string {
	return r.model
}

// Entries returns the segments in declaration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Lookup finds a segment by name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// ByName is Lookup for callers that want an error. A miss wraps ErrUnknown.
func (r *Registry) ByName(name string) (Entry, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknown, name, r.model)
	}
	return e, nil
}

// Notified returns the segments whose notification flag is set in mask, in
// declaration order.
func (r *Registry) Notified(mask uint32) []Entry {
	var out []Entry
	for _, e := range r.entries {
		flag := e.Descriptor().NotifyFlag
		if flag != 0 && mask&flag != 0 {
			out = append(out, e)
		}
	}
	return out
}

// Span returns the lowest offset and the end of the highest window.
func (r *Registry) Span() (start, end uint64) {
	for i, e := range r.entries {
		d := e.Descriptor()
		if i == 0 || d.Offset < start {
			start = d.Offset
		}
		if last := d.Offset + uint64(d.Size); last > end {
			end = last
		}
	}
	return start, end
}
