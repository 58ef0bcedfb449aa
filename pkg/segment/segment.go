package segment

import (
	"fmt"

	"github.com/fwaudio/fwctl-go/pkg/quadlet"
)

// Data is the typed content of a segment. Build and Parse receive exactly
// the segment's size in bytes.
type Data interface {
	Build(raw []byte)
	Parse(raw []byte)
}

// Descriptor places a segment in the device's register space.
type Descriptor struct {
	Name   string
	Offset uint64
	Size   int

	// NotifyFlag is the bit the device sets in a notification mask when the
	// segment changed out of band. Zero means the segment is never notified.
	NotifyFlag uint32
}

// Notifiable reports whether the segment has a notification flag.
func (d Descriptor) Notifiable() bool {
	return d.NotifyFlag != 0
}

// String returns a short description of the window.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s[0x%04x+%d]", d.Name, d.Offset, d.Size)
}

// Entry is the type-erased view of a segment held by a Registry.
type Entry interface {
	Descriptor() Descriptor

	// Build encodes the current data into a new image seeded from the
	// cached one. The cache is not modified.
	Build() ([]byte, error)

	// Parse decodes raw into the data and caches it.
	Parse(raw []byte) error

	// Commit adopts an image that was written to the device as the cache.
	Commit(raw []byte)

	// Raw returns a copy of the cached image.
	Raw() []byte
}

// Segment is a typed window of device state.
type Segment[T Data] struct {
	desc Descriptor
	raw  []byte

	// Data is the host side state. It is mutated by Parse and by callers
	// preparing a write.
	Data T
}

// New creates a segment with a zeroed cache.
func New[T Data](desc Descriptor, data T) *Segment[T] {
	return &Segment[T]{
		desc: desc,
		raw:  make([]byte, desc.Size),
		Data: data,
	}
}

// Descriptor returns the segment's placement.
func (s *Segment[T]) Descriptor() Descriptor { return s.desc }

// Name returns the segment name.
func (s *Segment[T]) Name() string { return s.desc.Name }

// Offset returns the segment offset.
func (s *Segment[T]) Offset() uint64 { return s.desc.Offset }

// Size returns the segment size in bytes.
func (s *Segment[T]) Size() int { return s.desc.Size }

// NotifyFlag returns the segment's notification flag, or zero.
func (s *Segment[T]) NotifyFlag() uint32 { return s.desc.NotifyFlag }

// Raw returns a copy of the cached image.
func (s *Segment[T]) Raw() []byte {
	return append([]byte(nil), s.raw...)
}

// Build encodes Data into a copy of the cached image.
func (s *Segment[T]) Build() ([]byte, error) {
	scratch := s.Raw()
	if err := guard(func() { s.Data.Build(scratch) }); err != nil {
		return nil, err
	}
	return scratch, nil
}

// Parse decodes raw into Data and caches it. raw must be exactly Size bytes.
func (s *Segment[T]) Parse(raw []byte) error {
	if err := quadlet.CheckSize(raw, s.desc.Size, s.desc.Name); err != nil {
		return err
	}
	if err := guard(func() { s.Data.Parse(raw) }); err != nil {
		return err
	}
	copy(s.raw, raw)
	return nil
}

// Commit adopts raw as the cached image.
func (s *Segment[T]) Commit(raw []byte) {
	copy(s.raw, raw)
}

// guard converts a size mismatch panic raised by a codec into an error.
// Other panics propagate.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*quadlet.SizeError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()
	fn()
	return nil
}
