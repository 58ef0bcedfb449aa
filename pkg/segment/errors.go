package segment

import (
	"errors"
	"fmt"
)

// Registry construction errors.
var (
	ErrOverlap       = errors.New("segment: windows overlap")
	ErrMisaligned    = errors.New("segment: window not quadlet aligned")
	ErrDuplicateName = errors.New("segment: duplicate name")
	ErrInvalidSize   = errors.New("segment: invalid size")
)

// ErrUnknown is returned when a registry has no segment of a given name.
var ErrUnknown = errors.New("segment: unknown segment")

// OpError records a failed segment transaction. It wraps the transport or
// codec error unchanged.
type OpError struct {
	Op      string
	Segment string
	Offset  uint64
	Err     error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("segment %s: %s at %#x: %v", e.Segment, e.Op, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}
