package avc

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("avc: malformed response")

	// ErrRejected is returned when the unit answers REJECTED.
	ErrRejected = errors.New("avc: command rejected")

	// ErrNotImplemented is returned when the unit answers NOT IMPLEMENTED.
	ErrNotImplemented = errors.New("avc: command not implemented")

	// ErrVolumeRange is returned for host values that have no wire encoding.
	ErrVolumeRange = errors.New("avc: volume out of range")
)

// DecodeError describes a response that cannot be interpreted.
type DecodeError struct {
	Reason string
	Frame  []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("avc: malformed response: %s (% x)", e.Reason, e.Frame)
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func decodeErr(frame []byte, format string, args ...any) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Frame: append([]byte(nil), frame...)}
}
