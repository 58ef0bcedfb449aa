package quadlet

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is matched by every *SizeError.
var ErrSizeMismatch = errors.New("quadlet: buffer size mismatch")

// SizeError reports a buffer whose length differs from the fixed length of
// the field or structure being encoded.
type SizeError struct {
	What string
	Want int
	Got  int
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("quadlet: %s needs %d bytes, got %d", e.What, e.Want, e.Got)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// CheckSize returns a *SizeError if raw is not exactly want bytes long.
func CheckSize(raw []byte, want int, what string) error {
	if len(raw) != want {
		return &SizeError{What: what, Want: want, Got: len(raw)}
	}
	return nil
}

// MustSize panics with a *SizeError if raw is not exactly want bytes long.
func MustSize(raw []byte, want int, what string) {
	if err := CheckSize(raw, want, what); err != nil {
		panic(err)
	}
}
