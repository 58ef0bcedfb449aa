package ctl

import "errors"

// Element errors.
var (
	ErrElemNotFound    = errors.New("element not found")
	ErrElemNotWritable = errors.New("element is not writable")
	ErrElemExists      = errors.New("element already exists")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrValueCount      = errors.New("wrong number of values")
	ErrInvalidElem     = errors.New("invalid element description")
)
