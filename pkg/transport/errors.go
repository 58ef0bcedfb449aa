package transport

import (
	"errors"
	"fmt"
)

// Transport errors.
var (
	ErrTimeout      = errors.New("transport: transaction timed out")
	ErrBusReset     = errors.New("transport: bus reset during transaction")
	ErrDisconnected = errors.New("transport: node disconnected")
	ErrClosed       = errors.New("transport: closed")
)

// Rcode is an IEEE 1394 response code as reported by the Linux firewire
// subsystem.
type Rcode uint32

// Response codes.
const (
	RcodeComplete      Rcode = 0x00
	RcodeConflictError Rcode = 0x04
	RcodeDataError     Rcode = 0x05
	RcodeTypeError     Rcode = 0x06
	RcodeAddressError  Rcode = 0x07
	RcodeSendError     Rcode = 0x10
	RcodeCancelled     Rcode = 0x11
	RcodeBusy          Rcode = 0x12
	RcodeGeneration    Rcode = 0x13
	RcodeNoAck         Rcode = 0x14
)

// String returns the rcode name.
func (r Rcode) String() string {
	switch r {
	case RcodeComplete:
		return "complete"
	case RcodeConflictError:
		return "conflict error"
	case RcodeDataError:
		return "data error"
	case RcodeTypeError:
		return "type error"
	case RcodeAddressError:
		return "address error"
	case RcodeSendError:
		return "send error"
	case RcodeCancelled:
		return "cancelled"
	case RcodeBusy:
		return "busy"
	case RcodeGeneration:
		return "generation"
	case RcodeNoAck:
		return "no ack"
	default:
		return fmt.Sprintf("rcode(%#x)", uint32(r))
	}
}

// RcodeError is returned when a transaction completes with a response code
// other than RcodeComplete.
type RcodeError struct {
	Op     string
	Offset uint64
	Rcode  Rcode
}

// Error implements the error interface.
func (e *RcodeError) Error() string {
	return fmt.Sprintf("transport: %s at %#012x failed: %s", e.Op, e.Offset, e.Rcode)
}

// Is maps cancelled transactions to ErrTimeout and generation mismatches to
// ErrBusReset.
func (e *RcodeError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Rcode == RcodeCancelled
	case ErrBusReset:
		return e.Rcode == RcodeGeneration
	}
	return false
}

// IsRcodeError reports whether err wraps an *RcodeError and returns it.
func IsRcodeError(err error) (*RcodeError, bool) {
	var re *RcodeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
