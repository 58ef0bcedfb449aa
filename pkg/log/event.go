package log

import "time"

// Event is one protocol trace record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one daemon run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction of the traffic relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"5,keyasint"`

	// Model is the device model identifier, e.g. "klive".
	Model string `cbor:"6,keyasint,omitempty"`

	// Node is the device node the daemon is bound to.
	Node string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Transaction  *TransactionEvent  `cbor:"10,keyasint,omitempty"`
	Notification *NotificationEvent `cbor:"11,keyasint,omitempty"`
	Element      *ElementEvent      `cbor:"12,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of traffic.
type Direction uint8

const (
	// DirectionIn is traffic initiated by the device.
	DirectionIn Direction = 0
	// DirectionOut is traffic initiated by the host.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the bus transaction layer.
	LayerTransport Layer = 0
	// LayerSegment is the segment mediator.
	LayerSegment Layer = 1
	// LayerControl is the control element layer.
	LayerControl Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerSegment:
		return "SEGMENT"
	case LayerControl:
		return "CONTROL"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer parses a layer name as printed by String.
func ParseLayer(s string) (Layer, bool) {
	for _, l := range []Layer{LayerTransport, LayerSegment, LayerControl} {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event.
type Category uint8

const (
	// CategoryTransaction is a read or write transaction.
	CategoryTransaction Category = 0
	// CategoryNotification is a notification mask from the device.
	CategoryNotification Category = 1
	// CategoryElement is an element value change.
	CategoryElement Category = 2
	// CategoryError is an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransaction:
		return "TRANSACTION"
	case CategoryNotification:
		return "NOTIFICATION"
	case CategoryElement:
		return "ELEMENT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryTransaction, CategoryNotification, CategoryElement, CategoryError} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// TxOp is the kind of a bus transaction.
type TxOp uint8

const (
	// TxRead is a read request.
	TxRead TxOp = 0
	// TxWrite is a write request.
	TxWrite TxOp = 1
)

// String returns the operation name.
func (o TxOp) String() string {
	switch o {
	case TxRead:
		return "READ"
	case TxWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// MaxTraceData bounds the payload bytes kept per transaction.
const MaxTraceData = 512

// TransactionEvent captures one bus transaction.
type TransactionEvent struct {
	// Op is the transaction kind.
	Op TxOp `cbor:"1,keyasint"`

	// Offset is the absolute register address.
	Offset uint64 `cbor:"2,keyasint"`

	// Length is the transfer length in bytes.
	Length int `cbor:"3,keyasint"`

	// Data is the payload read or written (may be truncated).
	Data []byte `cbor:"4,keyasint,omitempty"`

	// Truncated indicates Data was cut to MaxTraceData.
	Truncated bool `cbor:"5,keyasint,omitempty"`

	// Duration of the transaction, stored as nanoseconds.
	Duration time.Duration `cbor:"6,keyasint"`

	// Err is the failure message, empty on success.
	Err string `cbor:"7,keyasint,omitempty"`
}

// NotificationEvent captures a notification mask and its routing.
type NotificationEvent struct {
	// Mask is the notification mask pushed by the device.
	Mask uint32 `cbor:"1,keyasint"`

	// Segments lists the segments re-read for the mask.
	Segments []string `cbor:"2,keyasint,omitempty"`
}

// ElementEvent captures a control element value change.
type ElementEvent struct {
	// Name is the element name.
	Name string `cbor:"1,keyasint"`

	// Index is the element index.
	Index uint32 `cbor:"2,keyasint,omitempty"`

	// Values are the new element values; booleans are 0 or 1 and
	// enumerations are label indices.
	Values []int64 `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// TruncateData returns data cut to MaxTraceData and whether it was cut.
func TruncateData(data []byte) ([]byte, bool) {
	if len(data) <= MaxTraceData {
		return append([]byte(nil), data...), false
	}
	return append([]byte(nil), data[:MaxTraceData]...), true
}
