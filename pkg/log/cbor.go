package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Trace events use integer keys in canonical order so two traces of the same
// bus traffic are byte-identical apart from timestamps.
var (
	traceEncMode cbor.EncMode
	traceDecMode cbor.DecMode
)

func init() {
	var err error

	traceEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace encoder mode: %v", err))
	}

	// Older traces may carry keys this build does not know.
	traceDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace decoder mode: %v", err))
	}
}

// EncodeEvent encodes a single event. Transaction payloads are cut to
// MaxTraceData.
func EncodeEvent(event Event) ([]byte, error) {
	return traceEncMode.Marshal(clampPayload(event))
}

// DecodeEvent decodes a single event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// Encoder writes events as a CBOR sequence, the body of an .ftrace file.
type Encoder struct {
	enc   *cbor.Encoder
	count int
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: traceEncMode.NewEncoder(w)}
}

// Encode writes one event. Transaction payloads are cut to MaxTraceData.
func (e *Encoder) Encode(event Event) error {
	if err := e.enc.Encode(clampPayload(event)); err != nil {
		return err
	}
	e.count++
	return nil
}

// Count returns the number of events written.
func (e *Encoder) Count() int {
	return e.count
}

// NewDecoder creates a decoder for a CBOR sequence of events.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return traceDecMode.NewDecoder(r)
}

// clampPayload returns event with an oversized transaction payload replaced
// by a truncated copy. The caller's event is left alone.
func clampPayload(event Event) Event {
	tx := event.Transaction
	if tx == nil || len(tx.Data) <= MaxTraceData {
		return event
	}
	cut := *tx
	cut.Data, cut.Truncated = TruncateData(tx.Data)
	event.Transaction = &cut
	return event
}
