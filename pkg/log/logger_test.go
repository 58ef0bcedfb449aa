package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Timestamp: time.Now()})
}

func TestNewSessionIDIsUUID(t *testing.T) {
	id := NewSessionID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a UUID: %v", id, err)
	}
	if id == NewSessionID() {
		t.Error("session ids must differ")
	}
}

func TestMultiLoggerCallsAllAndSkipsNil(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	multi := NewMultiLogger(a, nil, b)

	multi.Log(Event{SessionID: "s"})

	for i, r := range []*recordingLogger{a, b} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
		}
	}
}

func TestOnlyLayersRoutesByLayer(t *testing.T) {
	rec := &recordingLogger{}
	l := OnlyLayers(rec, LayerSegment, LayerControl)

	l.Log(Event{Layer: LayerTransport, Category: CategoryTransaction})
	l.Log(Event{Layer: LayerSegment, Category: CategoryNotification})
	l.Log(Event{Layer: LayerControl, Category: CategoryElement})
	l.Log(Event{Layer: LayerControl, Category: CategoryError, Error: &ErrorEventData{Layer: LayerTransport}})
	l.Log(Event{Layer: LayerTransport, Category: CategoryError, Error: &ErrorEventData{Layer: LayerSegment}})

	if len(rec.events) != 3 {
		t.Fatalf("got %d events, want 3", len(rec.events))
	}
	if rec.events[2].Category != CategoryError || rec.events[2].Error.Layer != LayerSegment {
		t.Errorf("error events must be routed by the failing layer, got %+v", rec.events[2])
	}
}

func TestSlogAdapterLogsTransaction(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "s-1",
		Direction: DirectionOut,
		Layer:     LayerTransport,
		Category:  CategoryTransaction,
		Model:     "klive",
		Transaction: &TransactionEvent{
			Op:     TxWrite,
			Offset: 0x218,
			Length: 68,
			Err:    "transport: transaction timed out",
		},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	checks := map[string]any{
		"session": "s-1",
		"layer":   "TRANSPORT",
		"op":      "WRITE",
		"offset":  "0x218",
		"length":  float64(68),
		"model":   "klive",
		"error":   "transport: transaction timed out",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s: got %v, want %v", k, entry[k], want)
		}
	}
}

func TestSlogAdapterLogsNotification(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		Direction:    DirectionIn,
		Layer:        LayerSegment,
		Category:     CategoryNotification,
		Notification: &NotificationEvent{Mask: 0x00100000, Segments: []string{"ch-strip-state"}},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["mask"] != "0x00100000" {
		t.Errorf("mask: got %v", entry["mask"])
	}
}

func TestEventEncodeDecode(t *testing.T) {
	event := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		SessionID: "s",
		Layer:     LayerControl,
		Category:  CategoryElement,
		Element:   &ElementEvent{Name: "reverb-algorithm", Values: []int64{3}},
	}
	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
	if decoded.Element == nil || decoded.Element.Name != "reverb-algorithm" || decoded.Element.Values[0] != 3 {
		t.Errorf("Element: got %+v", decoded.Element)
	}
}

func TestTruncateData(t *testing.T) {
	short, cut := TruncateData([]byte{1, 2, 3})
	if cut || len(short) != 3 {
		t.Errorf("short payload: got len %d cut %v", len(short), cut)
	}
	long, cut := TruncateData(make([]byte, MaxTraceData+10))
	if !cut || len(long) != MaxTraceData {
		t.Errorf("long payload: got len %d cut %v", len(long), cut)
	}
}

func TestStringers(t *testing.T) {
	if l, ok := ParseLayer("SEGMENT"); !ok || l != LayerSegment {
		t.Errorf("ParseLayer(SEGMENT) = %v, %v", l, ok)
	}
	if _, ok := ParseLayer("WIRE"); ok {
		t.Error("ParseLayer accepted unknown layer")
	}
	if c, ok := ParseCategory("ERROR"); !ok || c != CategoryError {
		t.Errorf("ParseCategory(ERROR) = %v, %v", c, ok)
	}
	if Direction(9).String() != "UNKNOWN" || TxOp(9).String() != "UNKNOWN" {
		t.Error("unknown values must print UNKNOWN")
	}
}
