package segment

import (
	"bytes"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
	"github.com/fwaudio/fwctl-go/pkg/quadlet"
	"github.com/fwaudio/fwctl-go/pkg/transport"
)

// Mediator issues segment transactions over a transport.
// It is not safe for concurrent use.
type Mediator struct {
	t       transport.Transport
	base    uint64
	tracer  log.Logger
	session string
}

// MediatorOption configures a Mediator.
type MediatorOption func(*Mediator)

// WithBase adds base to every segment offset.
func WithBase(base uint64) MediatorOption {
	return func(m *Mediator) {
		m.base = base
	}
}

// WithTracer records notification routing to tracer.
func WithTracer(tracer log.Logger, session string) MediatorOption {
	return func(m *Mediator) {
		m.tracer = tracer
		m.session = session
	}
}

// NewMediator creates a mediator over t.
func NewMediator(t transport.Transport, opts ...MediatorOption) *Mediator {
	m := &Mediator{t: t, tracer: log.NoopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Base returns the address added to segment offsets.
func (m *Mediator) Base() uint64 {
	return m.base
}

// ReadSegment reads the whole window of e in one transaction and parses it.
func (m *Mediator) ReadSegment(e Entry, timeout time.Duration) error {
	d := e.Descriptor()
	buf := make([]byte, d.Size)
	if err := m.t.Read(m.base+d.Offset, buf, timeout); err != nil {
		return &OpError{Op: "read", Segment: d.Name, Offset: d.Offset, Err: err}
	}
	if err := e.Parse(buf); err != nil {
		return &OpError{Op: "parse", Segment: d.Name, Offset: d.Offset, Err: err}
	}
	return nil
}

// WriteSegment builds the whole window of e and writes it in one
// transaction. On failure the cached image is unchanged but the data the
// caller mutated is not rolled back; re-read before trusting it.
func (m *Mediator) WriteSegment(e Entry, timeout time.Duration) error {
	d := e.Descriptor()
	raw, err := e.Build()
	if err != nil {
		return &OpError{Op: "build", Segment: d.Name, Offset: d.Offset, Err: err}
	}
	if err := m.t.Write(m.base+d.Offset, raw, timeout); err != nil {
		return &OpError{Op: "write", Segment: d.Name, Offset: d.Offset, Err: err}
	}
	e.Commit(raw)
	return nil
}

// UpdateSegment builds e and writes only the quadlets that differ from the
// cached image, one transaction per changed quadlet. Nothing is written
// when the encoding is unchanged. Each quadlet enters the cache once its
// write succeeded, so after a failure the cache holds exactly what reached
// the device.
func (m *Mediator) UpdateSegment(e Entry, timeout time.Duration) error {
	d := e.Descriptor()
	raw, err := e.Build()
	if err != nil {
		return &OpError{Op: "build", Segment: d.Name, Offset: d.Offset, Err: err}
	}
	cached := e.Raw()
	for pos := 0; pos < len(raw); pos += quadlet.Size {
		q := raw[pos : pos+quadlet.Size]
		if bytes.Equal(q, cached[pos:pos+quadlet.Size]) {
			continue
		}
		offset := d.Offset + uint64(pos)
		if err := m.t.Write(m.base+offset, q, timeout); err != nil {
			e.Commit(cached)
			return &OpError{Op: "write", Segment: d.Name, Offset: offset, Err: err}
		}
		copy(cached[pos:], q)
	}
	e.Commit(raw)
	return nil
}

// ReadAll reads every segment of r in declaration order.
func (m *Mediator) ReadAll(r *Registry, timeout time.Duration) error {
	return m.ReadEntries(r.Entries(), timeout)
}

// ReadEntries reads the given segments in order, stopping at the first
// failure.
func (m *Mediator) ReadEntries(entries []Entry, timeout time.Duration) error {
	for _, e := range entries {
		if err := m.ReadSegment(e, timeout); err != nil {
			return err
		}
	}
	return nil
}

// DispatchNotification re-reads every segment of r whose notification flag
// is set in mask and returns the names of the segments it refreshed.
func (m *Mediator) DispatchNotification(r *Registry, mask uint32, timeout time.Duration) ([]string, error) {
	entries := r.Notified(mask)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Descriptor().Name)
	}

	m.tracer.Log(log.Event{
		Timestamp:    time.Now(),
		SessionID:    m.session,
		Direction:    log.DirectionIn,
		Layer:        log.LayerSegment,
		Category:     log.CategoryNotification,
		Model:        r.Model(),
		Notification: &log.NotificationEvent{Mask: mask, Segments: names},
	})

	if err := m.ReadEntries(entries, timeout); err != nil {
		return nil, err
	}
	return names, nil
}
