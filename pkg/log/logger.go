package log

import "github.com/google/uuid"

// Logger receives protocol trace events.
// Pass NoopLogger to disable tracing.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent use
	// and must not block for long; the caller is the device control loop.
	Log(event Event)
}

// NoopLogger discards all events.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// NewSessionID returns a fresh identifier grouping the events of one daemon
// run against one device.
func NewSessionID() string {
	return uuid.NewString()
}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
