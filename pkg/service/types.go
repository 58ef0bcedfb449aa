package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/ctl"
	"github.com/fwaudio/fwctl-go/pkg/log"
)

// Service errors.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrAlreadyStarted = errors.New("service already started")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// ServiceState represents the service state.
type ServiceState uint8

const (
	// StateIdle - service created but not started.
	StateIdle ServiceState = iota

	// StateStarting - service is loading the model.
	StateStarting

	// StateRunning - the control loop is running.
	StateRunning

	// StateStopping - service is shutting down.
	StateStopping

	// StateStopped - service has stopped.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Service.
type Config struct {
	// MeasureInterval is the meter poll period. Zero disables polling.
	MeasureInterval time.Duration

	// RequestQueue is the number of Get/Set requests that may wait for
	// the control loop.
	RequestQueue int

	// Name identifies the unit in logs and traces.
	Name string

	// Logger is the optional logger for operational output.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Tracer records element changes. If nil, nothing is traced.
	Tracer log.Logger

	// Session correlates trace events of one run.
	Session string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MeasureInterval: 100 * time.Millisecond,
		RequestQueue:    16,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.MeasureInterval < 0 {
		return ErrInvalidConfig
	}
	if c.RequestQueue < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// EventType identifies a service event.
type EventType uint8

const (
	// EventValueChanged - an element value changed.
	EventValueChanged EventType = iota

	// EventNotifyFailed - handling a notification failed.
	EventNotifyFailed

	// EventMeasureFailed - a meter poll failed.
	EventMeasureFailed

	// EventNotifierClosed - the notification channel was closed.
	EventNotifierClosed
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventValueChanged:
		return "VALUE_CHANGED"
	case EventNotifyFailed:
		return "NOTIFY_FAILED"
	case EventMeasureFailed:
		return "MEASURE_FAILED"
	case EventNotifierClosed:
		return "NOTIFIER_CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Source tells what caused a value change.
type Source uint8

const (
	SourceWrite Source = iota
	SourceNotification
	SourceMeasure
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceWrite:
		return "write"
	case SourceNotification:
		return "notification"
	case SourceMeasure:
		return "measure"
	default:
		return "unknown"
	}
}

// Event represents a service event.
type Event struct {
	// Type is the event type.
	Type EventType

	// Source is what caused the event.
	Source Source

	// Elem is the changed element (for value change events).
	Elem ctl.ElemID

	// Value is the new value (for value change events).
	Value ctl.ElemValue

	// Mask is the notification mask (for notification events).
	Mask uint32

	// Error is set if the event is an error.
	Error error
}

// EventHandler handles service events.
type EventHandler func(Event)
