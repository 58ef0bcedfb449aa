package log

// MultiLogger fans events out to several loggers, typically a FileLogger
// taking everything and a SlogAdapter restricted with OnlyLayers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the event to all configured loggers.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// LayerLogger passes on only events captured at selected layers. Error
// events are matched on the layer that failed.
type LayerLogger struct {
	next   Logger
	layers uint8
}

// OnlyLayers wraps next so it sees only events from the given layers. Meter
// polling produces a transport transaction every interval, so a console
// tracer usually keeps LayerSegment and LayerControl.
func OnlyLayers(next Logger, layers ...Layer) *LayerLogger {
	l := &LayerLogger{next: next}
	for _, layer := range layers {
		l.layers |= 1 << layer
	}
	return l
}

// Log forwards the event if its layer was selected.
func (l *LayerLogger) Log(event Event) {
	layer := event.Layer
	if event.Error != nil {
		layer = event.Error.Layer
	}
	if l.layers&(1<<layer) != 0 {
		l.next.Log(event)
	}
}

var (
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*LayerLogger)(nil)
)
