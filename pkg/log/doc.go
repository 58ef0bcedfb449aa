// Package log provides protocol tracing for fwctl.
//
// It records what crossed the bus: every read and write transaction, every
// notification mask the device pushed and the segments it refreshed, and
// every element write that caused a transaction. Operational messages go
// through slog; the trace is a separate machine-readable stream.
//
// # Basic Usage
//
// Daemons configure tracing by handing a Logger to the transport decorator
// and the service:
//
//	// For development: trace to console via slog
//	tracer := log.NewSlogAdapter(slog.Default())
//
//	// For field reports: write to a binary file, keeping at most two
//	// files of 64 MiB
//	tracer, _ := log.NewFileLogger("/var/log/fwctl/klive.ftrace", log.WithMaxBytes(64<<20))
//
//	// Both, without per-transaction console noise
//	tracer := log.NewMultiLogger(
//	    fileTracer,
//	    log.OnlyLayers(log.NewSlogAdapter(slog.Default()), log.LayerSegment, log.LayerControl),
//	)
//
// # Event Types
//
//   - Transport: read/write transactions (TransactionEvent)
//   - Segment: notification masks and the segments they matched (NotificationEvent)
//   - Control: element writes (ElementEvent)
//
// Errors at any layer have a dedicated ErrorEventData payload.
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with the .ftrace
// extension. Transaction payloads are cut to MaxTraceData when encoded. The fwctl-log tool views, filters and exports them.
package log
