package transport

import (
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

// Traced records every transaction of the wrapped Transport as a protocol
// trace event.
type Traced struct {
	next    Transport
	logger  log.Logger
	session string
	model   string
}

// WithTrace wraps next so that each Read and Write is logged to logger.
func WithTrace(next Transport, logger log.Logger, session, model string) *Traced {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Traced{next: next, logger: logger, session: session, model: model}
}

// Read forwards to the wrapped transport and logs the outcome.
func (t *Traced) Read(offset uint64, buf []byte, timeout time.Duration) error {
	start := time.Now()
	err := t.next.Read(offset, buf, timeout)
	t.record(log.TxRead, offset, buf, time.Since(start), err)
	return err
}

// Write forwards to the wrapped transport and logs the outcome.
func (t *Traced) Write(offset uint64, buf []byte, timeout time.Duration) error {
	start := time.Now()
	err := t.next.Write(offset, buf, timeout)
	t.record(log.TxWrite, offset, buf, time.Since(start), err)
	return err
}

func (t *Traced) record(op log.TxOp, offset uint64, buf []byte, d time.Duration, err error) {
	tx := &log.TransactionEvent{
		Op:       op,
		Offset:   offset,
		Length:   len(buf),
		Duration: d,
	}
	// A failed read has no meaningful payload.
	if err == nil || op == log.TxWrite {
		tx.Data, tx.Truncated = log.TruncateData(buf)
	}
	if err != nil {
		tx.Err = err.Error()
	}
	t.logger.Log(log.Event{
		Timestamp:   time.Now(),
		SessionID:   t.session,
		Direction:   log.DirectionOut,
		Layer:       log.LayerTransport,
		Category:    log.CategoryTransaction,
		Model:       t.model,
		Transaction: tx,
	})
}
