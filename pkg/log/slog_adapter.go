package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Model != "" {
		attrs = append(attrs, slog.String("model", event.Model))
	}

	switch {
	case event.Transaction != nil:
		tx := event.Transaction
		attrs = append(attrs,
			slog.String("op", tx.Op.String()),
			slog.String("offset", fmt.Sprintf("%#x", tx.Offset)),
			slog.Int("length", tx.Length),
			slog.Duration("duration", tx.Duration),
		)
		if tx.Err != "" {
			attrs = append(attrs, slog.String("error", tx.Err))
		}
	case event.Notification != nil:
		attrs = append(attrs,
			slog.String("mask", fmt.Sprintf("0x%08x", event.Notification.Mask)),
			slog.Any("segments", event.Notification.Segments),
		)
	case event.Element != nil:
		attrs = append(attrs,
			slog.String("elem", event.Element.Name),
			slog.Uint64("index", uint64(event.Element.Index)),
			slog.Any("values", event.Element.Values),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
