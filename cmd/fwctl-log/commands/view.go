// Package commands implements the fwctl-log CLI commands.
package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

func (f ViewFilter) match(e log.Event) bool {
	if f.Layer != nil && e.Layer != *f.Layer {
		return false
	}
	if f.Direction != nil && e.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	return true
}

// eventLabel names the payload of an event.
func eventLabel(event log.Event) string {
	switch {
	case event.Transaction != nil:
		return event.Transaction.Op.String()
	case event.Notification != nil:
		return "Notify"
	case event.Element != nil:
		return "Element"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeLayout)
	fmt.Fprintf(w, "%s [%s] %-3s %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Direction, event.Layer, eventLabel(event))

	switch {
	case event.Transaction != nil:
		formatTransactionDetails(w, event.Transaction)
	case event.Notification != nil:
		formatNotificationDetails(w, event.Notification)
	case event.Element != nil:
		formatElementDetails(w, event.Element)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}
	if event.Model != "" {
		fmt.Fprintf(w, "  Model: %s\n", event.Model)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatTransactionDetails(w io.Writer, tx *log.TransactionEvent) {
	fmt.Fprintf(w, "  Offset: 0x%012x  Length: %d  Duration: %s\n", tx.Offset, tx.Length, formatDuration(tx.Duration))
	if len(tx.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", formatQuadlets(tx.Data))
		if tx.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
	if tx.Err != "" {
		fmt.Fprintf(w, "  Failed: %s\n", tx.Err)
	}
}

// formatQuadlets groups data into big-endian quadlets.
func formatQuadlets(data []byte) string {
	var parts []string
	for len(data) > 4 {
		parts = append(parts, hex.EncodeToString(data[:4]))
		data = data[4:]
	}
	parts = append(parts, hex.EncodeToString(data))
	return strings.Join(parts, " ")
}

func formatNotificationDetails(w io.Writer, n *log.NotificationEvent) {
	fmt.Fprintf(w, "  Mask: 0x%08x\n", n.Mask)
	if len(n.Segments) > 0 {
		fmt.Fprintf(w, "  Segments: %s\n", strings.Join(n.Segments, ", "))
	}
}

func formatElementDetails(w io.Writer, e *log.ElementEvent) {
	name := e.Name
	if e.Index > 0 {
		name = fmt.Sprintf("%s[%d]", e.Name, e.Index)
	}
	fmt.Fprintf(w, "  %s = %v\n", name, e.Values)
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	if l, ok := log.ParseLayer(strings.ToUpper(s)); ok {
		return l, nil
	}
	return 0, fmt.Errorf("invalid layer: %s (must be transport, segment, or control)", s)
}

// ParseDirectionFlag parses a direction name (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	if c, ok := log.ParseCategory(strings.ToUpper(s)); ok {
		return c, nil
	}
	return 0, fmt.Errorf("invalid category: %s (must be transaction, notification, element, or error)", s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if filter.match(event) {
			formatEvent(output, event)
		}
	}
}
