package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{
	"timestamp", "session_id", "model", "direction", "layer", "category",
	"type", "offset", "length", "mask", "element", "error",
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(event log.Event) []string {
	var offset, length, mask, elem, failure string
	switch {
	case event.Transaction != nil:
		offset = fmt.Sprintf("0x%012x", event.Transaction.Offset)
		length = strconv.Itoa(event.Transaction.Length)
		failure = event.Transaction.Err
	case event.Notification != nil:
		mask = fmt.Sprintf("0x%08x", event.Notification.Mask)
	case event.Element != nil:
		elem = event.Element.Name
	case event.Error != nil:
		failure = event.Error.Message
	}
	return []string{
		event.Timestamp.UTC().Format(timeLayout),
		event.SessionID,
		event.Model,
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		eventLabel(event),
		offset, length, mask, elem, failure,
	}
}
