package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	Model     string
	TimeStart string
	TimeEnd   string
	Layer     string
	Direction string
	Category  string

	// OffsetMin and OffsetMax bound transaction offsets, decimal or 0x hex.
	OffsetMin string
	OffsetMax string
}

// buildFilter turns the options into a log filter.
func buildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID: opts.SessionID,
		Model:     opts.Model,
	}

	for _, tf := range []struct {
		name string
		in   string
		dst  **time.Time
	}{
		{"time-start", opts.TimeStart, &filter.TimeStart},
		{"time-end", opts.TimeEnd, &filter.TimeEnd},
	} {
		if tf.in == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, tf.in)
		if err != nil {
			return filter, fmt.Errorf("invalid %s format: %w", tf.name, err)
		}
		*tf.dst = &t
	}

	for _, of := range []struct {
		name string
		in   string
		dst  **uint64
	}{
		{"offset-min", opts.OffsetMin, &filter.OffsetMin},
		{"offset-max", opts.OffsetMax, &filter.OffsetMax},
	} {
		if of.in == "" {
			continue
		}
		n, err := parseOffset(of.in)
		if err != nil {
			return filter, fmt.Errorf("invalid %s: %w", of.name, err)
		}
		*of.dst = &n
	}

	if opts.Layer != "" {
		l, err := ParseLayerFlag(opts.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// RunFilter filters the log file and writes matching events to a new file.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, opts.Output)
	return nil
}

// parseOffset parses a register address, decimal or 0x-prefixed hex.
func parseOffset(s string) (uint64, error) {
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return strconv.ParseUint(rest, 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
