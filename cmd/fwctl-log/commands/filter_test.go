package commands

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, event)
	}
}

func TestFilterByOffset(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	outPath := filepath.Join(t.TempDir(), "filtered.ftrace")

	var buf bytes.Buffer
	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		OffsetMin: "0xffffe0a010ac",
		OffsetMax: "0xFFFFE0A01200",
	}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtered 1 events") {
		t.Errorf("unexpected summary %q", buf.String())
	}

	events := readAll(t, outPath)
	if len(events) != 1 || events[0].Transaction.Op != log.TxWrite {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestFilterByCategoryAndTime(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	outPath := filepath.Join(t.TempDir(), "filtered.ftrace")

	err := RunFilter(path, FilterOptions{
		Output:    outPath,
		Category:  "transaction",
		TimeStart: "2026-03-14T09:26:53Z",
		TimeEnd:   "2026-03-14T09:26:54Z",
		Model:     "klive",
	}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if got := len(readAll(t, outPath)); got != 2 {
		t.Errorf("expected 2 transactions, got %d", got)
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "x.ftrace")

	for name, opts := range map[string]FilterOptions{
		"time":      {Output: out, TimeStart: "yesterday"},
		"offset":    {Output: out, OffsetMin: "0xzz"},
		"layer":     {Output: out, Layer: "wire"},
		"direction": {Output: out, Direction: "up"},
		"category":  {Output: out, Category: "frame"},
	} {
		if err := RunFilter(path, opts, io.Discard); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"4096", 4096},
		{"0x1000", 4096},
		{"0XFFFFE0A01000", 0xffffe0a01000},
	}
	for _, tt := range tests {
		got, err := parseOffset(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseOffset(%q) = %#x, %v; want %#x", tt.in, got, err, tt.want)
		}
	}
}
