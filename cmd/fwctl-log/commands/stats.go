package commands

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/fwaudio/fwctl-go/pkg/log"
)

// topOffsets is the number of busiest offsets printed.
const topOffsets = 5

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Sessions          map[string]*SessionStats
	Transactions      TransactionStats
	Notifications     int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for one daemon run.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Model     string
}

// TransactionStats aggregates bus transactions.
type TransactionStats struct {
	Reads        int
	Writes       int
	BytesRead    int
	BytesWritten int
	Failed       int
	TotalTime    time.Duration
	ByOffset     map[uint64]int
}

// Collect reads every event of the trace file at path.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Sessions:          make(map[string]*SessionStats),
	}
	stats.Transactions.ByOffset = make(map[uint64]int)

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if sess.Model == "" {
		sess.Model = event.Model
	}

	switch {
	case event.Transaction != nil:
		tx := event.Transaction
		t := &s.Transactions
		if tx.Op == log.TxWrite {
			t.Writes++
			t.BytesWritten += tx.Length
		} else {
			t.Reads++
			t.BytesRead += tx.Length
		}
		if tx.Err != "" {
			t.Failed++
		}
		t.TotalTime += tx.Duration
		t.ByOffset[tx.Offset]++
	case event.Notification != nil:
		s.Notifications++
	case event.Error != nil:
		s.Errors++
	}
}

// Busiest returns up to n offsets ordered by transaction count.
func (t *TransactionStats) Busiest(n int) []uint64 {
	offsets := make([]uint64, 0, len(t.ByOffset))
	for off := range t.ByOffset {
		offsets = append(offsets, off)
	}
	slices.SortFunc(offsets, func(a, b uint64) int {
		if c := cmp.Compare(t.ByOffset[b], t.ByOffset[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(offsets) > n {
		offsets = offsets[:n]
	}
	return offsets
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== fwctl Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerSegment, log.LayerControl} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryTransaction, log.CategoryNotification, log.CategoryElement, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if t := stats.Transactions; t.Reads+t.Writes > 0 {
		fmt.Fprintln(w, "Transactions:")
		fmt.Fprintf(w, "  Reads:   %d (%d bytes)\n", t.Reads, t.BytesRead)
		fmt.Fprintf(w, "  Writes:  %d (%d bytes)\n", t.Writes, t.BytesWritten)
		fmt.Fprintf(w, "  Failed:  %d\n", t.Failed)
		fmt.Fprintf(w, "  Average: %s\n", formatDuration(t.TotalTime/time.Duration(t.Reads+t.Writes)))
		fmt.Fprintln(w, "  Busiest offsets:")
		for _, off := range t.Busiest(topOffsets) {
			fmt.Fprintf(w, "    0x%012x %d\n", off, t.ByOffset[off])
		}
		fmt.Fprintln(w)
	}

	if stats.Notifications > 0 {
		fmt.Fprintf(w, "Notifications: %d\n", stats.Notifications)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	type sessionInfo struct {
		id    string
		stats *SessionStats
	}
	sessions := make([]sessionInfo, 0, len(stats.Sessions))
	for id, ss := range stats.Sessions {
		sessions = append(sessions, sessionInfo{id, ss})
	}
	slices.SortFunc(sessions, func(a, b sessionInfo) int {
		return a.stats.FirstSeen.Compare(b.stats.FirstSeen)
	})
	for _, s := range sessions {
		duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] %d events, duration %s", shortenSessionID(s.id), s.stats.Events, duration)
		if s.stats.Model != "" {
			fmt.Fprintf(w, ", model %s", s.stats.Model)
		}
		fmt.Fprintln(w)
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
