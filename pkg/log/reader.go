package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects trace events. Empty or nil fields match everything.
type Filter struct {
	// SessionID filters by exact session ID.
	SessionID string

	// Direction filters by traffic direction.
	Direction *Direction

	// Layer filters by capturing layer.
	Layer *Layer

	// Category filters by event category.
	Category *Category

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time

	// Model filters by device model.
	Model string

	// OffsetMin and OffsetMax, when set, keep only transactions whose
	// offset lies in [OffsetMin, OffsetMax).
	OffsetMin *uint64
	OffsetMax *uint64
}

// Match reports whether the event satisfies every filter criterion.
func (f *Filter) Match(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if f.Model != "" && event.Model != f.Model {
		return false
	}
	if f.OffsetMin != nil || f.OffsetMax != nil {
		if event.Transaction == nil {
			return false
		}
		if f.OffsetMin != nil && event.Transaction.Offset < *f.OffsetMin {
			return false
		}
		if f.OffsetMax != nil && event.Transaction.Offset >= *f.OffsetMax {
			return false
		}
	}
	return true
}

// Reader streams events from a trace file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader returning every event of the file at path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader returning events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		if r.filter.Match(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
