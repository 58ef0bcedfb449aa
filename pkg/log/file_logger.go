package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileLoggerOption configures a FileLogger.
type FileLoggerOption func(*FileLogger)

// WithMaxBytes rotates the trace once it reaches n bytes. The full file is
// renamed to path.1, replacing any previous one, and a fresh file is
// started. Zero disables rotation.
func WithMaxBytes(n int64) FileLoggerOption {
	return func(l *FileLogger) {
		l.maxBytes = n
	}
}

// FileLogger appends trace events to an .ftrace file.
// It is safe for concurrent use.
type FileLogger struct {
	mu       sync.Mutex
	path     string
	maxBytes int64

	file    *os.File
	size    int64
	encoder *Encoder
	events  int
	closed  bool
	err     error
}

// NewFileLogger opens path for appending, creating it and its parent
// directory if needed.
func NewFileLogger(path string, opts ...FileLoggerOption) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	l := &FileLogger{path: path}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	l.file = f
	l.size = info.Size()
	l.encoder = NewEncoder(&sizeWriter{w: f, n: &l.size})
	return nil
}

func (l *FileLogger) rotate() error {
	if err := l.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		return err
	}
	return l.open()
}

// Log writes an event to the trace file. Write failures never reach the
// caller; the first one is kept for Err.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.file == nil {
		return
	}
	if l.maxBytes > 0 && l.size >= l.maxBytes {
		if err := l.rotate(); err != nil {
			l.fail(fmt.Errorf("rotate %s: %w", l.path, err))
			l.file = nil
			return
		}
	}
	if err := l.encoder.Encode(event); err != nil {
		l.fail(err)
		return
	}
	l.events++
}

func (l *FileLogger) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Err returns the first write or rotation error, if any. After a failed
// rotation the logger drops all further events.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Events returns the number of events written since the logger was opened,
// across rotations.
func (l *FileLogger) Events() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events
}

// Close closes the trace file. Later Log calls are ignored.
// It is safe to call Close multiple times.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// sizeWriter counts bytes written through it.
type sizeWriter struct {
	w io.Writer
	n *int64
}

func (s *sizeWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	*s.n += int64(n)
	return n, err
}

var _ Logger = (*FileLogger)(nil)
