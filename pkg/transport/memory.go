package transport

import (
	"sync"
	"time"
)

// Op identifies a transaction kind.
type Op uint8

const (
	// OpRead is a read request.
	OpRead Op = 0
	// OpWrite is a write request.
	OpWrite Op = 1
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Access records one transaction served by Memory.
type Access struct {
	Op     Op
	Offset uint64
	Length int
}

// WriteHook is called after Memory accepted a write. It runs without the
// memory lock held and may call Store and Notify.
type WriteHook func(m *Memory, offset uint64, data []byte)

// MemoryOption configures a Memory.
type MemoryOption func(*Memory)

// WithWriteHook installs a hook that simulates device side effects of writes.
func WithWriteHook(hook WriteHook) MemoryOption {
	return func(m *Memory) {
		m.onWrite = hook
	}
}

// WithNotifyBuffer sets the capacity of the notification channel.
func WithNotifyBuffer(n int) MemoryOption {
	return func(m *Memory) {
		m.notify = make(chan uint32, n)
	}
}

type failure struct {
	op  Op
	err error
}

// Memory is an in-process register space covering [base, base+size).
// It records every access and can be told to fail upcoming transactions.
// Memory is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	base     uint64
	data     []byte
	accesses []Access
	failures []failure
	onWrite  WriteHook
	closed   bool

	notifyMu sync.Mutex
	notify   chan uint32
}

// NewMemory creates a zero-filled register space of size bytes at base.
func NewMemory(base uint64, size int, opts ...MemoryOption) *Memory {
	m := &Memory{
		base:   base,
		data:   make([]byte, size),
		notify: make(chan uint32, 32),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Read copies len(buf) bytes at offset into buf.
func (m *Memory) Read(offset uint64, buf []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(OpRead, offset, len(buf)); err != nil {
		return err
	}
	start := offset - m.base
	copy(buf, m.data[start:start+uint64(len(buf))])
	return nil
}

// Write copies buf into the register space at offset.
func (m *Memory) Write(offset uint64, buf []byte, _ time.Duration) error {
	m.mu.Lock()
	if err := m.begin(OpWrite, offset, len(buf)); err != nil {
		m.mu.Unlock()
		return err
	}
	start := offset - m.base
	copy(m.data[start:], buf)
	hook := m.onWrite
	m.mu.Unlock()

	if hook != nil {
		hook(m, offset, append([]byte(nil), buf...))
	}
	return nil
}

// begin records the access and applies failure injection and bounds checks.
// The caller holds m.mu.
func (m *Memory) begin(op Op, offset uint64, length int) error {
	if m.closed {
		return ErrDisconnected
	}
	m.accesses = append(m.accesses, Access{Op: op, Offset: offset, Length: length})

	for i, f := range m.failures {
		if f.op == op {
			m.failures = append(m.failures[:i], m.failures[i+1:]...)
			return f.err
		}
	}

	if offset < m.base || offset-m.base+uint64(length) > uint64(len(m.data)) {
		return &RcodeError{Op: op.String(), Offset: offset, Rcode: RcodeAddressError}
	}
	if offset%4 != 0 || length%4 != 0 {
		return &RcodeError{Op: op.String(), Offset: offset, Rcode: RcodeTypeError}
	}
	return nil
}

// FailNext makes the next transaction of kind op fail with err.
func (m *Memory) FailNext(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, failure{op: op, err: err})
}

// Store sets register contents without recording an access.
func (m *Memory) Store(offset uint64, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.data[offset-m.base:], data)
}

// Load returns a copy of n bytes of register contents at offset.
func (m *Memory) Load(offset uint64, n int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := offset - m.base
	return append([]byte(nil), m.data[start:start+uint64(n)]...)
}

// Accesses returns the transactions served so far.
func (m *Memory) Accesses() []Access {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Access(nil), m.accesses...)
}

// ResetAccesses clears the access record.
func (m *Memory) ResetAccesses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accesses = nil
}

// Notify pushes a notification mask. It blocks while the channel is full.
func (m *Memory) Notify(mask uint32) error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}
	m.notify <- mask
	return nil
}

// Notifications returns the notification channel.
func (m *Memory) Notifications() <-chan uint32 {
	return m.notify
}

// Close disconnects the memory. Later transactions fail with
// ErrDisconnected and the notification channel is closed.
// It is safe to call Close multiple times.
func (m *Memory) Close() error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	close(m.notify)
	return nil
}
