package transport

import "time"

// Transport issues asynchronous read and write transactions against one
// node. Offsets are absolute addresses in the node's register space.
// Implementations never retry; a failed call is terminal for that call.
type Transport interface {
	// Read fills buf with len(buf) bytes read at offset.
	Read(offset uint64, buf []byte, timeout time.Duration) error

	// Write writes buf at offset.
	Write(offset uint64, buf []byte, timeout time.Duration) error
}

// Notifier delivers the notification masks the device pushes when part of
// its register space changed out of band.
type Notifier interface {
	// Notifications returns the channel masks are delivered on. The channel
	// is closed when the notifier is closed.
	Notifications() <-chan uint32

	// Close releases the notifier.
	Close() error
}

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*Memory)(nil)
	_ Notifier  = (*Memory)(nil)
	_ Transport = (*Traced)(nil)
)
