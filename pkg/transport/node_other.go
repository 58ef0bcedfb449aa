//go:build !linux

package transport

import (
	"errors"
	"time"
)

// ErrUnsupportedPlatform is returned by device backed transports on
// platforms without the Linux firewire subsystem.
var ErrUnsupportedPlatform = errors.New("transport: firewire devices require linux")

// DefaultMaxPayload bounds a single block request.
const DefaultMaxPayload = 512

// Node is unavailable on this platform.
type Node struct{}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithMaxPayload sets the largest block request issued by the node.
func WithMaxPayload(int) NodeOption {
	return func(*Node) {}
}

// OpenNode always fails on this platform.
func OpenNode(string, ...NodeOption) (*Node, error) {
	return nil, ErrUnsupportedPlatform
}

// Path returns an empty string.
func (n *Node) Path() string { return "" }

// Read always fails on this platform.
func (n *Node) Read(uint64, []byte, time.Duration) error { return ErrUnsupportedPlatform }

// Write always fails on this platform.
func (n *Node) Write(uint64, []byte, time.Duration) error { return ErrUnsupportedPlatform }

// Close is a no-op.
func (n *Node) Close() error { return nil }

// HwdepNotifier is unavailable on this platform.
type HwdepNotifier struct{}

// OpenHwdep always fails on this platform.
func OpenHwdep(string) (*HwdepNotifier, error) {
	return nil, ErrUnsupportedPlatform
}

// Notifications returns nil.
func (h *HwdepNotifier) Notifications() <-chan uint32 { return nil }

// LockStatus returns nil.
func (h *HwdepNotifier) LockStatus() <-chan bool { return nil }

// Err returns nil.
func (h *HwdepNotifier) Err() error { return nil }

// Close is a no-op.
func (h *HwdepNotifier) Close() error { return nil }
