//go:build linux

package transport

import (
	"fmt"
	"os"
	"sync"
)

// HwdepNotifier reads DICE notification events from an ALSA hwdep device
// and delivers their masks. It owns one reader goroutine.
type HwdepNotifier struct {
	file   *os.File
	ch     chan uint32
	locked chan bool
	done   chan struct{}
	once   sync.Once
	err    error
	mu     sync.Mutex
}

// OpenHwdep opens the hwdep device at path and starts reading events.
func OpenHwdep(path string) (*HwdepNotifier, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	h := &HwdepNotifier{
		file:   f,
		ch:     make(chan uint32, 16),
		locked: make(chan bool, 1),
		done:   make(chan struct{}),
	}
	go h.readLoop()
	return h, nil
}

func (h *HwdepNotifier) readLoop() {
	defer close(h.ch)

	buf := make([]byte, 64)
	for {
		n, err := h.file.Read(buf)
		if err != nil {
			select {
			case <-h.done:
			default:
				h.mu.Lock()
				h.err = err
				h.mu.Unlock()
			}
			return
		}
		for _, ev := range splitHwdepEvents(buf[:n]) {
			switch ev.kind {
			case sndFirewireEventDiceNotification:
				select {
				case h.ch <- ev.value:
				case <-h.done:
					return
				}
			case sndFirewireEventLockStatus:
				select {
				case h.locked <- ev.value != 0:
				default:
				}
			}
		}
	}
}

// Notifications returns the notification mask channel.
func (h *HwdepNotifier) Notifications() <-chan uint32 {
	return h.ch
}

// LockStatus delivers the most recent stream lock status change.
func (h *HwdepNotifier) LockStatus() <-chan bool {
	return h.locked
}

// Err returns the error that stopped the reader, if any.
func (h *HwdepNotifier) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Close stops the reader and closes the device.
func (h *HwdepNotifier) Close() error {
	var err error
	h.once.Do(func() {
		close(h.done)
		err = h.file.Close()
	})
	return err
}

// Compile-time interface satisfaction check.
var _ Notifier = (*HwdepNotifier)(nil)
