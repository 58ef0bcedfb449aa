package transport

import "encoding/binary"

// ALSA firewire hwdep events (include/uapi/sound/firewire.h).
const (
	sndFirewireEventLockStatus       = 0x000010cc
	sndFirewireEventDiceNotification = 0xd1ce004e
)

type hwdepEvent struct {
	kind  uint32
	value uint32
}

// splitHwdepEvents decodes a read buffer of 8-byte type/value events.
// A trailing partial event is dropped.
func splitHwdepEvents(buf []byte) []hwdepEvent {
	var events []hwdepEvent
	for len(buf) >= 8 {
		events = append(events, hwdepEvent{
			kind:  binary.NativeEndian.Uint32(buf[0:4]),
			value: binary.NativeEndian.Uint32(buf[4:8]),
		})
		buf = buf[8:]
	}
	return events
}
