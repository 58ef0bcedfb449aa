package transport

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = 0xffffe0000000

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory(testBase, 0x100)

	require.NoError(t, m.Write(testBase+0x10, []byte{1, 2, 3, 4, 5, 6, 7, 8}, time.Second))

	buf := make([]byte, 4)
	require.NoError(t, m.Read(testBase+0x14, buf, time.Second))
	assert.Equal(t, []byte{5, 6, 7, 8}, buf)

	assert.Equal(t, []Access{
		{Op: OpWrite, Offset: testBase + 0x10, Length: 8},
		{Op: OpRead, Offset: testBase + 0x14, Length: 4},
	}, m.Accesses())

	m.ResetAccesses()
	assert.Empty(t, m.Accesses())
}

func TestMemoryAddressErrors(t *testing.T) {
	m := NewMemory(testBase, 0x20)

	tests := []struct {
		name   string
		offset uint64
		length int
		rcode  Rcode
	}{
		{"below base", testBase - 4, 4, RcodeAddressError},
		{"past end", testBase + 0x1c, 8, RcodeAddressError},
		{"unaligned offset", testBase + 2, 4, RcodeTypeError},
		{"unaligned length", testBase, 6, RcodeTypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Read(tt.offset, make([]byte, tt.length), time.Second)
			re, ok := IsRcodeError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.rcode, re.Rcode)
		})
	}
}

func TestMemoryFailNext(t *testing.T) {
	m := NewMemory(0, 0x10)
	m.FailNext(OpWrite, ErrTimeout)

	buf := make([]byte, 4)
	require.NoError(t, m.Read(0, buf, time.Second), "read is not affected")

	err := m.Write(0, []byte{1, 1, 1, 1}, time.Second)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, []byte{0, 0, 0, 0}, m.Load(0, 4), "failed write leaves memory untouched")

	require.NoError(t, m.Write(0, []byte{1, 1, 1, 1}, time.Second), "failure is consumed")
}

func TestMemoryWriteHook(t *testing.T) {
	var seen []uint64
	m := NewMemory(0, 0x10, WithWriteHook(func(m *Memory, offset uint64, data []byte) {
		seen = append(seen, offset)
		m.Store(0x8, []byte{0, 0, 0, 9})
		_ = m.Notify(0x00010000)
	}))

	require.NoError(t, m.Write(0x0, []byte{0, 0, 0, 1}, time.Second))
	assert.Equal(t, []uint64{0}, seen)
	assert.Equal(t, []byte{0, 0, 0, 9}, m.Load(0x8, 4))

	select {
	case mask := <-m.Notifications():
		assert.Equal(t, uint32(0x00010000), mask)
	case <-time.After(time.Second):
		t.Fatal("no notification delivered")
	}
}

func TestMemoryClose(t *testing.T) {
	m := NewMemory(0, 0x10)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Read(0, make([]byte, 4), time.Second), ErrDisconnected)
	assert.ErrorIs(t, m.Notify(1), ErrClosed)

	_, ok := <-m.Notifications()
	assert.False(t, ok, "channel closed")
}

func TestRcodeErrorIs(t *testing.T) {
	cancelled := &RcodeError{Op: "read", Offset: 0x10, Rcode: RcodeCancelled}
	generation := &RcodeError{Op: "write", Offset: 0x10, Rcode: RcodeGeneration}
	busy := &RcodeError{Op: "read", Offset: 0x10, Rcode: RcodeBusy}

	assert.ErrorIs(t, cancelled, ErrTimeout)
	assert.ErrorIs(t, generation, ErrBusReset)
	assert.False(t, errors.Is(busy, ErrTimeout))
	assert.False(t, errors.Is(busy, ErrBusReset))
	assert.Contains(t, busy.Error(), "busy")
	assert.Equal(t, "rcode(0x42)", Rcode(0x42).String())

	wrapped := errors.Join(errors.New("ctx"), cancelled)
	re, ok := IsRcodeError(wrapped)
	require.True(t, ok)
	assert.Equal(t, RcodeCancelled, re.Rcode)
}

func nativeBytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	return b
}

func TestSplitHwdepEvents(t *testing.T) {
	buf := make([]byte, 20)
	copy(buf[0:], nativeBytes(sndFirewireEventDiceNotification))
	copy(buf[4:], nativeBytes(0x00080000))
	copy(buf[8:], nativeBytes(sndFirewireEventLockStatus))
	copy(buf[12:], nativeBytes(1))

	events := splitHwdepEvents(buf)
	require.Len(t, events, 2, "trailing partial event dropped")
	assert.Equal(t, hwdepEvent{kind: sndFirewireEventDiceNotification, value: 0x00080000}, events[0])
	assert.Equal(t, hwdepEvent{kind: sndFirewireEventLockStatus, value: 1}, events[1])
}
