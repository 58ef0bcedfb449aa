package segment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/log"
	"github.com/fwaudio/fwctl-go/pkg/transport"
	"github.com/fwaudio/fwctl-go/pkg/transport/mocks"
)

const (
	testBase    = 0xffffe0a01000
	testTimeout = 20 * time.Millisecond
)

func testRegistry() (*Registry, *Segment[*pair], *Segment[*pair], *Segment[*pair], *Segment[*pair]) {
	shared1 := New(Descriptor{Name: "shared-1", Offset: 0x00, Size: 8, NotifyFlag: 0x00010000}, &pair{})
	shared2 := New(Descriptor{Name: "shared-2", Offset: 0x08, Size: 8, NotifyFlag: 0x00010000}, &pair{})
	other := New(Descriptor{Name: "other", Offset: 0x10, Size: 8, NotifyFlag: 0x00020000}, &pair{})
	meter := New(Descriptor{Name: "meter", Offset: 0x18, Size: 8}, &pair{})
	return MustRegistry("test", shared1, shared2, other, meter), shared1, shared2, other, meter
}

func TestReadSegmentIssuesOneRead(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Read(uint64(testBase+0x08), mock.Anything, testTimeout).
		Run(func(offset uint64, buf []byte, timeout time.Duration) {
			copy(buf, []byte{0, 0, 0, 42, 0, 0, 0, 1})
		}).Return(nil).Once()

	_, _, seg, _, _ := testRegistry()
	m := NewMediator(tr, WithBase(testBase))
	require.NoError(t, m.ReadSegment(seg, testTimeout))

	assert.Equal(t, uint32(42), seg.Data.A)
	assert.True(t, seg.Data.B)
}

func TestReadSegmentReturnsTransportError(t *testing.T) {
	for _, want := range []error{transport.ErrTimeout, transport.ErrBusReset, &transport.RcodeError{Op: "read", Rcode: transport.RcodeBusy}} {
		tr := mocks.NewMockTransport(t)
		tr.EXPECT().Read(mock.Anything, mock.Anything, mock.Anything).Return(want).Once()

		seg := New(Descriptor{Name: "a", Size: 8}, &pair{A: 7})
		err := NewMediator(tr).ReadSegment(seg, testTimeout)

		require.Error(t, err)
		assert.True(t, errors.Is(err, want), "got %v", err)
		var op *OpError
		require.ErrorAs(t, err, &op)
		assert.Equal(t, "read", op.Op)
		assert.Equal(t, uint32(7), seg.Data.A, "data untouched on failure")
	}
}

func TestNotificationRouting(t *testing.T) {
	reg, shared1, shared2, other, meter := testRegistry()

	mem := transport.NewMemory(testBase, 0x20)
	mem.Store(testBase+0x00, []byte{0, 0, 0, 1, 0, 0, 0, 0})
	mem.Store(testBase+0x08, []byte{0, 0, 0, 2, 0, 0, 0, 0})
	mem.Store(testBase+0x10, []byte{0, 0, 0, 3, 0, 0, 0, 0})
	mem.Store(testBase+0x18, []byte{0, 0, 0, 4, 0, 0, 0, 0})

	m := NewMediator(mem, WithBase(testBase))
	names, err := m.DispatchNotification(reg, 0x00010000, testTimeout)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared-1", "shared-2"}, names)

	assert.Equal(t, []transport.Access{
		{Op: transport.OpRead, Offset: testBase + 0x00, Length: 8},
		{Op: transport.OpRead, Offset: testBase + 0x08, Length: 8},
	}, mem.Accesses())
	assert.Equal(t, uint32(1), shared1.Data.A)
	assert.Equal(t, uint32(2), shared2.Data.A)
	assert.Equal(t, uint32(0), other.Data.A, "different flag not re-read")
	assert.Equal(t, uint32(0), meter.Data.A, "unflagged segment not re-read")

	mem.ResetAccesses()
	names, err = m.DispatchNotification(reg, 0x00020000, testTimeout)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, names)
	assert.Len(t, mem.Accesses(), 1)
	assert.Equal(t, uint32(3), other.Data.A)
}

func TestNotificationRoutingWithMock(t *testing.T) {
	reg, _, _, _, _ := testRegistry()

	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Read(uint64(0x10), mock.Anything, testTimeout).Return(nil).Once()

	names, err := NewMediator(tr).DispatchNotification(reg, 0x00020000, testTimeout)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, names)
	// Any read of another segment would fail the mock expectations.
}

func TestNotificationAbortsOnFailure(t *testing.T) {
	reg, _, shared2, _, _ := testRegistry()
	mem := transport.NewMemory(0, 0x20)
	mem.Store(0x08, []byte{0, 0, 0, 9, 0, 0, 0, 0})
	mem.FailNext(transport.OpRead, transport.ErrTimeout)

	_, err := NewMediator(mem).DispatchNotification(reg, 0x00010000, testTimeout)
	assert.ErrorIs(t, err, transport.ErrTimeout)
	assert.Len(t, mem.Accesses(), 1, "second segment not attempted")
	assert.Equal(t, uint32(0), shared2.Data.A)
}

func TestNotificationTraced(t *testing.T) {
	reg, _, _, _, _ := testRegistry()
	rec := &recordingTracer{}
	m := NewMediator(transport.NewMemory(0, 0x20), WithTracer(rec, "s-1"))

	_, err := m.DispatchNotification(reg, 0x00030000, testTimeout)
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, log.CategoryNotification, ev.Category)
	assert.Equal(t, "test", ev.Model)
	assert.Equal(t, uint32(0x00030000), ev.Notification.Mask)
	assert.Equal(t, []string{"shared-1", "shared-2", "other"}, ev.Notification.Segments)
}

func TestWriteSegment(t *testing.T) {
	mem := transport.NewMemory(testBase, 0x20)
	mem.Store(testBase+0x08, []byte{0, 0, 0, 1, 0, 0, 0, 0})
	seg := New(Descriptor{Name: "a", Offset: 0x08, Size: 12}, &pair{})
	mem.Store(testBase+0x10, []byte{0xca, 0xfe, 0xba, 0xbe})

	m := NewMediator(mem, WithBase(testBase))
	require.NoError(t, m.ReadSegment(seg, testTimeout))

	seg.Data.B = true
	require.NoError(t, m.WriteSegment(seg, testTimeout))

	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 1, 0xca, 0xfe, 0xba, 0xbe}, mem.Load(testBase+0x08, 12))
	assert.Equal(t, mem.Load(testBase+0x08, 12), seg.Raw(), "written image cached")

	accesses := mem.Accesses()
	require.Len(t, accesses, 2)
	assert.Equal(t, transport.Access{Op: transport.OpWrite, Offset: testBase + 0x08, Length: 12}, accesses[1])
}

func TestWriteSegmentFailureKeepsCache(t *testing.T) {
	mem := transport.NewMemory(0, 0x10)
	seg := New(Descriptor{Name: "a", Size: 8}, &pair{})
	m := NewMediator(mem)
	require.NoError(t, m.ReadSegment(seg, testTimeout))

	mem.FailNext(transport.OpWrite, transport.ErrBusReset)
	seg.Data.A = 99
	err := m.WriteSegment(seg, testTimeout)
	assert.ErrorIs(t, err, transport.ErrBusReset)

	assert.Equal(t, uint32(99), seg.Data.A, "host cache is ahead of the device")
	assert.Equal(t, make([]byte, 8), seg.Raw(), "cached image is the last known device image")

	require.NoError(t, m.ReadSegment(seg, testTimeout))
	assert.Equal(t, uint32(0), seg.Data.A, "re-read restores device state")
}

func TestUpdateSegmentWritesChangedQuadlets(t *testing.T) {
	mem := transport.NewMemory(0, 0x20)
	seg := New(Descriptor{Name: "a", Offset: 0x10, Size: 8}, &pair{})
	m := NewMediator(mem)
	require.NoError(t, m.ReadSegment(seg, testTimeout))
	mem.ResetAccesses()

	seg.Data.B = true
	require.NoError(t, m.UpdateSegment(seg, testTimeout))
	assert.Equal(t, []transport.Access{{Op: transport.OpWrite, Offset: 0x14, Length: 4}}, mem.Accesses())
	assert.Equal(t, []byte{0, 0, 0, 1}, mem.Load(0x14, 4))

	mem.ResetAccesses()
	require.NoError(t, m.UpdateSegment(seg, testTimeout))
	assert.Empty(t, mem.Accesses(), "unchanged encoding writes nothing")
}

func TestUpdateSegmentPartialFailureCommitsWrittenQuadlets(t *testing.T) {
	failSecond := false
	mem := transport.NewMemory(0, 0x10, transport.WithWriteHook(func(m *transport.Memory, _ uint64, _ []byte) {
		if failSecond {
			failSecond = false
			m.FailNext(transport.OpWrite, transport.ErrTimeout)
		}
	}))
	seg := New(Descriptor{Name: "a", Size: 8}, &pair{})
	m := NewMediator(mem)
	require.NoError(t, m.ReadSegment(seg, testTimeout))

	failSecond = true
	seg.Data.A = 7
	seg.Data.B = true
	err := m.UpdateSegment(seg, testTimeout)
	assert.ErrorIs(t, err, transport.ErrTimeout)

	device := mem.Load(0, 8)
	assert.Equal(t, []byte{0, 0, 0, 7, 0, 0, 0, 0}, device)
	assert.Equal(t, device, seg.Raw(), "cache holds what reached the device")

	// Restoring the old value must write the quadlet that did land.
	mem.ResetAccesses()
	seg.Data.A = 0
	seg.Data.B = false
	require.NoError(t, m.UpdateSegment(seg, testTimeout))
	assert.Equal(t, []transport.Access{{Op: transport.OpWrite, Offset: 0x00, Length: 4}}, mem.Accesses())
	assert.Equal(t, make([]byte, 8), mem.Load(0, 8))
}

func TestReadAll(t *testing.T) {
	reg, _, _, _, meter := testRegistry()
	mem := transport.NewMemory(0, 0x20)
	mem.Store(0x18, []byte{0, 0, 0, 4})

	require.NoError(t, NewMediator(mem).ReadAll(reg, testTimeout))
	assert.Len(t, mem.Accesses(), 4)
	assert.Equal(t, uint32(4), meter.Data.A)
}

func TestMediatorBase(t *testing.T) {
	assert.Equal(t, uint64(testBase), NewMediator(nil, WithBase(testBase)).Base())
}

type recordingTracer struct {
	events []log.Event
}

func (r *recordingTracer) Log(e log.Event) {
	r.events = append(r.events, e)
}
