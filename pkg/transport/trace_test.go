package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/log"
	"github.com/fwaudio/fwctl-go/pkg/transport/mocks"
)

type recordingLogger struct {
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) {
	r.events = append(r.events, e)
}

func TestTracedRecordsTransactions(t *testing.T) {
	m := NewMemory(0, 0x40)
	m.Store(0x4, []byte{0, 0, 0, 7})
	rec := &recordingLogger{}
	tr := WithTrace(m, rec, "session-1", "klive")

	buf := make([]byte, 4)
	require.NoError(t, tr.Read(0x4, buf, time.Second))
	require.NoError(t, tr.Write(0x8, []byte{0, 0, 0, 1}, time.Second))

	require.Len(t, rec.events, 2)
	read := rec.events[0]
	assert.Equal(t, "session-1", read.SessionID)
	assert.Equal(t, "klive", read.Model)
	assert.Equal(t, log.CategoryTransaction, read.Category)
	require.NotNil(t, read.Transaction)
	assert.Equal(t, log.TxRead, read.Transaction.Op)
	assert.Equal(t, uint64(0x4), read.Transaction.Offset)
	assert.Equal(t, []byte{0, 0, 0, 7}, read.Transaction.Data)

	assert.Equal(t, log.TxWrite, rec.events[1].Transaction.Op)
}

func TestTracedForwardsErrors(t *testing.T) {
	next := mocks.NewMockTransport(t)
	next.EXPECT().Read(uint64(0x10), mock.Anything, 20*time.Millisecond).Return(ErrTimeout).Once()

	rec := &recordingLogger{}
	tr := WithTrace(next, rec, "s", "")

	err := tr.Read(0x10, make([]byte, 8), 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)

	require.Len(t, rec.events, 1)
	tx := rec.events[0].Transaction
	assert.Equal(t, ErrTimeout.Error(), tx.Err)
	assert.Nil(t, tx.Data, "failed read carries no payload")
	assert.Equal(t, 8, tx.Length)
}

func TestTracedNilLogger(t *testing.T) {
	tr := WithTrace(NewMemory(0, 8), nil, "", "")
	assert.NoError(t, tr.Read(0, make([]byte, 4), time.Second))
}
