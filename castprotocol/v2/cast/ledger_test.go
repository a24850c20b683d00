package cast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

func TestLedgerNextNeverReturnsZero(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()
	for i := 0; i < 100; i++ {
		assert.NotZero(l.Next())
	}
}

func TestLedgerRegisterResolve(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()

	id := l.Next()
	ch := l.Register(id, cast.PendingReceiver, time.Now().Add(time.Minute))
	assert.Equal(1, l.Len())

	ok := l.Resolve(id, cast.Result{Payload: []byte(`{"type":"RECEIVER_STATUS"}`)})
	assert.True(ok)

	res := <-ch
	assert.NoError(res.Err)
	assert.Equal(`{"type":"RECEIVER_STATUS"}`, string(res.Payload))
	assert.Equal(0, l.Len())
}

func TestLedgerResolveUnknownID(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()
	assert.False(l.Resolve(cast.RequestID(999), cast.Result{}))
}

func TestLedgerCancel(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()

	id := l.Next()
	ch := l.Register(id, cast.PendingMedia, time.Now().Add(time.Minute))
	l.Cancel(id)

	res := <-ch
	assert.ErrorIs(res.Err, cast.ErrCancelled)
	assert.Equal(0, l.Len())

	// A response that arrives after cancellation finds no entry.
	assert.False(l.Resolve(id, cast.Result{}))
}

func TestLedgerSweepTimeouts(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()

	expired := l.Next()
	chExpired := l.Register(expired, cast.PendingReceiver, time.Now().Add(-time.Second))

	alive := l.Next()
	chAlive := l.Register(alive, cast.PendingReceiver, time.Now().Add(time.Minute))

	l.SweepTimeouts(time.Now())

	res := <-chExpired
	assert.ErrorIs(res.Err, cast.ErrTimeout)
	assert.Equal(1, l.Len())

	select {
	case <-chAlive:
		t.Fatal("alive entry should not have been resolved")
	default:
	}
}

func TestLedgerDrainDisconnected(t *testing.T) {
	assert := require.New(t)
	l := cast.NewLedger()

	id1 := l.Next()
	ch1 := l.Register(id1, cast.PendingReceiver, time.Now().Add(time.Minute))
	id2 := l.Next()
	ch2 := l.Register(id2, cast.PendingMedia, time.Now().Add(time.Minute))

	l.DrainDisconnected()

	for _, ch := range []<-chan cast.Result{ch1, ch2} {
		res := <-ch
		assert.ErrorIs(res.Err, cast.ErrDisconnected)
	}
	assert.Equal(0, l.Len())
}
