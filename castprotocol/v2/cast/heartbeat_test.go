package cast_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast/mocks"
)

func TestHeartbeatPingLoopSendsPing(t *testing.T) {
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	pings := make(chan struct{}, 8)
	conn.On("Send", 0, mock.AnythingOfType("*cast.HeartbeatMessage"), cast.DefaultSenderID, cast.DefaultReceiverID, cast.NamespaceHeartbeat).
		Run(func(_ mock.Arguments) { pings <- struct{}{} }).
		Return(nil)

	hb := cast.NewHeartbeat(router, zerolog.Nop(), time.Now, func() {}).WithInterval(10 * time.Millisecond)
	hb.Start()
	defer hb.Stop()

	select {
	case <-pings:
	case <-time.After(time.Second):
		t.Fatal("expected at least one PING to be sent")
	}
}

func TestHeartbeatHandlePingRespondsPong(t *testing.T) {
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	pongs := make(chan struct{}, 1)
	conn.On("Send", 0, mock.AnythingOfType("*cast.HeartbeatMessage"), cast.DefaultSenderID, cast.DefaultReceiverID, cast.NamespaceHeartbeat).
		Run(func(_ mock.Arguments) { pongs <- struct{}{} }).
		Return(nil)

	hb := cast.NewHeartbeat(router, zerolog.Nop(), time.Now, func() {})
	hb.HandleHeartbeat(cast.NamespaceHeartbeat, []byte(`{"type":"PING"}`))

	select {
	case <-pongs:
	case <-time.After(time.Second):
		t.Fatal("expected PONG to be sent in response to PING")
	}
}

func TestHeartbeatHandlePongIsNoOp(t *testing.T) {
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	hb := cast.NewHeartbeat(router, zerolog.Nop(), time.Now, func() {})
	hb.HandleHeartbeat(cast.NamespaceHeartbeat, []byte(`{"type":"PONG"}`))
	conn.AssertNotCalled(t, "Send")
}

func TestHeartbeatWatchdogFiresOnSilence(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	conn.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	var dead atomic.Bool
	frozenPast := time.Now().Add(-time.Hour)
	hb := cast.NewHeartbeat(router, zerolog.Nop(), func() time.Time { return frozenPast }, func() { dead.Store(true) }).
		WithInterval(10 * time.Millisecond)
	hb.Start()
	defer hb.Stop()

	assert.Eventually(func() bool { return dead.Load() }, time.Second, 5*time.Millisecond)
}

func TestHeartbeatWatchdogDoesNotFireWhileAlive(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	conn.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	var dead atomic.Bool
	hb := cast.NewHeartbeat(router, zerolog.Nop(), time.Now, func() { dead.Store(true) }).
		WithInterval(10 * time.Millisecond)
	hb.Start()
	defer hb.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.False(dead.Load())
}
