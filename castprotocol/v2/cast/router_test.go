package cast_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast/mocks"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

func envelope(ns, payload string) *pb.CastMessage {
	protocolVersion := pb.CastMessage_CASTV2_1_0
	payloadType := pb.CastMessage_STRING
	source := "receiver-0"
	dest := "sender-0"
	return &pb.CastMessage{
		ProtocolVersion: &protocolVersion,
		SourceId:        &source,
		DestinationId:   &dest,
		Namespace:       &ns,
		PayloadType:     &payloadType,
		PayloadUtf8:     &payload,
	}
}

func TestRouterDispatchSpontaneous(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	var got string
	router.OnSpontaneous(cast.NamespaceHeartbeat, func(_ string, payload []byte) {
		got = string(payload)
	})

	router.Dispatch(envelope(cast.NamespaceHeartbeat, `{"type":"PING"}`))
	assert.Equal(`{"type":"PING"}`, got)
}

func TestRouterDispatchCorrelatedResolvesLedger(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	ledger := cast.NewLedger()
	router := cast.NewRouter(conn, ledger, zerolog.Nop())

	id := ledger.Next()
	ch := ledger.Register(id, cast.PendingReceiver, time.Now().Add(time.Minute))

	body := fmt.Sprintf(`{"type":"RECEIVER_STATUS","requestId":%d}`, id)
	router.Dispatch(envelope(cast.NamespaceReceiver, body))

	res := <-ch
	assert.NoError(res.Err)
	assert.Equal(body, string(res.Payload))
}

func TestRouterDispatchCorrelatedUnknownIDDropped(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	ledger := cast.NewLedger()
	router := cast.NewRouter(conn, ledger, zerolog.Nop())

	router.Dispatch(envelope(cast.NamespaceReceiver, `{"type":"RECEIVER_STATUS","requestId":999}`))
	assert.Equal(0, ledger.Len())
}

func TestRouterDispatchMediaErrorMapping(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	ledger := cast.NewLedger()
	router := cast.NewRouter(conn, ledger, zerolog.Nop())

	tt := []string{"LOAD_CANCELLED", "LOAD_FAILED", "INVALID_PLAYER_STATE", "INVALID_REQUEST"}

	for _, msgType := range tt {
		t.Run(msgType, func(t *testing.T) {
			id := ledger.Next()
			ch := ledger.Register(id, cast.PendingMedia, time.Now().Add(time.Minute))
			body := fmt.Sprintf(`{"type":%q,"requestId":%d}`, msgType, id)
			router.Dispatch(envelope(cast.NamespaceMedia, body))
			res := <-ch
			assert.Error(res.Err)
		})
	}
}

func TestRouterDispatchMediaStatusHasNoError(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	ledger := cast.NewLedger()
	router := cast.NewRouter(conn, ledger, zerolog.Nop())

	id := ledger.Next()
	ch := ledger.Register(id, cast.PendingMedia, time.Now().Add(time.Minute))
	body := fmt.Sprintf(`{"type":"MEDIA_STATUS","requestId":%d}`, id)
	router.Dispatch(envelope(cast.NamespaceMedia, body))

	res := <-ch
	assert.NoError(res.Err)
}

func TestRouterSendMediaWithoutTransportFails(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	status := cast.GetStatusHeader
	err := router.SendMedia(&status, cast.RequestID(1))
	assert.ErrorIs(err, cast.ErrNoSession)
}

func TestRouterSendGetStatusStampsRequestID(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	conn.On("Send", 7, mock.AnythingOfType("*cast.PayloadHeader"), cast.DefaultSenderID, cast.DefaultReceiverID, cast.NamespaceReceiver).
		Return(nil)

	assert.NoError(router.SendGetStatus(cast.RequestID(7)))
	conn.AssertExpectations(t)
}

func TestRouterSendDeviceConnectUsesRequestIDZero(t *testing.T) {
	assert := require.New(t)
	conn := new(mocks.Conn)
	router := cast.NewRouter(conn, cast.NewLedger(), zerolog.Nop())

	conn.On("Send", 0, mock.AnythingOfType("*cast.PayloadHeader"), cast.DefaultSenderID, cast.DefaultReceiverID, cast.NamespaceConnection).
		Return(nil)

	assert.NoError(router.SendDeviceConnect())
	conn.AssertExpectations(t)
}
