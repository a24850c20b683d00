package application_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/application"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	mockCast "go2tv.app/go2tv/v2/castprotocol/v2/cast/mocks"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

const testAppID = "CC1AD845"

// pushReceiver writes a RECEIVER_STATUS envelope carrying requestID into recvChan.
func pushReceiver(recvChan chan *pb.CastMessage, requestID int, status cast.ReceiverStatusPayload) {
	header := cast.GetStatusHeader
	header.SetRequestId(requestID)
	body, err := json.Marshal(&cast.ReceiverStatusResponse{PayloadHeader: header, Status: status})
	if err != nil {
		panic(err)
	}
	pushEnvelope(recvChan, cast.NamespaceReceiver, body)
}

// pushMedia writes a MEDIA_STATUS envelope carrying requestID into recvChan.
func pushMedia(recvChan chan *pb.CastMessage, requestID int, entries ...cast.MediaStatus) {
	header := cast.PayloadHeader{Type: "MEDIA_STATUS"}
	header.SetRequestId(requestID)
	body, err := json.Marshal(&cast.MediaStatusResponse{PayloadHeader: header, Status: entries})
	if err != nil {
		panic(err)
	}
	pushEnvelope(recvChan, cast.NamespaceMedia, body)
}

// pushEnvelope writes body into recvChan as a STRING envelope on namespace
// ns; the router drops envelopes whose namespace is not one of the four
// known channels.
func pushEnvelope(recvChan chan *pb.CastMessage, ns string, body []byte) {
	payloadString := string(body)
	protocolVersion := pb.CastMessage_CASTV2_1_0
	payloadType := pb.CastMessage_STRING
	recvChan <- &pb.CastMessage{
		ProtocolVersion: &protocolVersion,
		Namespace:       &ns,
		PayloadType:     &payloadType,
		PayloadUtf8:     &payloadString,
		PayloadBinary:   body,
	}
}

// startedApp brings an Application up through Start() against a mock Conn
// whose Send handler is supplied by the caller, so each test can script
// the responses appropriate to the commands it exercises beyond the
// initial CONNECT/GET_STATUS handshake.
func startedApp(t *testing.T, onSend func(recvChan chan *pb.CastMessage, args mock.Arguments)) (*application.Application, chan *pb.CastMessage) {
	t.Helper()
	assertions := require.New(t)

	recvChan := make(chan *pb.CastMessage, 16)
	conn := &mockCast.Conn{}
	conn.On("MsgChan").Return(recvChan)
	conn.On("Start", "foo.bar", 42).Return(nil)
	conn.On("Close").Return(nil)
	conn.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			if onSend != nil {
				onSend(recvChan, args)
			}
		}).Return(nil)

	app := application.NewApplication(application.WithConnection(conn), application.WithAppID(testAppID))
	assertions.NoError(app.Start("foo.bar", 42))
	return app, recvChan
}

// waitForEventKind blocks until app publishes an event of the given kind,
// or fails the test after one second. Other event kinds are discarded.
func waitForEventKind(t *testing.T, app *application.Application, kind application.EventKind) *application.Event {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case evt := <-app.Events():
			if evt.Kind == kind {
				return &evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %v", kind)
			return nil
		}
	}
}
