package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/application"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

func TestReceiverLaunchSuccess(t *testing.T) {
	assert := require.New(t)

	app, recvChan := startedApp(t, func(recvChan chan *pb.CastMessage, args mock.Arguments) {
		reqID := args.Int(0)
		if reqID == 0 {
			return
		}
		switch p := args.Get(1).(type) {
		case *cast.PayloadHeader:
			if p.Type == "GET_STATUS" {
				pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
			}
		case *cast.LaunchRequest:
			pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{
				Applications: []cast.Application{
					{AppId: testAppID, SessionId: "session-1", TransportId: "transport-1"},
				},
			})
		}
	})

	assert.False(app.Receiver().Launched())

	assert.NoError(app.Receiver().Launch(context.Background()))
	assert.True(app.Receiver().Launched())
	assert.Equal(cast.SessionID("session-1"), app.Receiver().SessionID())

	// Launching again while already launched is a no-op success.
	assert.NoError(app.Receiver().Launch(context.Background()))

	_ = recvChan
}

func TestReceiverLaunchFailsWhenAppNeverAppears(t *testing.T) {
	assert := require.New(t)

	app, _ := startedApp(t, func(recvChan chan *pb.CastMessage, args mock.Arguments) {
		reqID := args.Int(0)
		if reqID == 0 {
			return
		}
		switch p := args.Get(1).(type) {
		case *cast.PayloadHeader:
			if p.Type == "GET_STATUS" {
				pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
			}
		case *cast.LaunchRequest:
			pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
		}
	})

	err := app.Receiver().Launch(context.Background())
	assert.ErrorIs(err, cast.ErrLaunchFailed)
	assert.False(app.Receiver().Launched())
}

func TestReceiverStopClearsSession(t *testing.T) {
	assert := require.New(t)

	app, _ := startedApp(t, func(recvChan chan *pb.CastMessage, args mock.Arguments) {
		reqID := args.Int(0)
		if reqID == 0 {
			return
		}
		switch p := args.Get(1).(type) {
		case *cast.PayloadHeader:
			if p.Type == "GET_STATUS" {
				pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
			}
		case *cast.LaunchRequest:
			pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{
				Applications: []cast.Application{
					{AppId: testAppID, SessionId: "session-1", TransportId: "transport-1"},
				},
			})
		case *cast.StopSessionRequest:
			pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
		}
	})

	assert.NoError(app.Receiver().Launch(context.Background()))
	assert.NoError(app.Receiver().Stop(context.Background()))
	assert.False(app.Receiver().Launched())
	assert.Equal(cast.SessionID(""), app.Receiver().SessionID())
}

func TestReceiverSetVolumeIsUntracked(t *testing.T) {
	assert := require.New(t)

	var gotRequestID int
	var gotType string
	app, _ := startedApp(t, func(recvChan chan *pb.CastMessage, args mock.Arguments) {
		reqID := args.Int(0)
		switch p := args.Get(1).(type) {
		case *cast.PayloadHeader:
			if reqID != 0 && p.Type == "GET_STATUS" {
				pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
			}
		case *cast.SetVolumeRequest:
			gotRequestID = reqID
			gotType = p.Type
			// No RECEIVER_STATUS is pushed back: the device does not
			// correlate a reply to SET_VOLUME.
		}
	})

	level := 0.5
	err := app.Receiver().SetVolume(context.Background(), &level, nil)
	assert.NoError(err)
	assert.Equal(0, gotRequestID)
	assert.Equal("SET_VOLUME", gotType)
}

func TestSpontaneousReceiverStatusLosesSessionPublishesEvent(t *testing.T) {
	assert := require.New(t)

	app, recvChan := startedApp(t, func(recvChan chan *pb.CastMessage, args mock.Arguments) {
		reqID := args.Int(0)
		if reqID == 0 {
			return
		}
		switch p := args.Get(1).(type) {
		case *cast.PayloadHeader:
			if p.Type == "GET_STATUS" {
				pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{})
			}
		case *cast.LaunchRequest:
			pushReceiver(recvChan, reqID, cast.ReceiverStatusPayload{
				Applications: []cast.Application{
					{AppId: testAppID, SessionId: "session-1", TransportId: "transport-1"},
				},
			})
		}
	})

	assert.NoError(app.Receiver().Launch(context.Background()))

	// Device reports our application gone, unprompted.
	pushReceiver(recvChan, 0, cast.ReceiverStatusPayload{})

	evt := waitForEventKind(t, app, application.EventSessionLost)
	assert.NotNil(evt)
	assert.Equal(cast.SessionID(""), app.Receiver().SessionID())
}
