package application_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

func launchAndLoadResponder(recvChan chan *pb.CastMessage, args mock.Arguments) {
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
	case *cast.LoadRequest:
		pushMedia(recvChan, reqID, cast.MediaStatus{
			MediaSessionId: 7,
			PlayerState:    cast.PlayerStatePaused,
		})
	case *cast.MediaSessionRequest:
		state := cast.PlayerStatePlaying
		if p.MediaSessionId == 7 && p.Type == cast.PauseHeader.Type {
			state = cast.PlayerStatePaused
		}
		pushMedia(recvChan, reqID, cast.MediaStatus{
			MediaSessionId: p.MediaSessionId,
			PlayerState:    state,
		})
	case *cast.SeekRequest:
		pushMedia(recvChan, reqID, cast.MediaStatus{
			MediaSessionId: p.MediaSessionId,
			PlayerState:    cast.PlayerStatePlaying,
			CurrentTime:    p.CurrentTime,
		})
	case *cast.MediaGetStatusRequest:
		pushMedia(recvChan, reqID, cast.MediaStatus{
			MediaSessionId: *p.MediaSessionId,
			PlayerState:    cast.PlayerStatePlaying,
		})
	}
}

func TestLoadLaunchesReceiverAndReturnsSession(t *testing.T) {
	assert := require.New(t)
	app, _ := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)
	assert.Equal(cast.MediaSessionID(7), session.ID())
	assert.Equal(cast.PlayerStatePaused, session.Status().PlayerState)
	assert.Same(session, app.Media())
}

func TestLoadWithTracksSetsActiveTrackIds(t *testing.T) {
	assert := require.New(t)

	var gotTracks []int
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
		case *cast.LoadRequest:
			gotTracks = p.ActiveTrackIds
			pushMedia(recvChan, reqID, cast.MediaStatus{MediaSessionId: 9, PlayerState: cast.PlayerStatePlaying})
		}
	})

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	_, err := app.LoadWithTracks(context.Background(), media, nil, true, []int{1})
	assert.NoError(err)
	assert.Equal([]int{1}, gotTracks)
}

func TestPlayPauseStopLifecycle(t *testing.T) {
	assert := require.New(t)
	app, _ := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)

	assert.NoError(session.Play(context.Background()))
	assert.Equal(cast.PlayerStatePlaying, session.Status().PlayerState)

	assert.NoError(session.Pause(context.Background()))
	assert.Equal(cast.PlayerStatePaused, session.Status().PlayerState)

	assert.NoError(session.Stop(context.Background()))
	assert.Nil(app.Media())
}

func TestSeekAppliesReportedCurrentTime(t *testing.T) {
	assert := require.New(t)
	app, _ := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)

	assert.NoError(session.Seek(context.Background(), 42.5, cast.ResumeStatePlaybackStart))
	assert.Equal(42.5, session.Status().CurrentTime)
}

func TestMediaLoadCancelledPropagatesTypedError(t *testing.T) {
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
		case *cast.LoadRequest:
			header := cast.PayloadHeader{Type: "LOAD_CANCELLED"}
			header.SetRequestId(reqID)
			body, _ := json.Marshal(&header)
			pushEnvelope(recvChan, cast.NamespaceMedia, body)
		}
	})

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	_, err := app.Load(context.Background(), media, &current, false)

	var target *cast.LoadCancelledError
	assert.ErrorAs(err, &target)
}

func TestMediaSpontaneousStatusUpdatesMatchingSession(t *testing.T) {
	assert := require.New(t)
	app, recvChan := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)

	pushMedia(recvChan, 0, cast.MediaStatus{MediaSessionId: session.ID(), PlayerState: cast.PlayerStateBuffering})

	assert.Eventually(func() bool {
		return session.Status().PlayerState == cast.PlayerStateBuffering
	}, time.Second, 5*time.Millisecond)
}

func TestMediaSpontaneousIdleFinishedClearsSession(t *testing.T) {
	assert := require.New(t)
	app, recvChan := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)

	pushMedia(recvChan, 0, cast.MediaStatus{
		MediaSessionId: session.ID(),
		PlayerState:    cast.PlayerStateIdle,
		IdleReason:     cast.IdleReasonFinished,
	})

	assert.Eventually(func() bool {
		return app.Media() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestMediaSpontaneousStatusIgnoredForOtherSession(t *testing.T) {
	assert := require.New(t)
	app, recvChan := startedApp(t, launchAndLoadResponder)

	media := cast.MediaInformation{ContentId: "http://example.test/video.mp4", ContentType: "video/mp4"}
	current := 0.0
	session, err := app.Load(context.Background(), media, &current, false)
	assert.NoError(err)

	pushMedia(recvChan, 0, cast.MediaStatus{MediaSessionId: session.ID() + 1, PlayerState: cast.PlayerStateBuffering})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(cast.PlayerStatePaused, session.Status().PlayerState)
}
