package application

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

// MediaSession tracks the single media item loaded by this client. The
// player state it reports is driven exclusively by inbound MEDIA_STATUS
// messages, never by the commands this client issues -- a PLAY command
// that is accepted by the device still leaves the session's state at
// whatever the last MEDIA_STATUS said until a new one arrives.
type MediaSession struct {
	app *Application

	mu     sync.RWMutex
	id     cast.MediaSessionID
	status cast.MediaStatus
}

func newMediaSession(app *Application, status cast.MediaStatus) *MediaSession {
	return &MediaSession{app: app, id: status.MediaSessionId, status: status}
}

// ID returns the media session id assigned by the device's LOAD response.
func (m *MediaSession) ID() cast.MediaSessionID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

// Status returns the most recently observed MEDIA_STATUS entry for this session.
func (m *MediaSession) Status() cast.MediaStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *MediaSession) applyStatus(status cast.MediaStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// Media returns the client's current media session, or nil if nothing
// has been loaded (or the last load's session was lost).
func (a *Application) Media() *MediaSession {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.media
}

// Receiver returns the client's receiver application session handle.
func (a *Application) Receiver() *ReceiverSession {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.receiver
}

// Load launches the receiver application if needed, then issues LOAD
// with media and blocks for the device's MEDIA_STATUS or one of the
// media channel's terminal error responses (LOAD_CANCELLED, LOAD_FAILED,
// INVALID_REQUEST).
func (a *Application) Load(ctx context.Context, media cast.MediaInformation, currentTime *float64, autoplay bool) (*MediaSession, error) {
	return a.LoadWithTracks(ctx, media, currentTime, autoplay, nil)
}

// LoadWithTracks is Load plus activeTrackIds, for media carrying
// subtitle/caption tracks that should be enabled immediately.
func (a *Application) LoadWithTracks(ctx context.Context, media cast.MediaInformation, currentTime *float64, autoplay bool, activeTrackIds []int) (*MediaSession, error) {
	receiver := a.Receiver()
	if receiver == nil {
		return nil, cast.ErrNoSession
	}
	if err := receiver.Launch(ctx); err != nil {
		return nil, errors.Wrap(err, "castprotocol: launch before LOAD")
	}

	req := cast.NewLoadRequest(receiver.SessionID(), media, currentTime, autoplay).WithActiveTracks(activeTrackIds)
	status, err := a.trackedMediaRequest(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "castprotocol: LOAD")
	}

	entry, ok := status.First()
	if !ok {
		return nil, errors.New("castprotocol: LOAD response carried no media status")
	}

	session := newMediaSession(a, entry)
	a.mu.Lock()
	a.media = session
	a.mu.Unlock()

	a.publish(Event{Kind: EventMediaStatusChanged, Media: &entry})
	return session, nil
}

// Play resumes a paused media session.
func (m *MediaSession) Play(ctx context.Context) error {
	return m.sendCommand(ctx, cast.NewPlayRequest(m.ID()))
}

// Pause pauses the media session.
func (m *MediaSession) Pause(ctx context.Context) error {
	return m.sendCommand(ctx, cast.NewPauseRequest(m.ID()))
}

// Stop ends the media session. On success the Application's current
// media session is cleared.
func (m *MediaSession) Stop(ctx context.Context) error {
	if err := m.sendCommand(ctx, cast.NewStopMediaRequest(m.ID())); err != nil {
		return err
	}
	m.app.clearMediaSession(nil)
	return nil
}

// Seek moves playback to seconds and, if resume is non-empty, forces the
// post-seek playback state.
func (m *MediaSession) Seek(ctx context.Context, seconds float64, resume cast.ResumeState) error {
	return m.sendCommand(ctx, cast.NewSeekRequest(m.ID(), seconds, resume))
}

// GetStatus issues a media-channel GET_STATUS for this session and
// applies the response to the session's cached status.
func (m *MediaSession) GetStatus(ctx context.Context) (cast.MediaStatus, error) {
	id := m.ID()
	status, err := m.app.trackedMediaRequest(ctx, cast.NewMediaGetStatusRequest(&id))
	if err != nil {
		return cast.MediaStatus{}, err
	}
	entry, ok := status.First()
	if !ok {
		return cast.MediaStatus{}, cast.ErrNoMediaSession
	}
	m.applyStatus(entry)
	return entry, nil
}

// SetVolume changes this media session's volume, distinct from the
// receiver-level device volume.
func (m *MediaSession) SetVolume(ctx context.Context, level *float64, muted *bool) error {
	return m.sendCommand(ctx, cast.NewMediaVolumeRequest(m.ID(), level, muted))
}

func (m *MediaSession) sendCommand(ctx context.Context, payload cast.Payload) error {
	status, err := m.app.trackedMediaRequest(ctx, payload)
	if err != nil {
		return err
	}
	if entry, ok := status.First(); ok {
		m.applyStatus(entry)
	}
	return nil
}

func (a *Application) clearMediaSession(_ error) {
	a.mu.Lock()
	a.media = nil
	a.mu.Unlock()
}

// trackedMediaRequest issues a tracked media-channel request and waits
// for its response, honoring ctx cancellation.
func (a *Application) trackedMediaRequest(ctx context.Context, payload cast.Payload) (*cast.MediaStatusResponse, error) {
	id := a.ledger.Next()
	deadline := time.Now().Add(a.requestTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	ch := a.ledger.Register(id, cast.PendingMedia, deadline)
	if err := a.router.SendMedia(payload, id); err != nil {
		a.ledger.Cancel(id)
		return nil, err
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		var status cast.MediaStatusResponse
		if err := decodeJSON(res.Payload, &status); err != nil {
			return nil, errors.Wrap(err, "castprotocol: decode MEDIA_STATUS")
		}
		return &status, nil
	case <-ctx.Done():
		a.ledger.Cancel(id)
		return nil, ctx.Err()
	}
}

// mediaSpontaneousHandler handles untracked MEDIA_STATUS pushes (the
// device reports playback state changes at any time, independent of any
// command this client issued).
func (a *Application) mediaSpontaneousHandler(_ string, payload []byte) {
	var status cast.MediaStatusResponse
	if err := decodeJSON(payload, &status); err != nil {
		a.log.Debug().Err(err).Msg("castprotocol: dropping malformed spontaneous MEDIA_STATUS")
		return
	}
	entry, ok := status.First()
	if !ok {
		return
	}

	media := a.Media()
	if media == nil || media.ID() != entry.MediaSessionId {
		return
	}
	media.applyStatus(entry)
	a.publish(Event{Kind: EventMediaStatusChanged, Media: &entry})

	if entry.PlayerState != cast.PlayerStateIdle {
		return
	}
	switch entry.IdleReason {
	case cast.IdleReasonFinished, cast.IdleReasonCancelled, cast.IdleReasonInterrupted:
		a.clearMediaSession(nil)
	default:
		if entry.Media == nil {
			a.clearMediaSession(nil)
		}
	}
}
