package application

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

// ReceiverStatus is the device's reported application/volume state.
type ReceiverStatus = cast.ReceiverStatusPayload

// ReceiverSession tracks the single receiver application this client has
// launched, if any. A device can run other applications (cast senders on
// other phones, the idle screen) that this client never sees reflected
// here beyond the raw Status snapshot.
type ReceiverSession struct {
	app *Application

	mu          sync.RWMutex
	status      ReceiverStatus
	sessionID   cast.SessionID
	transportID cast.TransportID
	launched    bool
}

func newReceiverSession(app *Application, status *cast.ReceiverStatusResponse) *ReceiverSession {
	r := &ReceiverSession{app: app}
	r.applyStatus(status.Status)
	return r
}

func (r *ReceiverSession) applyStatus(status ReceiverStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	if found, ok := findApp(status, r.app.appID); ok {
		r.sessionID = found.SessionId
		r.transportID = found.TransportId
		r.launched = true
	} else {
		r.sessionID = ""
		r.transportID = ""
		r.launched = false
	}
}

func findApp(status ReceiverStatus, appID string) (cast.Application, bool) {
	for _, app := range status.Applications {
		if app.AppId == appID {
			return app, true
		}
	}
	return cast.Application{}, false
}

// Status returns the most recently observed RECEIVER_STATUS snapshot.
func (r *ReceiverSession) Status() ReceiverStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// SessionID returns the receiver application session id, or "" if no
// application launched by this client is currently running.
func (r *ReceiverSession) SessionID() cast.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionID
}

// Launched reports whether this client's application is currently running.
func (r *ReceiverSession) Launched() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.launched
}

// Launch brings up the receiver application per the bring-up sequence:
// LAUNCH, await RECEIVER_STATUS naming our app, CONNECT to its transport.
// If an instance of our appID is already running, Launch reuses it.
func (r *ReceiverSession) Launch(ctx context.Context) error {
	if r.Launched() {
		return nil
	}

	status, err := r.app.trackedReceiverRequest(ctx, cast.NewLaunchRequest(r.app.appID))
	if err != nil {
		return errors.Wrap(err, "castprotocol: LAUNCH")
	}

	found, ok := findApp(status.Status, r.app.appID)
	if !ok {
		return cast.ErrLaunchFailed
	}

	r.applyStatus(status.Status)
	r.app.router.SetTransportID(found.TransportId)

	if err := r.app.router.SendAppConnect(found.TransportId); err != nil {
		return errors.Wrap(err, "castprotocol: app CONNECT")
	}
	return nil
}

// Stop asks the receiver to stop this client's application.
func (r *ReceiverSession) Stop(ctx context.Context) error {
	sessionID := r.SessionID()
	if sessionID == "" {
		return cast.ErrNoSession
	}
	status, err := r.app.trackedReceiverRequest(ctx, cast.NewStopSessionRequest(sessionID))
	if err != nil {
		return errors.Wrap(err, "castprotocol: STOP")
	}
	r.applyStatus(status.Status)
	r.app.router.SetTransportID("")
	return nil
}

// SetVolume changes the device (not media-session) volume. Pass nil for
// a field to leave it unchanged. The device does not correlate a reply
// to SET_VOLUME; the resulting RECEIVER_STATUS, if any, arrives later as
// a spontaneous push and is applied by receiverSpontaneousHandler.
func (r *ReceiverSession) SetVolume(ctx context.Context, level *float64, muted *bool) error {
	if err := r.app.router.SendReceiverUntracked(cast.NewSetVolumeRequest(level, muted)); err != nil {
		return errors.Wrap(err, "castprotocol: SET_VOLUME")
	}
	return nil
}

// AppAvailability asks the receiver which of appIDs it can run.
func (r *ReceiverSession) AppAvailability(ctx context.Context, appIDs []string) (map[string]string, error) {
	id := r.app.ledger.Next()
	ch := r.app.ledger.Register(id, cast.PendingReceiver, time.Now().Add(r.app.requestTimeout))
	if err := r.app.router.SendReceiver(cast.NewGetAppAvailabilityRequest(appIDs), id); err != nil {
		r.app.ledger.Cancel(id)
		return nil, errors.Wrap(err, "castprotocol: GET_APP_AVAILABILITY")
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		var resp cast.GetAppAvailabilityResponse
		if err := decodeJSON(res.Payload, &resp); err != nil {
			return nil, errors.Wrap(err, "castprotocol: decode GET_APP_AVAILABILITY response")
		}
		return resp.Availability, nil
	case <-ctx.Done():
		r.app.ledger.Cancel(id)
		return nil, ctx.Err()
	}
}

// trackedReceiverRequest issues a tracked receiver-channel request and
// waits for its RECEIVER_STATUS response, honoring ctx cancellation.
func (a *Application) trackedReceiverRequest(ctx context.Context, payload cast.Payload) (*cast.ReceiverStatusResponse, error) {
	id := a.ledger.Next()
	ch := a.ledger.Register(id, cast.PendingReceiver, time.Now().Add(a.requestTimeout))
	if err := a.router.SendReceiver(payload, id); err != nil {
		a.ledger.Cancel(id)
		return nil, err
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		var status cast.ReceiverStatusResponse
		if err := decodeJSON(res.Payload, &status); err != nil {
			return nil, errors.Wrap(err, "castprotocol: decode RECEIVER_STATUS")
		}
		return &status, nil
	case <-ctx.Done():
		a.ledger.Cancel(id)
		return nil, ctx.Err()
	}
}

// receiverSpontaneousHandler handles untracked RECEIVER_STATUS pushes:
// the device may report a RECEIVER_STATUS at any time, independent of
// any command this client issued. If our application disappears from
// the list, the session is lost and any media session dies with it.
func (a *Application) receiverSpontaneousHandler(_ string, payload []byte) {
	var status cast.ReceiverStatusResponse
	if err := decodeJSON(payload, &status); err != nil {
		a.log.Debug().Err(err).Msg("castprotocol: dropping malformed spontaneous RECEIVER_STATUS")
		return
	}

	a.mu.RLock()
	receiver := a.receiver
	a.mu.RUnlock()
	if receiver == nil {
		return
	}

	wasLaunched := receiver.Launched()
	receiver.applyStatus(status.Status)
	nowLaunched := receiver.Launched()

	if wasLaunched && !nowLaunched {
		a.router.SetTransportID("")
		a.clearMediaSession(cast.ErrSessionLost)
		a.publish(Event{Kind: EventSessionLost})
		return
	}
	a.publish(Event{Kind: EventReceiverStatusChanged, Receiver: &status.Status})
}
