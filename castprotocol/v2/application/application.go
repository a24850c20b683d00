// Package application implements the Receiver Session Manager and Media
// Playback Controller described in the Cast protocol client design: it
// drives a cast.Router/cast.Ledger/cast.Heartbeat trio over one cast.Conn
// to bring up a receiver application and control its media playback.
package application

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

// DefaultRequestTimeout bounds how long Application waits for a
// correlated response before returning cast.ErrTimeout.
const DefaultRequestTimeout = 10 * time.Second

// defaultDialBackoff paces retries against a device that is slow to
// answer (a TV waking from sleep can take upward of 10s).
const defaultDialBackoff = 500 * time.Millisecond

// Application is the top-level handle for one Cast device connection. It
// owns the transport, the heartbeat, and the current receiver/media
// session state, and is the type every castprotocol/v2 caller drives.
type Application struct {
	conn   cast.Conn
	router *cast.Router
	ledger *cast.Ledger
	log    zerolog.Logger

	requestTimeout    time.Duration
	appID             string
	connectionRetries int

	heartbeat *cast.Heartbeat

	mu          sync.RWMutex
	receiver    *ReceiverSession
	media       *MediaSession
	connected   bool

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Option configures an Application at construction time.
type Option func(*Application)

// WithConnection overrides the production cast.Conn with another
// implementation; tests use this to inject mocks.Conn.
func WithConnection(conn cast.Conn) Option {
	return func(a *Application) { a.conn = conn }
}

// WithLogger overrides the default stderr zerolog.Logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Application) { a.log = log }
}

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *Application) { a.requestTimeout = d }
}

// WithAppID overrides cast.DefaultMediaReceiverAppID, for callers that
// want to launch a non-default receiver application.
func WithAppID(appID string) Option {
	return func(a *Application) { a.appID = appID }
}

// WithConnectionRetries sets how many additional times Start retries the
// initial TLS dial if it fails, paced by an exponential backoff. Zero
// (the default) means no retries: a single failed dial fails Start.
func WithConnectionRetries(n int) Option {
	return func(a *Application) { a.connectionRetries = n }
}

// NewApplication constructs an Application. With no options it dials
// nothing until Start is called and uses a production cast.Connection.
func NewApplication(opts ...Option) *Application {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "castprotocol").Logger()

	a := &Application{
		log:            log,
		requestTimeout: DefaultRequestTimeout,
		appID:          cast.DefaultMediaReceiverAppID,
		ledger:         cast.NewLedger(),
		events:         make(chan Event, 32),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.conn == nil {
		a.conn = cast.NewConnection(a.log)
	}
	a.router = cast.NewRouter(a.conn, a.ledger, a.log)
	return a
}

// Dial is a convenience constructor that builds an Application and
// immediately starts it against host:port.
func Dial(ctx context.Context, host string, port int, opts ...Option) (*Application, error) {
	a := NewApplication(opts...)
	type result struct{ err error }
	resCh := make(chan result, 1)
	go func() { resCh <- result{a.Start(host, port)} }()
	select {
	case res := <-resCh:
		if res.err != nil {
			return nil, res.err
		}
		return a, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Events returns the channel Application publishes connection, receiver
// and media lifecycle notifications to. The channel is never closed by
// Application; callers stop reading when they Close it.
func (a *Application) Events() <-chan Event {
	return a.events
}

// Connected reports whether Start has completed the device-level handshake.
func (a *Application) Connected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

// Start dials addr:port, performs the device CONNECT handshake, fetches
// the initial RECEIVER_STATUS, and starts the heartbeat engine. It
// returns once the handshake completes or fails; ongoing traffic is
// handled by background goroutines started here.
func (a *Application) Start(addr string, port int) error {
	if err := a.dialWithRetries(addr, port); err != nil {
		return errors.Wrap(err, "castprotocol: dial")
	}

	a.registerHandlers()
	go a.dispatchLoop()

	if err := a.router.SendDeviceConnect(); err != nil {
		return errors.Wrap(err, "castprotocol: device connect")
	}

	status, err := a.getReceiverStatus()
	if err != nil {
		return errors.Wrap(err, "castprotocol: initial GET_STATUS")
	}

	a.mu.Lock()
	a.connected = true
	a.receiver = newReceiverSession(a, status)
	a.mu.Unlock()

	a.heartbeat = cast.NewHeartbeat(a.router, a.log, a.lastSeen, a.onConnectionDead)
	a.heartbeat.Start()

	go a.sweepLoop()

	a.publish(Event{Kind: EventConnected})
	return nil
}

// sweepLoop periodically expires pending ledger requests that outlived
// their deadline, covering the case where a response never arrives at
// all (as opposed to arriving with an explicit error type).
func (a *Application) sweepLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.done:
			return
		case now := <-ticker.C:
			a.ledger.SweepTimeouts(now)
		}
	}
}

// dialWithRetries dials once, then retries up to connectionRetries more
// times on failure, waiting on a rate.Limiter that doubles its interval
// each attempt (capped at 8s) so a slow-to-wake TV gets breathing room
// without the caller waiting forever.
func (a *Application) dialWithRetries(addr string, port int) error {
	err := a.conn.Start(addr, port)
	if err == nil || a.connectionRetries <= 0 {
		return err
	}

	interval := defaultDialBackoff
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// The first token is available immediately; drain it so even the
	// first retry waits one interval instead of firing back-to-back.
	_ = limiter.Reserve()

	for attempt := 1; attempt <= a.connectionRetries; attempt++ {
		if werr := limiter.Wait(context.Background()); werr != nil {
			return err
		}

		a.log.Debug().Int("attempt", attempt).Err(err).Msg("castprotocol: retrying dial")
		if err = a.conn.Start(addr, port); err == nil {
			return nil
		}
		if interval < 8*time.Second {
			interval *= 2
			limiter.SetLimit(rate.Every(interval))
		}
	}
	return err
}

// lastSeen is plumbed to the heartbeat watchdog; *cast.Connection
// exposes LastSeen; other cast.Conn implementations (mocks) report the
// current time, so they always look freshly active and the watchdog
// never fires for them.
func (a *Application) lastSeen() time.Time {
	type lastSeener interface{ LastSeen() time.Time }
	if ls, ok := a.conn.(lastSeener); ok {
		return ls.LastSeen()
	}
	return time.Now()
}

func (a *Application) onConnectionDead() {
	a.mu.Lock()
	a.connected = false
	a.mu.Unlock()
	a.ledger.DrainDisconnected()
	a.publish(Event{Kind: EventDisconnected})
}

// dispatchLoop feeds every inbound envelope to the router until the
// connection's MsgChan closes.
func (a *Application) dispatchLoop() {
	for msg := range a.conn.MsgChan() {
		a.router.Dispatch(msg)
	}
	a.onConnectionDead()
}

func (a *Application) registerHandlers() {
	a.router.OnSpontaneous(cast.NamespaceHeartbeat, a.heartbeatHandler)
	a.router.OnSpontaneous(cast.NamespaceConnection, a.connectionHandler)
	a.router.OnSpontaneous(cast.NamespaceReceiver, a.receiverSpontaneousHandler)
	a.router.OnSpontaneous(cast.NamespaceMedia, a.mediaSpontaneousHandler)
}

// heartbeatHandler is registered before a.heartbeat exists (it is
// created only after the handshake succeeds), so it must tolerate a nil
// heartbeat by responding to PING itself.
func (a *Application) heartbeatHandler(ns string, payload []byte) {
	if a.heartbeat != nil {
		a.heartbeat.HandleHeartbeat(ns, payload)
		return
	}
	var msg cast.PayloadHeader
	if err := decodeJSON(payload, &msg); err == nil && msg.Type == "PING" {
		pong := cast.PongHeader
		_ = a.router.SendHeartbeat(&pong)
	}
}

func (a *Application) connectionHandler(_ string, payload []byte) {
	var msg cast.PayloadHeader
	if err := decodeJSON(payload, &msg); err != nil {
		return
	}
	if msg.Type == "CLOSE" {
		a.onConnectionDead()
	}
}

// Close tears down the heartbeat, the underlying connection, and drains
// any requests still waiting on a response. Safe to call more than once.
func (a *Application) Close() error {
	var err error
	a.once.Do(func() {
		if a.heartbeat != nil {
			a.heartbeat.Stop()
		}
		close(a.done)
		a.ledger.DrainDisconnected()
		err = a.conn.Close()
	})
	return err
}

// getReceiverStatus issues a tracked GET_STATUS on the receiver channel
// and blocks for the correlated RECEIVER_STATUS response.
func (a *Application) getReceiverStatus() (*cast.ReceiverStatusResponse, error) {
	id := a.ledger.Next()
	ch := a.ledger.Register(id, cast.PendingReceiver, time.Now().Add(a.requestTimeout))
	if err := a.router.SendGetStatus(id); err != nil {
		a.ledger.Cancel(id)
		return nil, err
	}
	res := <-ch
	if res.Err != nil {
		return nil, res.Err
	}
	var status cast.ReceiverStatusResponse
	if err := decodeJSON(res.Payload, &status); err != nil {
		return nil, fmt.Errorf("castprotocol: decode RECEIVER_STATUS: %w", err)
	}
	return &status, nil
}
