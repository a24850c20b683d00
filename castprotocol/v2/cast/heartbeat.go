package cast

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PingInterval is how often the sender side emits a PING.
const PingInterval = 5 * time.Second

// WatchdogMultiplier is how many ping intervals of silence before the
// connection is declared dead.
const WatchdogMultiplier = 3

// Heartbeat drives the sender side (periodic PING), the responder side
// (PING -> PONG), and the liveness watchdog described in spec section 4.4.
type Heartbeat struct {
	router   *Router
	log      zerolog.Logger
	interval time.Duration
	multiple int
	lastSeen func() time.Time
	onDead   func()

	stop chan struct{}
	once sync.Once
}

// NewHeartbeat wires a Heartbeat to router, using lastSeen to observe
// connection liveness and invoking onDead exactly once if the watchdog
// trips.
func NewHeartbeat(router *Router, log zerolog.Logger, lastSeen func() time.Time, onDead func()) *Heartbeat {
	return &Heartbeat{
		router:   router,
		log:      log,
		interval: PingInterval,
		multiple: WatchdogMultiplier,
		lastSeen: lastSeen,
		onDead:   onDead,
		stop:     make(chan struct{}),
	}
}

// WithInterval overrides the ping interval (used by tests to shrink the
// 5s/15s real-time windows).
func (h *Heartbeat) WithInterval(d time.Duration) *Heartbeat {
	h.interval = d
	return h
}

// Start begins the ping and watchdog timers. Call once, after the
// device CONNECT succeeds.
func (h *Heartbeat) Start() {
	go h.pingLoop()
	go h.watchdogLoop()
}

// Stop halts both timers. Safe to call multiple times.
func (h *Heartbeat) Stop() {
	h.once.Do(func() { close(h.stop) })
}

func (h *Heartbeat) pingLoop() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if err := h.router.SendHeartbeat(NewPing()); err != nil {
				h.log.Warn().Err(err).Msg("cast: failed to send heartbeat ping")
			}
		}
	}
}

func (h *Heartbeat) watchdogLoop() {
	deadline := time.Duration(h.multiple) * h.interval
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if time.Since(h.lastSeen()) >= deadline {
				h.log.Warn().Dur("silence", deadline).Msg("cast: heartbeat watchdog tripped, declaring connection dead")
				if h.onDead != nil {
					h.onDead()
				}
				return
			}
		}
	}
}

// HandleHeartbeat is the spontaneous handler for the heartbeat channel:
// PING is answered with PONG immediately; PONG requires no action.
func (h *Heartbeat) HandleHeartbeat(_ string, payload []byte) {
	var msg PayloadHeader
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.log.Debug().Err(err).Msg("cast: dropping malformed heartbeat message")
		return
	}
	switch msg.Type {
	case "PING":
		if err := h.router.SendHeartbeat(NewPong()); err != nil {
			h.log.Warn().Err(err).Msg("cast: failed to respond to ping")
		}
	case "PONG":
		// no action required
	}
}
