package castprotocol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go2tv.app/go2tv/v2/castprotocol/v2/application"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

// defaultRequestTimeout bounds every tracked request the underlying
// Application issues; TVs waking from sleep can take several seconds to
// answer, hence the generous window and the retry loops below.
const defaultRequestTimeout = 15 * time.Second

// CastClient wraps castprotocol/v2/application.Application with the
// simplified, go2tv-shaped API the rest of this repository calls.
type CastClient struct {
	app  *application.Application
	mu   sync.RWMutex
	host string
	port int

	connected   bool
	Logger      zerolog.Logger
	LogOutput   io.Writer
	initLogOnce sync.Once
}

// Log returns the zerolog logger, initializing it lazily if LogOutput is set.
func (c *CastClient) Log() *zerolog.Logger {
	if c.LogOutput != nil {
		c.initLogOnce.Do(func() {
			c.Logger = zerolog.New(c.LogOutput).With().Timestamp().Logger()
		})
	}
	return &c.Logger
}

func NewCastClient(deviceAddr string) (*CastClient, error) {
	u, err := url.Parse(deviceAddr)
	if err != nil {
		return nil, fmt.Errorf("parse device addr: %w", err)
	}

	host := u.Hostname()
	port := 8009 // default Chromecast port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	app := application.NewApplication(
		application.WithRequestTimeout(defaultRequestTimeout),
		application.WithConnectionRetries(5), // retry up to 5 times on connection failures (slow TVs need time to wake)
	)

	return &CastClient{
		app:  app,
		host: host,
		port: port,
	}, nil
}

// Connect establishes connection to the Chromecast device.
func (c *CastClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.app == nil {
		return fmt.Errorf("chromecast connect: app is nil")
	}

	c.Log().Debug().Str("Method", "Connect").Str("Host", c.host).Int("Port", c.port).Msg("connecting")
	if err := c.app.Start(c.host, c.port); err != nil {
		c.Log().Error().Str("Method", "Connect").Err(err).Msg("connection failed")
		return fmt.Errorf("chromecast connect: %w", err)
	}
	c.connected = true
	c.Log().Debug().Str("Method", "Connect").Msg("connected successfully")
	return nil
}

// isTimeoutError checks if an error is a timeout/deadline exceeded error.
// This typically happens when the TV needs to wake from sleep.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, cast.ErrTimeout) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

const maxLoadAttempts = 5

// Load loads media from URL onto the Chromecast.
// startTime is the position in seconds to start playback from.
// duration is the total media duration in seconds (0 to let Chromecast detect).
// If subtitleURL is provided, uses the custom load path with subtitle tracks.
// If live is true, uses StreamType "LIVE" to identify as live stream.
func (c *CastClient) Load(mediaURL string, contentType string, startTime int, duration float64, subtitleURL string, live bool) error {
	c.Log().Debug().Str("Method", "Load").Str("URL", mediaURL).Str("ContentType", contentType).Int("StartTime", startTime).Float64("Duration", duration).Bool("HasSubs", subtitleURL != "").Bool("Live", live).Msg("loading media")

	if !c.IsConnected() {
		c.Log().Debug().Str("Method", "Load").Msg("connection closed, reconnecting")
		if err := c.Connect(); err != nil {
			return fmt.Errorf("reconnect before load: %w", err)
		}
	}

	var lastErr error
	for attempt := range maxLoadAttempts {
		if !c.IsConnected() {
			c.Log().Debug().Str("Method", "Load").Msg("connection closed during load, aborting silently")
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		session, err := LoadWithSubtitles(ctx, c.app, mediaURL, contentType, startTime, duration, subtitleURL, live, !live)
		cancel()
		if err != nil {
			lastErr = err
			if isTimeoutError(err) && attempt < maxLoadAttempts-1 {
				c.Log().Debug().Str("Method", "Load").Int("Attempt", attempt).Err(err).Msg("timeout, TV may be waking up, retrying...")
				time.Sleep(4 * time.Second)
				continue
			}
			c.Log().Error().Str("Method", "Load").Err(err).Msg("load failed")
			return err
		}

		// For live streams: load PAUSED then immediately send PLAY to
		// simulate a "fast click", which avoids the 20-30s buffer window
		// autoplay=true triggers for live content.
		if live {
			c.Log().Debug().Str("Method", "Load").Msg("live stream loaded paused, sending immediate PLAY to simulate fast click")
			playCtx, playCancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
			if playErr := session.Play(playCtx); playErr != nil {
				c.Log().Warn().Str("Method", "Load").Err(playErr).Msg("play command failed")
			}
			playCancel()
		}

		c.Log().Debug().Str("Method", "Load").Msg("load success")
		return nil
	}
	return lastErr
}

// LoadOnExisting loads media on an already-running receiver (for seek operations).
// Unlike Load, this does not auto-reconnect: it's meant for a receiver
// session that is already up, and reconnecting here would defeat the
// point of skipping the launch step.
func (c *CastClient) LoadOnExisting(mediaURL string, contentType string, startTime int, duration float64, subtitleURL string, live bool) error {
	c.Log().Debug().Str("Method", "LoadOnExisting").Str("URL", mediaURL).Str("ContentType", contentType).Int("StartTime", startTime).Float64("Duration", duration).Bool("HasSubs", subtitleURL != "").Bool("Live", live).Msg("loading media on existing receiver")

	if !c.IsConnected() {
		return fmt.Errorf("not connected (LoadOnExisting requires active connection)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	_, err := LoadWithSubtitles(ctx, c.app, mediaURL, contentType, startTime, duration, subtitleURL, live, true)
	if err != nil {
		c.Log().Error().Str("Method", "LoadOnExisting").Err(err).Msg("failed")
	} else {
		c.Log().Debug().Str("Method", "LoadOnExisting").Msg("success")
	}
	return err
}

func (c *CastClient) currentMedia() (*application.MediaSession, error) {
	session := c.app.Media()
	if session == nil {
		return nil, cast.ErrNoMediaSession
	}
	return session, nil
}

// Play resumes playback.
func (c *CastClient) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "Play").Msg("resuming playback")
	session, err := c.currentMedia()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	if err := session.Play(ctx); err != nil {
		c.Log().Error().Str("Method", "Play").Err(err).Msg("failed")
		return err
	}
	return nil
}

// Pause pauses playback.
func (c *CastClient) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "Pause").Msg("pausing playback")
	session, err := c.currentMedia()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	if err := session.Pause(ctx); err != nil {
		c.Log().Error().Str("Method", "Pause").Err(err).Msg("failed")
		return err
	}
	return nil
}

// Stop stops playback and closes the media session.
func (c *CastClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "Stop").Msg("stopping playback")
	session, err := c.currentMedia()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	if err := session.Stop(ctx); err != nil {
		c.Log().Error().Str("Method", "Stop").Err(err).Msg("failed")
		return err
	}
	return nil
}

// Seek seeks to position in seconds from start.
func (c *CastClient) Seek(seconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "Seek").Int("Seconds", seconds).Msg("seeking")
	session, err := c.currentMedia()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	if err := session.Seek(ctx, float64(seconds), ""); err != nil {
		c.Log().Error().Str("Method", "Seek").Err(err).Msg("failed")
		return err
	}
	return nil
}

// SetVolume sets the device volume (0.0 to 1.0).
func (c *CastClient) SetVolume(level float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "SetVolume").Float32("Level", level).Msg("setting volume")
	receiver := c.app.Receiver()
	if receiver == nil {
		return cast.ErrNoSession
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	l := float64(level)
	if err := receiver.SetVolume(ctx, &l, nil); err != nil {
		c.Log().Error().Str("Method", "SetVolume").Err(err).Msg("failed")
		return err
	}
	return nil
}

// SetMuted sets mute state.
func (c *CastClient) SetMuted(muted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Log().Debug().Str("Method", "SetMuted").Bool("Muted", muted).Msg("setting mute")
	receiver := c.app.Receiver()
	if receiver == nil {
		return cast.ErrNoSession
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	if err := receiver.SetVolume(ctx, nil, &muted); err != nil {
		c.Log().Error().Str("Method", "SetMuted").Err(err).Msg("failed")
		return err
	}
	return nil
}

// GetStatus returns current playback status.
func (c *CastClient) GetStatus() (*CastStatus, error) {
	receiver := c.app.Receiver()
	status := &CastStatus{PlayerState: "IDLE"}
	if receiver != nil {
		vol := receiver.Status().Volume
		if vol.Level != nil {
			status.Volume = float32(*vol.Level)
		}
		if vol.Muted != nil {
			status.Muted = *vol.Muted
		}
	}

	media := c.app.Media()
	if media == nil {
		return status, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()
	entry, err := media.GetStatus(ctx)
	if err != nil {
		c.Log().Error().Str("Method", "GetStatus").Err(err).Msg("failed")
		return nil, err
	}

	status.PlayerState = string(entry.PlayerState)
	status.CurrentTime = float32(entry.CurrentTime)
	if entry.Media != nil {
		status.ContentType = entry.Media.ContentType
		if entry.Media.Duration != nil {
			status.Duration = float32(*entry.Media.Duration)
		}
		if entry.Media.Metadata != nil {
			status.MediaTitle = entry.Media.Metadata.Title
		}
	}
	return status, nil
}

// Close disconnects from the Chromecast device. If stopMedia is true and
// a media session is active, it is stopped first.
func (c *CastClient) Close(stopMedia bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Log().Debug().Str("Method", "Close").Bool("StopMedia", stopMedia).Msg("closing connection")
	if stopMedia {
		if media := c.app.Media(); media != nil {
			ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
			if err := media.Stop(ctx); err != nil {
				c.Log().Warn().Str("Method", "Close").Err(err).Msg("stop before close failed")
			}
			cancel()
		}
	}

	c.connected = false
	err := c.app.Close()
	if err != nil {
		c.Log().Error().Str("Method", "Close").Err(err).Msg("failed")
	}
	return err
}

// IsConnected returns whether client is connected.
func (c *CastClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.app.Connected()
}

// Host returns the hostname of the connected Chromecast device.
func (c *CastClient) Host() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.host
}
