package castprotocol

import (
	"context"
	"fmt"

	"go2tv.app/go2tv/v2/castprotocol/v2/application"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
)

// LoadWithSubtitles sends a LOAD command carrying subtitle tracks to app,
// launching the receiver application first if it isn't already running.
// subtitleURL may be empty, in which case the track list is omitted.
// live selects StreamType LIVE over BUFFERED; autoplay controls whether
// the device starts playback immediately or loads paused.
func LoadWithSubtitles(ctx context.Context, app *application.Application, mediaURL, contentType string, startTime int, duration float64, subtitleURL string, live, autoplay bool) (*application.MediaSession, error) {
	media := cast.MediaInformation{
		ContentId:   mediaURL,
		ContentType: contentType,
		StreamType:  cast.StreamTypeBuffered,
	}
	if live {
		media.StreamType = cast.StreamTypeLive
	}
	if duration > 0 {
		media.Duration = &duration
	}

	var activeTrackIds []int
	if subtitleURL != "" {
		track := NewSubtitleTrack(1, subtitleURL, "Subtitles", "en")
		media.Tracks = []MediaTrack{track}
		activeTrackIds = []int{1}
	}

	current := float64(startTime)
	session, err := app.LoadWithTracks(ctx, media, &current, autoplay, activeTrackIds)
	if err != nil {
		return nil, fmt.Errorf("load with subtitles: %w", err)
	}
	return session, nil
}
