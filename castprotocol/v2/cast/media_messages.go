package cast

// StreamType is the media channel's streamType enum.
type StreamType string

const (
	StreamTypeNone     StreamType = "NONE"
	StreamTypeBuffered StreamType = "BUFFERED"
	StreamTypeLive     StreamType = "LIVE"
)

// Metadata discriminant values (metadataType), per the Cast SDK.
const (
	MetadataTypeGeneric = 0
	MetadataTypeMovie   = 1
	MetadataTypeTVShow  = 2
	MetadataTypeMusic   = 3
	MetadataTypePhoto   = 4
)

// Image is an artwork/poster image reference.
type Image struct {
	Url    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Metadata is the union of Cast's generic/movie/TV/music/photo metadata
// fields, discriminated by MetadataType. Unused fields for a given type
// are simply omitted by their own omitempty tags.
type Metadata struct {
	MetadataType int      `json:"metadataType"`
	Title        string   `json:"title,omitempty"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Images       []Image  `json:"images,omitempty"`
	ReleaseDate  string   `json:"releaseDate,omitempty"`
	// Music
	Artist      string `json:"artist,omitempty"`
	AlbumName   string `json:"albumName,omitempty"`
	AlbumArtist string `json:"albumArtist,omitempty"`
	Composer    string `json:"composer,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
	DiscNumber  int    `json:"discNumber,omitempty"`
	// TV
	SeriesTitle string `json:"seriesTitle,omitempty"`
	Season      int    `json:"season,omitempty"`
	Episode     int    `json:"episode,omitempty"`
	// Photo
	Location        string  `json:"location,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	CreationDateTime string `json:"creationDateTime,omitempty"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
}

// MediaInformation describes one playable item.
type MediaInformation struct {
	ContentId      string          `json:"contentId"`
	ContentType    string          `json:"contentType"`
	StreamType     StreamType      `json:"streamType,omitempty"`
	Duration       *float64        `json:"duration,omitempty"`
	Metadata       *Metadata       `json:"metadata,omitempty"`
	Tracks         []MediaTrack    `json:"tracks,omitempty"`
	TextTrackStyle *TextTrackStyle `json:"textTrackStyle,omitempty"`
}

// MediaTrack is one track of a MediaInformation item: an audio track, a
// video track, or (most commonly for this client's purposes) a text
// track carrying WebVTT subtitles.
type MediaTrack struct {
	TrackId     int    `json:"trackId"`
	Type        string `json:"type"`
	SubType     string `json:"subtype,omitempty"`
	ContentId   string `json:"trackContentId"`
	ContentType string `json:"trackContentType"`
	Name        string `json:"name,omitempty"`
	Language    string `json:"language,omitempty"`
}

// NewSubtitleTrack builds a WebVTT text track, the shape the receiver
// expects for burned-in-free subtitle rendering.
func NewSubtitleTrack(trackID int, url, name, language string) MediaTrack {
	return MediaTrack{
		TrackId:     trackID,
		Type:        "TEXT",
		SubType:     "SUBTITLES",
		ContentId:   url,
		ContentType: "text/vtt",
		Name:        name,
		Language:    language,
	}
}

// TextTrackStyle customizes subtitle rendering. Zero value lets the
// receiver use its own default styling.
type TextTrackStyle struct {
	ForegroundColor string `json:"foregroundColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontScale       float64 `json:"fontScale,omitempty"`
}

// MediaCommandFlags is the supportedMediaCommands bitmask.
type MediaCommandFlags uint32

const (
	MediaCommandPause        MediaCommandFlags = 1
	MediaCommandSeek         MediaCommandFlags = 2
	MediaCommandVolume       MediaCommandFlags = 4
	MediaCommandMute         MediaCommandFlags = 8
	MediaCommandSkipForward  MediaCommandFlags = 16
	MediaCommandSkipBackward MediaCommandFlags = 32
)

func (f MediaCommandFlags) Has(flag MediaCommandFlags) bool { return f&flag != 0 }

// PlayerState is the device-reported player state.
type PlayerState string

const (
	PlayerStateIdle       PlayerState = "IDLE"
	PlayerStatePlaying    PlayerState = "PLAYING"
	PlayerStateBuffering  PlayerState = "BUFFERING"
	PlayerStatePaused     PlayerState = "PAUSED"
)

// IdleReason qualifies PlayerStateIdle.
type IdleReason string

const (
	IdleReasonCancelled   IdleReason = "CANCELLED"
	IdleReasonInterrupted IdleReason = "INTERRUPTED"
	IdleReasonFinished    IdleReason = "FINISHED"
	IdleReasonError       IdleReason = "ERROR"
)

// ResumeState qualifies a SEEK request's post-seek playback state.
type ResumeState string

const (
	ResumeStatePlaybackStart ResumeState = "PLAYBACK_START"
	ResumeStatePlaybackPause ResumeState = "PLAYBACK_PAUSE"
)

// LoadRequest is the media channel's LOAD command. SessionId MUST be the
// receiver *application* session id, never a MediaSessionID -- enforced
// here by the field's type.
type LoadRequest struct {
	PayloadHeader
	SessionId      SessionID        `json:"sessionId"`
	Media          MediaInformation `json:"media"`
	Autoplay       *bool            `json:"autoplay,omitempty"`
	CurrentTime    *float64         `json:"currentTime,omitempty"`
	ActiveTrackIds []int            `json:"activeTrackIds,omitempty"`
}

func NewLoadRequest(session SessionID, media MediaInformation, currentTime *float64, autoplay bool) *LoadRequest {
	return &LoadRequest{
		PayloadHeader: LoadHeader,
		SessionId:     session,
		Media:         media,
		Autoplay:      &autoplay,
		CurrentTime:   currentTime,
	}
}

// WithActiveTracks sets the request's activeTrackIds and returns it, for
// chaining onto NewLoadRequest.
func (l *LoadRequest) WithActiveTracks(ids []int) *LoadRequest {
	l.ActiveTrackIds = ids
	return l
}

// MediaSessionRequest covers PLAY/PAUSE/STOP, which all carry only a
// mediaSessionId beyond the header.
type MediaSessionRequest struct {
	PayloadHeader
	MediaSessionId MediaSessionID `json:"mediaSessionId"`
}

func NewPlayRequest(id MediaSessionID) *MediaSessionRequest {
	return &MediaSessionRequest{PayloadHeader: PlayHeader, MediaSessionId: id}
}

func NewPauseRequest(id MediaSessionID) *MediaSessionRequest {
	return &MediaSessionRequest{PayloadHeader: PauseHeader, MediaSessionId: id}
}

func NewStopMediaRequest(id MediaSessionID) *MediaSessionRequest {
	return &MediaSessionRequest{PayloadHeader: StopHeader, MediaSessionId: id}
}

// SeekRequest is the media channel's SEEK command. The device clamps
// currentTime to [0, duration]; this client never clamps locally.
type SeekRequest struct {
	PayloadHeader
	MediaSessionId MediaSessionID `json:"mediaSessionId"`
	CurrentTime    float64        `json:"currentTime"`
	ResumeState    ResumeState    `json:"resumeState,omitempty"`
}

func NewSeekRequest(id MediaSessionID, seconds float64, resume ResumeState) *SeekRequest {
	return &SeekRequest{
		PayloadHeader:  SeekHeader,
		MediaSessionId: id,
		CurrentTime:    seconds,
		ResumeState:    resume,
	}
}

// MediaGetStatusRequest is the media channel's GET_STATUS command.
type MediaGetStatusRequest struct {
	PayloadHeader
	MediaSessionId *MediaSessionID `json:"mediaSessionId,omitempty"`
}

func NewMediaGetStatusRequest(id *MediaSessionID) *MediaGetStatusRequest {
	return &MediaGetStatusRequest{PayloadHeader: GetStatusHeader, MediaSessionId: id}
}

// MediaVolumeRequest sets per-media-session volume, distinct from the
// receiver-level SET_VOLUME (device volume).
type MediaVolumeRequest struct {
	PayloadHeader
	MediaSessionId MediaSessionID `json:"mediaSessionId"`
	Volume         Volume         `json:"volume"`
}

func NewMediaVolumeRequest(id MediaSessionID, level *float64, muted *bool) *MediaVolumeRequest {
	return &MediaVolumeRequest{
		PayloadHeader:  PayloadHeader{Type: "SET_VOLUME"},
		MediaSessionId: id,
		Volume:         Volume{Level: level, Muted: muted},
	}
}

// MediaStatus is one entry of a MEDIA_STATUS response's status list.
type MediaStatus struct {
	MediaSessionId        MediaSessionID     `json:"mediaSessionId"`
	Media                 *MediaInformation  `json:"media,omitempty"`
	PlaybackRate          float64            `json:"playbackRate"`
	PlayerState           PlayerState        `json:"playerState"`
	IdleReason            IdleReason         `json:"idleReason,omitempty"`
	CurrentTime           float64            `json:"currentTime"`
	SupportedMediaCommands MediaCommandFlags `json:"supportedMediaCommands"`
	Volume                Volume             `json:"volume"`
}

// MediaStatusResponse is the media channel's MEDIA_STATUS message, sent
// both as a correlated response to a command and spontaneously
// (requestId == 0) whenever the device's playback state changes.
type MediaStatusResponse struct {
	PayloadHeader
	Status []MediaStatus `json:"status"`
}

// First returns the response's first status entry, if any. The device
// is documented to report only one entry per MEDIA_STATUS message for
// the default media receiver.
func (r *MediaStatusResponse) First() (MediaStatus, bool) {
	if len(r.Status) == 0 {
		return MediaStatus{}, false
	}
	return r.Status[0], true
}

// LoadCancelledResponse, LoadFailedResponse, InvalidPlayerStateResponse
// and InvalidRequestResponse are the media channel's four terminal error
// response kinds (spec section 4.3's "error mapping").
type LoadCancelledResponse struct{ PayloadHeader }
type LoadFailedResponse struct{ PayloadHeader }
type InvalidPlayerStateResponse struct{ PayloadHeader }
type InvalidRequestResponse struct {
	PayloadHeader
	Reason string `json:"reason,omitempty"`
}

// Invalid request reasons.
const (
	InvalidRequestReasonInvalidCommand    = "INVALID_COMMAND"
	InvalidRequestReasonDuplicateRequestID = "DUPLICATE_REQUEST_ID"
)
