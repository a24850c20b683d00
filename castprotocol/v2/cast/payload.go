package cast

// RequestID is the monotonic correlation id carried by media/receiver
// channel messages. Zero is reserved for device-originated spontaneous
// messages and is never allocated by Ledger.Next.
type RequestID uint64

// SessionID is a receiver *application* session id (the "sessionId" a
// LAUNCH/RECEIVER_STATUS exchange produces). Distinct from MediaSessionID
// so a LOAD cannot be built with the wrong id in the wrong slot -- the
// "known point of confusion" the protocol invites.
type SessionID string

// MediaSessionID is the id a successful LOAD's MEDIA_STATUS response
// assigns to the loaded media. Distinct from SessionID; see above.
type MediaSessionID int64

// TransportID addresses the transport backing a launched application.
type TransportID string

// Payload is any outbound JSON message that carries (or omits) a request id.
// SetRequestId takes a plain int, matching the mock.Arguments.Int accessor
// used in tests; Router converts to/from
// RequestID at the ledger boundary.
type Payload interface {
	SetRequestId(id int)
}

// PayloadHeader is embedded by every tracked request/response payload.
type PayloadHeader struct {
	Type      string    `json:"type"`
	RequestId RequestID `json:"requestId,omitempty"`
}

func (p *PayloadHeader) SetRequestId(id int) { p.RequestId = RequestID(id) }

// Known payload headers, one instance per message type. Callers copy
// these by value and fill in the fields specific to their request.
var (
	ConnectHeader            = PayloadHeader{Type: "CONNECT"}
	CloseHeader              = PayloadHeader{Type: "CLOSE"}
	GetStatusHeader          = PayloadHeader{Type: "GET_STATUS"}
	GetAppAvailabilityHeader = PayloadHeader{Type: "GET_APP_AVAILABILITY"}
	PingHeader               = PayloadHeader{Type: "PING"}
	PongHeader               = PayloadHeader{Type: "PONG"}
	LaunchHeader             = PayloadHeader{Type: "LAUNCH"}
	StopHeader               = PayloadHeader{Type: "STOP"}
	PlayHeader               = PayloadHeader{Type: "PLAY"}
	PauseHeader              = PayloadHeader{Type: "PAUSE"}
	SeekHeader               = PayloadHeader{Type: "SEEK"}
	VolumeHeader             = PayloadHeader{Type: "SET_VOLUME"}
	LoadHeader               = PayloadHeader{Type: "LOAD"}
)

// Volume is the device/media volume. Absent fields mean "unchanged" and
// must be omitted from JSON, never sent as null -- the device rejects
// null for "unchanged" fields.
type Volume struct {
	Level *float64 `json:"level,omitempty"`
	Muted *bool    `json:"muted,omitempty"`
}

// ConnectRequest is sent on the connection channel; untracked (no requestId).
type ConnectRequest struct {
	PayloadHeader
	UserAgent string `json:"userAgent,omitempty"`
}

func NewConnectRequest() *ConnectRequest {
	return &ConnectRequest{PayloadHeader: ConnectHeader, UserAgent: "go2tv/castprotocol-v2"}
}

// CloseResponse is the untracked notification a transport sends when it closes.
type CloseResponse struct {
	PayloadHeader
}

// HeartbeatMessage is either a PING or a PONG; untracked on both channels.
type HeartbeatMessage struct {
	PayloadHeader
}

func NewPing() *HeartbeatMessage { return &HeartbeatMessage{PayloadHeader: PingHeader} }
func NewPong() *HeartbeatMessage { return &HeartbeatMessage{PayloadHeader: PongHeader} }
