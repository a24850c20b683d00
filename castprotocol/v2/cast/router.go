package cast

import (
	"fmt"
	"sync"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

// SpontaneousHandler processes an untracked or requestId==0 message
// received on one of the four channels.
type SpontaneousHandler func(namespace string, payload []byte)

// Router multiplexes envelopes over the four Cast channels: it stamps
// outgoing envelopes with the correct source/destination per spec
// section 4.2, and dispatches inbound envelopes either to the Ledger
// (correlated responses) or to the owning channel's spontaneous handler.
type Router struct {
	conn   Conn
	ledger *Ledger
	log    zerolog.Logger

	mu          sync.RWMutex
	transportID TransportID
	handlers    map[string]SpontaneousHandler
}

func NewRouter(conn Conn, ledger *Ledger, log zerolog.Logger) *Router {
	return &Router{
		conn:     conn,
		ledger:   ledger,
		log:      log,
		handlers: make(map[string]SpontaneousHandler),
	}
}

// OnSpontaneous registers the handler invoked for untracked/requestId==0
// messages arriving on namespace.
func (r *Router) OnSpontaneous(namespace string, handler SpontaneousHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[namespace] = handler
}

// SetTransportID records the transport id media commands address. An
// empty id means "no application launched".
func (r *Router) SetTransportID(id TransportID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transportID = id
}

// TransportID returns the currently tracked application transport id.
func (r *Router) TransportID() TransportID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transportID
}

func (r *Router) send(requestID RequestID, payload Payload, destination, namespace string) error {
	return r.conn.Send(int(requestID), payload, DefaultSenderID, destination, namespace)
}

// SendDeviceConnect sends CONNECT to the device-level receiver.
func (r *Router) SendDeviceConnect() error {
	connect := ConnectHeader
	return r.send(0, &connect, DefaultReceiverID, NamespaceConnection)
}

// SendAppConnect sends CONNECT to the transport backing a launched application.
func (r *Router) SendAppConnect(transport TransportID) error {
	connect := ConnectHeader
	return r.send(0, &connect, string(transport), NamespaceConnection)
}

// SendGetStatus sends a tracked GET_STATUS request on the receiver channel.
func (r *Router) SendGetStatus(requestID RequestID) error {
	status := GetStatusHeader
	return r.SendReceiver(&status, requestID)
}

// SendHeartbeat sends an untracked PING or PONG.
func (r *Router) SendHeartbeat(payload Payload) error {
	return r.send(0, payload, DefaultReceiverID, NamespaceHeartbeat)
}

// SendReceiver stamps and sends a receiver-channel request with the
// given (already-allocated) requestID.
func (r *Router) SendReceiver(payload Payload, requestID RequestID) error {
	payload.SetRequestId(int(requestID))
	return r.send(requestID, payload, DefaultReceiverID, NamespaceReceiver)
}

// SendReceiverUntracked sends a receiver-channel request the device does
// not correlate a reply to (SET_VOLUME): requestId 0, no ledger entry.
// Any resulting state change arrives later as a spontaneous RECEIVER_STATUS.
func (r *Router) SendReceiverUntracked(payload Payload) error {
	payload.SetRequestId(0)
	return r.send(0, payload, DefaultReceiverID, NamespaceReceiver)
}

// SendMedia stamps and sends a media-channel request addressed to the
// currently launched application's transport. Fails with ErrNoSession
// if no application is launched.
func (r *Router) SendMedia(payload Payload, requestID RequestID) error {
	transport := r.TransportID()
	if transport == "" {
		return ErrNoSession
	}
	payload.SetRequestId(int(requestID))
	return r.send(requestID, payload, string(transport), NamespaceMedia)
}

// Dispatch decodes an inbound envelope's namespace and routes its JSON
// payload either to the Ledger (correlated media/receiver responses) or
// to the owning channel's spontaneous handler. Unknown namespaces are
// logged and dropped; never fatal.
func (r *Router) Dispatch(msg *pb.CastMessage) {
	ns := msg.GetNamespace()
	if !KnownNamespace(ns) {
		r.log.Warn().Str("namespace", ns).Msg("cast: dropping message on unknown namespace")
		return
	}

	payload := []byte(msg.GetPayloadUtf8())

	switch ns {
	case NamespaceConnection, NamespaceHeartbeat:
		r.dispatchSpontaneous(ns, payload)
		return
	case NamespaceMedia, NamespaceReceiver:
		r.dispatchCorrelated(ns, payload)
		return
	}
}

func (r *Router) dispatchSpontaneous(ns string, payload []byte) {
	r.mu.RLock()
	handler := r.handlers[ns]
	r.mu.RUnlock()
	if handler != nil {
		handler(ns, payload)
	}
}

func (r *Router) dispatchCorrelated(ns string, payload []byte) {
	requestID, msgType := peekEnvelope(payload)

	if requestID == 0 {
		r.dispatchSpontaneous(ns, payload)
		return
	}

	result := Result{Payload: payload}
	if ns == NamespaceMedia {
		result.Err = mediaResponseError(requestID, msgType, payload)
	}

	if !r.ledger.Resolve(requestID, result) {
		r.log.Debug().Uint64("requestId", uint64(requestID)).Msg("cast: dropping response for unknown/stale request id")
	}
}

// peekEnvelope extracts "requestId" and "type" from a JSON payload
// without a full unmarshal, mirroring the classification step the
// vishen/go-chromecast reference implementation performs before
// deciding a message's concrete shape.
func peekEnvelope(payload []byte) (RequestID, string) {
	var requestID RequestID
	if v, err := jsonparser.GetInt(payload, "requestId"); err == nil {
		requestID = RequestID(v)
	}
	msgType, _ := jsonparser.GetString(payload, "type")
	return requestID, msgType
}

func mediaResponseError(id RequestID, msgType string, payload []byte) error {
	switch msgType {
	case "LOAD_CANCELLED":
		return &LoadCancelledError{RequestID: id}
	case "LOAD_FAILED":
		return &LoadFailedError{RequestID: id}
	case "INVALID_PLAYER_STATE":
		return &InvalidPlayerStateError{RequestID: id}
	case "INVALID_REQUEST":
		reason, _ := jsonparser.GetString(payload, "reason")
		return &InvalidRequestError{RequestID: id, Reason: reason}
	case "MEDIA_STATUS":
		return nil
	default:
		return fmt.Errorf("cast: unexpected media response type %q", msgType)
	}
}
