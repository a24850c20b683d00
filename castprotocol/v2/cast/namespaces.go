package cast

// Global sender/destination identifiers and namespace URNs, defined once
// here per the protocol design: every other package in castprotocol/v2
// imports these rather than re-declaring string literals.
const (
	DefaultSenderID   = "sender-0"
	DefaultReceiverID = "receiver-0"

	// DefaultMediaReceiverAppID is Google's stock media receiver app.
	DefaultMediaReceiverAppID = "CC1AD845"

	NamespaceConnection = "urn:x-cast:com.google.cast.tp.connection"
	NamespaceHeartbeat  = "urn:x-cast:com.google.cast.tp.heartbeat"
	NamespaceMedia      = "urn:x-cast:com.google.cast.media"
	NamespaceReceiver   = "urn:x-cast:com.google.cast.receiver"
)

// KnownNamespace reports whether ns is one of the four channels this
// client understands. Anything else is logged and dropped per spec.
func KnownNamespace(ns string) bool {
	switch ns {
	case NamespaceConnection, NamespaceHeartbeat, NamespaceMedia, NamespaceReceiver:
		return true
	default:
		return false
	}
}

// MaxFrameSize is the largest permitted protobuf payload, per the Cast
// wire protocol (64 KiB).
const MaxFrameSize = 64 << 10
