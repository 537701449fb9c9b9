package chatterbox

// ConnectionState represents the health of the push-stream.
type ConnectionState int

const (
	// StateConnecting means a stream has been opened and has not reported yet.
	StateConnecting ConnectionState = iota

	// StateReady means the stream is open and delivering events.
	StateReady

	// StateError means the transport reported a failure other than closure.
	// The session takes no recovery action; a transport may re-establish
	// itself and report open again.
	StateError

	// StateDisconnected means the stream closed. A reconnect follows.
	StateDisconnected
)

// String returns the string representation of a ConnectionState.
func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// StateEvent represents a state change event.
type StateEvent struct {
	OldState ConnectionState
	NewState ConnectionState
	Error    error // Optional error that caused the state change
}
