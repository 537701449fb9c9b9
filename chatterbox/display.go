package chatterbox

import "context"

// Display is the rendering surface a session drives. Methods are called from
// the session's event loop, one at a time.
type Display interface {
	AppendEntry(ChatEntry)
	SetRoster(names []string)
	SetTopic(topic string)
	SetState(ConnectionState)
}

// PendingSink shows the number of entries that arrived while hidden.
type PendingSink interface {
	SetPending(n int)
	ClearPending()
}

// Stream is a persistent push-stream. Events delivers transport events (open,
// error) and relay events in arrival order. The channel is closed once the
// stream has ended, after an error event carrying ErrTransportClosed or after
// Close.
type Stream interface {
	Events() <-chan Event
	Close() error
}

// Transport opens push-streams. Open must not block on the network; the
// outcome is reported as the stream's first event.
type Transport interface {
	Open(ctx context.Context, url string) Stream
}

// Sender delivers one outgoing request to the relay.
type Sender interface {
	Send(ctx context.Context, req Request) error
}

type noopDisplay struct{}

func (noopDisplay) AppendEntry(ChatEntry)    {}
func (noopDisplay) SetRoster([]string)       {}
func (noopDisplay) SetTopic(string)          {}
func (noopDisplay) SetState(ConnectionState) {}

type noopPendingSink struct{}

func (noopPendingSink) SetPending(int) {}
func (noopPendingSink) ClearPending()  {}
