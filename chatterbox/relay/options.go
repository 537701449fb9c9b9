package relay

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

// Options configures the relay client and its transports.
type Options struct {
	// RequestTimeout bounds each outgoing POST.
	RequestTimeout time.Duration

	// SendLimit and SendBurst pace outgoing requests. rate.Inf disables pacing.
	SendLimit rate.Limit
	SendBurst int

	// RetryDelay is how long a stream waits before re-establishing itself
	// after a network failure. An SSE retry: field overrides it.
	RetryDelay time.Duration

	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration

	// ReadTimeout closes a WebSocket that stays silent this long. The relay
	// answers the periodic names probe, so a live session is never silent
	// for long. 0 disables it.
	ReadTimeout time.Duration

	Logger chatterbox.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		RequestTimeout:   30 * time.Second,
		SendLimit:        rate.Inf,
		SendBurst:        1,
		RetryDelay:       3 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      90 * time.Second,
	}
}

func (o Options) logger() chatterbox.Logger {
	if o.Logger == nil {
		return chatterbox.DiscardLogger()
	}
	return o.Logger
}
