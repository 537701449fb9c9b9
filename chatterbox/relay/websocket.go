package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"

	"github.com/funkybob/aio-mini-chat/chatterbox"
	"github.com/funkybob/aio-mini-chat/chatterbox/internal"
)

// WebSocketTransport receives the relay's pub/sub envelopes over a WebSocket.
// Each text message is a JSON array [mode, content].
type WebSocketTransport struct {
	client *Client
}

// NewWebSocketTransport returns a transport sharing c's cookie jar.
func NewWebSocketTransport(c *Client) *WebSocketTransport {
	return &WebSocketTransport{client: c}
}

// Open starts a stream to rawURL; http and https schemes are mapped to ws and
// wss. A refused handshake or a normal close by the relay ends the stream as
// closed. Other failures produce an error event and the stream re-attaches.
func (t *WebSocketTransport) Open(ctx context.Context, rawURL string) chatterbox.Stream {
	attach := func(ctx context.Context, emit emitFunc) error {
		return t.attach(ctx, rawURL, emit)
	}
	retry := func() time.Duration { return t.client.opts.RetryDelay }
	return startStream(ctx, t.client.logger, attach, retry)
}

// WebSocketURL converts a relay root URL to its WebSocket form.
func WebSocketURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}

func (t *WebSocketTransport) attach(ctx context.Context, rawURL string, emit emitFunc) error {
	wsURL, err := WebSocketURL(rawURL)
	if err != nil {
		return chatterbox.WrapError(chatterbox.ErrorTransportClosed, "invalid stream URL", err)
	}

	dialCtx := ctx
	if t.client.opts.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, t.client.opts.HandshakeTimeout)
		defer cancel()
	}

	ws, resp, err := websocket.Dial(dialCtx, wsURL, &websocket.DialOptions{
		HTTPClient: t.client.streamClient,
	})
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			return chatterbox.WrapError(chatterbox.ErrorTransportClosed, fmt.Sprintf("handshake refused (status %d)", resp.StatusCode), err)
		}
		return fmt.Errorf("dial: %w", err)
	}
	conn := internal.NewConn(ws, t.client.opts.ReadTimeout)
	defer conn.Close(websocket.StatusNormalClosure, "client close")

	if !emit(chatterbox.Event{Category: chatterbox.CategoryOpen}) {
		return ctx.Err()
	}

	for {
		frame, err := conn.ReadFrame(ctx)
		if errors.Is(err, internal.ErrMalformedFrame) {
			if !emit(chatterbox.Event{Err: chatterbox.WrapError(chatterbox.ErrorMalformedPayload, "decode frame", err)}) {
				return ctx.Err()
			}
			continue
		}
		if err != nil {
			return classifyClose(err)
		}
		if !emit(relayEvent(frame.Mode, frame.Data)) {
			return ctx.Err()
		}
	}
}

// classifyClose maps a deliberate close by the relay to a closed stream.
func classifyClose(err error) error {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return chatterbox.WrapError(chatterbox.ErrorTransportClosed, "closed by relay", err)
	}
	return fmt.Errorf("read: %w", err)
}
