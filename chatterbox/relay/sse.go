package relay

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/funkybob/aio-mini-chat/chatterbox"
	"github.com/funkybob/aio-mini-chat/chatterbox/internal"
)

// SSETransport opens Server-Sent Event streams with the client's cookies.
type SSETransport struct {
	client *Client
}

// NewSSETransport returns a transport sharing c's cookie jar.
func NewSSETransport(c *Client) *SSETransport {
	return &SSETransport{client: c}
}

// sseState carries reconnection state across attaches of one stream. It is
// only touched by the stream's goroutine.
type sseState struct {
	lastID string
	retry  time.Duration
}

// Open starts a stream to url. A non-200 response or a response that is not
// text/event-stream ends the stream as closed. Network failures and the end
// of the response body produce an error event and the stream re-attaches,
// resending the last event ID.
func (t *SSETransport) Open(ctx context.Context, url string) chatterbox.Stream {
	st := &sseState{retry: t.client.opts.RetryDelay}
	attach := func(ctx context.Context, emit emitFunc) error {
		return t.attach(ctx, url, st, emit)
	}
	retry := func() time.Duration { return st.retry }
	return startStream(ctx, t.client.logger, attach, retry)
}

func (t *SSETransport) attach(ctx context.Context, url string, st *sseState, emit emitFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return chatterbox.WrapError(chatterbox.ErrorTransportClosed, "create request", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if st.lastID != "" {
		req.Header.Set("Last-Event-ID", st.lastID)
	}

	resp, err := t.client.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return chatterbox.NewError(chatterbox.ErrorTransportClosed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err != nil || mt != "text/event-stream" {
		return chatterbox.NewError(chatterbox.ErrorTransportClosed, "unexpected content type "+resp.Header.Get("Content-Type"))
	}

	if !emit(chatterbox.Event{Category: chatterbox.CategoryOpen}) {
		return ctx.Err()
	}

	reader := internal.NewSSEReader(resp.Body)
	for {
		ev, err := reader.ReadEvent()
		if id := reader.LastEventID(); id != "" {
			st.lastID = id
		}
		if r := reader.Retry(); r > 0 {
			st.retry = r
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if !emit(relayEvent(ev.Name, ev.Data)) {
			return ctx.Err()
		}
	}
}
