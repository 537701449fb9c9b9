// Package relay connects a chatterbox session to a chat relay over HTTP:
// outgoing requests are form POSTs to the session endpoint, and the
// push-stream is Server-Sent Events or a WebSocket.
package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

// Client sends requests to the relay. The relay identifies a participant by
// cookie, so transports built from a Client share its cookie jar.
type Client struct {
	endpoint   string
	opts       Options
	logger     chatterbox.Logger
	limiter    *rate.Limiter
	httpClient *http.Client
	// streamClient shares the jar and transport but has no overall timeout.
	streamClient *http.Client
}

// NewClient creates a client for the relay rooted at endpoint.
func NewClient(endpoint string, opts Options) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	transport := http.DefaultTransport
	return &Client{
		endpoint: endpoint,
		opts:     opts,
		logger:   opts.logger(),
		limiter:  rate.NewLimiter(opts.SendLimit, max(opts.SendBurst, 1)),
		httpClient: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   opts.RequestTimeout,
		},
		streamClient: &http.Client{
			Jar:       jar,
			Transport: transport,
		},
	}, nil
}

// SetHTTPTransport replaces the round tripper used for requests and streams.
func (c *Client) SetHTTPTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.httpClient.Transport = rt
	c.streamClient.Transport = rt
}

// Endpoint returns the session endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Send posts req to the session endpoint as a form. It waits for the send
// limiter but never retries.
func (c *Client) Send(ctx context.Context, req chatterbox.Request) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for send slot: %w", err)
	}

	id := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(req.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("X-Request-Id", id)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return chatterbox.WrapError(chatterbox.ErrorRequestFailed, "http request", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	fields := map[string]any{"mode": req.Category.String(), "request_id": id, "status": resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("relay rate limit hit", fields)
		return chatterbox.NewError(chatterbox.ErrorRateLimited, fmt.Sprintf("request %s rejected (status %d)", id, resp.StatusCode))
	case resp.StatusCode >= 400:
		return chatterbox.NewError(chatterbox.ErrorRequestFailed, fmt.Sprintf("request %s failed (status %d)", id, resp.StatusCode))
	}
	c.logger.Debug("request sent", fields)
	return nil
}
