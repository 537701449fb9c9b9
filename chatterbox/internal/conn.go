package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
)

// ErrMalformedFrame is returned by ReadFrame when a frame is not a
// [mode, content] envelope. The connection remains usable.
var ErrMalformedFrame = errors.New("malformed frame")

// Frame is one relay envelope: the event mode and its JSON payload.
type Frame struct {
	Mode string
	Data json.RawMessage
}

// Conn wraps websocket.Conn with a read timeout.
type Conn struct {
	ws          *websocket.Conn
	readTimeout time.Duration
}

func NewConn(ws *websocket.Conn, readTimeout time.Duration) *Conn {
	return &Conn{ws: ws, readTimeout: readTimeout}
}

// ReadFrame reads the next text message and decodes its envelope.
func (c *Conn) ReadFrame(ctx context.Context) (Frame, error) {
	if c.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.readTimeout)
		defer cancel()
	}
	typ, data, err := c.ws.Read(ctx)
	if err != nil {
		return Frame{}, err
	}
	if typ != websocket.MessageText {
		return Frame{}, fmt.Errorf("%w: unexpected binary message", ErrMalformedFrame)
	}
	return DecodeFrame(data)
}

// DecodeFrame decodes a JSON array [mode, content]. content is either a JSON
// string holding the payload document or the payload itself.
func DecodeFrame(data []byte) (Frame, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(parts) != 2 {
		return Frame{}, fmt.Errorf("%w: expected 2 elements, got %d", ErrMalformedFrame, len(parts))
	}
	var f Frame
	if err := json.Unmarshal(parts[0], &f.Mode); err != nil {
		return Frame{}, fmt.Errorf("%w: mode: %v", ErrMalformedFrame, err)
	}
	var content string
	if err := json.Unmarshal(parts[1], &content); err == nil {
		f.Data = json.RawMessage(content)
	} else {
		f.Data = parts[1]
	}
	return f, nil
}

func (c *Conn) Close(code websocket.StatusCode, reason string) error {
	return c.ws.Close(code, reason)
}
