package internal

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEReaderEvents(t *testing.T) {
	stream := ": keepalive\n" +
		"retry: 1500\n" +
		"\n" +
		"event: message\n" +
		"id: 7\n" +
		"data: {\"message\":\"hi\"}\n" +
		"\n" +
		"event:names\r\n" +
		"data: [1,\r\n" +
		"data:2]\r\n" +
		"\r\n" +
		"data: plain\n" +
		"\n" +
		"event: partial\n" +
		"data: cut off"

	r := NewSSEReader(strings.NewReader(stream))

	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "message", ev.Name)
	assert.Equal(t, `{"message":"hi"}`, string(ev.Data))
	assert.Equal(t, "7", ev.ID)
	assert.Equal(t, 1500*time.Millisecond, r.Retry())

	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "names", ev.Name)
	assert.Equal(t, "[1,\n2]", string(ev.Data))
	assert.Equal(t, "7", ev.ID)

	ev, err = r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "message", ev.Name)
	assert.Equal(t, "plain", string(ev.Data))

	_, err = r.ReadEvent()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "7", r.LastEventID())
}

func TestSSEReaderSkipsEventsWithoutData(t *testing.T) {
	r := NewSSEReader(strings.NewReader("event: topic\n\nevent: join\ndata: {}\n\n"))

	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "join", ev.Name)
}

func TestSSEReaderIgnoresBadFields(t *testing.T) {
	r := NewSSEReader(strings.NewReader("id: 1\nretry: soon\nid: a\x00b\nbogus: x\ndata\n\n"))

	ev, err := r.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "", string(ev.Data))
	assert.Equal(t, "1", r.LastEventID())
	assert.Zero(t, r.Retry())
}

func TestSSEReaderLineTooLong(t *testing.T) {
	r := NewSSEReader(strings.NewReader("data: " + strings.Repeat("x", MaxLineSize) + "\n\n"))
	_, err := r.ReadEvent()
	assert.ErrorIs(t, err, ErrLineTooLong)
}
