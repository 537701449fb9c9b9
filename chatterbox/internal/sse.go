package internal

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"time"
)

// MaxLineSize is the maximum allowed size of a single SSE line (64KB).
const MaxLineSize = 64 * 1024

// ErrLineTooLong is returned when a line exceeds MaxLineSize.
var ErrLineTooLong = errors.New("sse: line too long")

// SSEEvent is one dispatched Server-Sent Event.
type SSEEvent struct {
	Name string // "message" when the event has no event: field
	Data []byte // data: lines joined with "\n"
	ID   string // last event ID in effect when the event was dispatched
}

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
	lastID string
	retry  time.Duration
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// LastEventID returns the most recent id: field seen on the stream.
func (s *SSEReader) LastEventID() string { return s.lastID }

// Retry returns the reconnection time most recently sent by the server, or 0.
func (s *SSEReader) Retry() time.Duration { return s.retry }

// ReadEvent reads the next event from the stream. Events without data are
// skipped. An event cut off by the end of the stream is discarded and io.EOF
// is returned.
func (s *SSEReader) ReadEvent() (SSEEvent, error) {
	var name string
	var data [][]byte
	hasData := false

	for {
		line, err := s.readLine()
		if err != nil {
			return SSEEvent{}, err
		}

		if len(line) == 0 {
			if hasData {
				if name == "" {
					name = "message"
				}
				return SSEEvent{Name: name, Data: bytes.Join(data, []byte("\n")), ID: s.lastID}, nil
			}
			name = ""
			continue
		}

		// Comment
		if line[0] == ':' {
			continue
		}

		field, value := line, []byte(nil)
		if i := bytes.IndexByte(line, ':'); i >= 0 {
			field, value = line[:i], line[i+1:]
			value = bytes.TrimPrefix(value, []byte(" "))
		}

		switch string(field) {
		case "event":
			name = string(value)
		case "data":
			data = append(data, append([]byte(nil), value...))
			hasData = true
		case "id":
			if bytes.IndexByte(value, 0) < 0 {
				s.lastID = string(value)
			}
		case "retry":
			if ms, err := strconv.Atoi(string(value)); err == nil && ms >= 0 {
				s.retry = time.Duration(ms) * time.Millisecond
			}
		}
	}
}

// readLine returns the next line without its CRLF or LF terminator.
func (s *SSEReader) readLine() ([]byte, error) {
	var line []byte
	for {
		chunk, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, chunk...)
		if len(line) > MaxLineSize {
			return nil, ErrLineTooLong
		}
		if !isPrefix {
			return bytes.TrimSuffix(line, []byte("\r")), nil
		}
	}
}
