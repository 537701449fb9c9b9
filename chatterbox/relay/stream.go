package relay

import (
	"context"
	"errors"
	"time"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

// emitFunc delivers one event to the session. It returns false once the
// stream has been closed.
type emitFunc func(chatterbox.Event) bool

// attachFunc establishes one connection and pumps its events until it fails.
// It emits an open event once connected. Returning an error for which
// chatterbox.IsClosed holds ends the stream; any other error is followed by
// a retry after the delay returned by retry.
type attachFunc func(ctx context.Context, emit emitFunc) error

// stream implements chatterbox.Stream on top of an attachFunc, re-attaching
// after network failures the way a browser EventSource does.
type stream struct {
	events chan chatterbox.Event
	cancel context.CancelFunc
	done   chan struct{}
}

func startStream(parent context.Context, logger chatterbox.Logger, attach attachFunc, retry func() time.Duration) *stream {
	ctx, cancel := context.WithCancel(parent)
	st := &stream{
		events: make(chan chatterbox.Event),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go st.run(ctx, logger, attach, retry)
	return st
}

func (st *stream) Events() <-chan chatterbox.Event { return st.events }

// Close stops the stream and waits for its goroutine to exit.
func (st *stream) Close() error {
	st.cancel()
	<-st.done
	return nil
}

func (st *stream) run(ctx context.Context, logger chatterbox.Logger, attach attachFunc, retry func() time.Duration) {
	defer close(st.done)
	defer close(st.events)

	emit := func(ev chatterbox.Event) bool {
		select {
		case st.events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		err := attach(ctx, emit)
		if ctx.Err() != nil {
			return
		}
		if chatterbox.IsClosed(err) {
			emit(chatterbox.Event{Category: chatterbox.CategoryError, Err: err})
			return
		}
		if err == nil {
			err = errors.New("connection ended")
		}
		delay := retry()
		logger.Debug("stream interrupted", map[string]any{"error": err.Error(), "retry_in": delay.String()})
		if !emit(chatterbox.Event{
			Category: chatterbox.CategoryError,
			Err:      chatterbox.WrapError(chatterbox.ErrorTransport, "stream interrupted", err),
		}) {
			return
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// relayEvent converts a named relay event. Names reserved for transport
// events cannot be produced by the relay and are treated as unknown.
func relayEvent(name string, data []byte) chatterbox.Event {
	c := chatterbox.ParseCategory(name)
	if c == chatterbox.CategoryOpen || c == chatterbox.CategoryError {
		c = chatterbox.CategoryUnknown
	}
	return chatterbox.Event{Category: c, Name: name, Data: data}
}
