package chatterbox

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Session is a chat session client. It owns the push-stream, routes its
// events, and holds the session state: connection state, roster, topic,
// history and pending count.
//
// All state is mutated from the goroutine running Run. Other goroutines
// reach it through Submit, Complete, SetVisible, Reconnect and Snapshot,
// which are queued onto that loop.
type Session struct {
	cfg        Config
	logger     Logger
	transport  Transport
	sender     Sender
	display    Display
	dispatcher Dispatcher
	now        func() time.Time

	onStateChanged func(StateEvent)

	// Owned by the event loop.
	runCtx     context.Context
	state      ConnectionState
	stream     Stream
	events     <-chan Event
	reconnectC <-chan time.Time
	connects   int
	history    *History
	roster     Roster
	topic      Topic
	pending    *Pending

	writeCh chan Request
	ops     chan func()

	mu      sync.Mutex
	started bool
	stopped chan struct{}
}

// NewSession constructs a session with provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func NewSession(cfg Config, transport Transport, sender Sender) *Session {
	s := &Session{
		cfg:       cfg,
		logger:    noopLogger{},
		transport: transport,
		sender:    sender,
		display:   noopDisplay{},
		now:       time.Now,
		history:   NewHistory(),
		pending:   NewPending(nil),
		ops:       make(chan func()),
		stopped:   make(chan struct{}),
	}
	s.dispatcher.SetOnOpen(s.handleOpen)
	s.dispatcher.SetOnStreamError(s.handleStreamError)
	s.dispatcher.SetOnEntry(s.handleEntry)
	s.dispatcher.SetOnTopic(s.handleTopic)
	s.dispatcher.SetOnNames(s.handleNames)
	s.dispatcher.SetOnUnknown(s.handleUnknown)
	s.dispatcher.SetOnError(s.handleMalformed)
	return s
}

// SetLogger overrides logger (optional). Call before Run.
func (s *Session) SetLogger(l Logger) {
	if l == nil {
		return
	}
	s.logger = l
}

// SetDisplay sets the rendering surface (optional). Call before Run.
func (s *Session) SetDisplay(d Display) {
	if d == nil {
		return
	}
	s.display = d
}

// SetPendingSink sets where the unread count is reported (optional). Call
// before Run.
func (s *Session) SetPendingSink(sink PendingSink) {
	s.pending = NewPending(sink)
}

// OnStateChanged registers callback for connection state changes. Call
// before Run.
func (s *Session) OnStateChanged(fn func(StateEvent)) { s.onStateChanged = fn }

// Run connects and processes events until ctx is cancelled. A session runs
// at most once.
func (s *Session) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if s.transport == nil || s.sender == nil {
		return NewError(ErrorInvalidConfig, "transport and sender are required")
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("session already started")
	}
	s.started = true
	s.mu.Unlock()
	defer close(s.stopped)

	runCtx, cancel := context.WithCancel(ctx)
	s.runCtx = runCtx
	s.writeCh = make(chan Request, s.cfg.QueueSize)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writeLoop(runCtx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	ticker := time.NewTicker(s.cfg.NamesInterval)
	defer ticker.Stop()

	s.connect()
	defer s.closeStream()

	for {
		select {
		case <-runCtx.Done():
			s.logger.Info("session stopped", map[string]any{"connects": s.connects})
			return nil
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				if runCtx.Err() == nil {
					s.handleStreamError(WrapError(ErrorTransportClosed, "event channel closed", nil))
				}
				continue
			}
			s.dispatcher.Dispatch(ev)
		case <-ticker.C:
			s.requestBackground(Request{Category: CategoryNames})
		case <-s.reconnectC:
			s.reconnectC = nil
			s.connect()
		case op := <-s.ops:
			op()
		}
	}
}

// Submit encodes one line of user input and sends it. Blank input and
// commands missing their text are dropped without error. A full outbound
// queue is reported as ErrQueueFull.
func (s *Session) Submit(ctx context.Context, line string) error {
	req, err := EncodeCommand(line)
	if errors.Is(err, ErrUnsendable) {
		s.logger.Debug("dropping unsendable input", map[string]any{"input": line})
		return nil
	}
	if err != nil {
		return err
	}
	return s.Send(ctx, req)
}

// Send queues a request for the relay. It returns ErrQueueFull when the
// write loop is too far behind to take it.
func (s *Session) Send(ctx context.Context, req Request) error {
	var queued error
	if err := s.do(ctx, func() { queued = s.request(req) }); err != nil {
		return err
	}
	return queued
}

// Complete expands the trailing word of input against the current roster.
func (s *Session) Complete(ctx context.Context, input string) (string, error) {
	var out string
	if err := s.do(ctx, func() { out = Complete(input, s.roster.names) }); err != nil {
		return input, err
	}
	return out, nil
}

// SetVisible reports whether the view is visible. Becoming visible clears
// the pending count.
func (s *Session) SetVisible(ctx context.Context, visible bool) error {
	return s.do(ctx, func() { s.pending.SetVisible(visible) })
}

// Reconnect tears down the current stream and opens a new one.
func (s *Session) Reconnect(ctx context.Context) error {
	return s.do(ctx, s.reconnect)
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	State    ConnectionState
	Topic    string
	Roster   []string
	Pending  int
	History  []ChatEntry
	Connects int
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func() {
		snap = Snapshot{
			State:    s.state,
			Topic:    s.topic.String(),
			Roster:   s.roster.Names(),
			Pending:  s.pending.Count(),
			History:  s.history.Entries(),
			Connects: s.connects,
		}
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// do runs fn on the event loop and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return ErrNotRunning
	}

	done := make(chan struct{})
	op := func() {
		defer close(done)
		fn()
	}
	select {
	case s.ops <- op:
	case <-s.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) connect() {
	s.closeStream()
	s.connects++
	s.setState(StateConnecting, nil)
	s.logger.Debug("opening stream", map[string]any{"url": s.cfg.URL, "attempt": s.connects})
	s.stream = s.transport.Open(s.runCtx, s.cfg.URL)
	s.events = s.stream.Events()
}

func (s *Session) reconnect() {
	s.reconnectC = nil
	s.connect()
}

func (s *Session) closeStream() {
	if s.stream == nil {
		return
	}
	if err := s.stream.Close(); err != nil {
		s.logger.Debug("stream close", map[string]any{"error": err.Error()})
	}
	s.stream = nil
	s.events = nil
}

func (s *Session) setState(state ConnectionState, err error) {
	old := s.state
	if old == state && state != StateConnecting {
		return
	}
	s.state = state
	s.display.SetState(state)
	if s.onStateChanged != nil {
		s.onStateChanged(StateEvent{OldState: old, NewState: state, Error: err})
	}
}

// request hands req to the write loop without blocking the event loop.
func (s *Session) request(req Request) error {
	select {
	case s.writeCh <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

// requestBackground queues a request the session makes on its own behalf.
// The names probe repeats, so a dropped one is only logged.
func (s *Session) requestBackground(req Request) {
	if err := s.request(req); err != nil {
		s.logger.Warn("outbound queue full, dropping request", map[string]any{"mode": req.Category.String()})
	}
}

func (s *Session) handleOpen() {
	s.setState(StateReady, nil)
	s.requestBackground(Request{Category: CategoryNames})
	s.requestBackground(Request{Category: CategoryTopic})
}

func (s *Session) handleStreamError(err error) {
	if !IsClosed(err) {
		s.logger.Warn("stream error", map[string]any{"error": err.Error()})
		s.setState(StateError, err)
		return
	}
	s.logger.Info("stream closed, reconnecting", map[string]any{"error": err.Error(), "delay": s.cfg.ReconnectDelay.String()})
	s.setState(StateDisconnected, err)
	s.closeStream()
	if s.cfg.ReconnectDelay > 0 {
		s.reconnectC = time.After(s.cfg.ReconnectDelay)
		return
	}
	s.connect()
}

func (s *Session) handleEntry(c Category, p Payload) {
	if c == CategoryJoin || c == CategoryNick {
		s.requestBackground(Request{Category: CategoryNames})
	}
	e := RenderEntry(c, p, s.now())
	s.history.Append(e)
	s.display.AppendEntry(e)
	s.pending.EntryRendered()
}

func (s *Session) handleTopic(p Payload) {
	s.topic.Set(p.Message)
	s.display.SetTopic(p.Message)
}

func (s *Session) handleNames(p NamesPayload) {
	s.roster.Replace(p.Message)
	s.display.SetRoster(s.roster.Names())
}

func (s *Session) handleUnknown(ev Event) {
	s.logger.Debug("ignoring event", map[string]any{"event": ev.Name})
}

func (s *Session) handleMalformed(err error) {
	s.logger.Warn("dropping malformed event", map[string]any{"error": err.Error()})
}

func (s *Session) writeLoop(ctx context.Context) {
	for {
		select {
		case req := <-s.writeCh:
			if err := s.sender.Send(ctx, req); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("send failed", map[string]any{"mode": req.Category.String(), "error": err.Error()})
			}
		case <-ctx.Done():
			return
		}
	}
}
