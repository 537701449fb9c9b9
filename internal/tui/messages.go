package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

type (
	entryMsg   struct{ entry chatterbox.ChatEntry }
	rosterMsg  []string
	topicMsg   string
	stateMsg   chatterbox.ConnectionState
	pendingMsg int

	// completedMsg carries a completion for the input it was computed from.
	completedMsg struct {
		input  string
		output string
	}

	errMsg struct{ err error }
)

// Sink forwards session output to a running program. It implements
// chatterbox.Display and chatterbox.PendingSink.
type Sink struct {
	send func(tea.Msg)
}

// NewSink returns a sink delivering to p.
func NewSink(p *tea.Program) *Sink {
	return &Sink{send: p.Send}
}

func (s *Sink) AppendEntry(e chatterbox.ChatEntry)        { s.send(entryMsg{entry: e}) }
func (s *Sink) SetRoster(names []string)                  { s.send(rosterMsg(names)) }
func (s *Sink) SetTopic(topic string)                     { s.send(topicMsg(topic)) }
func (s *Sink) SetState(state chatterbox.ConnectionState) { s.send(stateMsg(state)) }
func (s *Sink) SetPending(n int)                          { s.send(pendingMsg(n)) }
func (s *Sink) ClearPending()                             { s.send(pendingMsg(0)) }
