package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

type fakeSession struct {
	submitted  []string
	visible    []bool
	reconnects int
	roster     []string
	err        error
}

func (f *fakeSession) Submit(_ context.Context, line string) error {
	f.submitted = append(f.submitted, line)
	return f.err
}

func (f *fakeSession) Complete(_ context.Context, input string) (string, error) {
	return chatterbox.Complete(input, f.roster), f.err
}

func (f *fakeSession) SetVisible(_ context.Context, visible bool) error {
	f.visible = append(f.visible, visible)
	return f.err
}

func (f *fakeSession) Reconnect(context.Context) error {
	f.reconnects++
	return f.err
}

func newTestModel(t *testing.T, s Session) Model {
	t.Helper()
	m := New(context.Background(), s, "http://relay.test/")
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModelSubmit(t *testing.T) {
	s := &fakeSession{}
	m := newTestModel(t, s)
	m.input.SetValue("/me waves")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Empty(t, s.submitted, "submit runs in the command")

	assert.Nil(t, cmd())
	assert.Equal(t, []string{"/me waves"}, s.submitted)
}

func TestModelSubmitError(t *testing.T) {
	s := &fakeSession{err: chatterbox.ErrNotRunning}
	m := newTestModel(t, s)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, cmd())
	assert.Equal(t, chatterbox.ErrNotRunning.Error(), m.status)
}

func TestModelComplete(t *testing.T) {
	s := &fakeSession{roster: []string{"alice", "albert", "bob"}}
	m := newTestModel(t, s)
	m.input.SetValue("al")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, completedMsg{input: "al", output: "alice: "}, msg)

	m = update(t, m, msg)
	assert.Equal(t, "alice: ", m.input.Value())
}

func TestModelDropsStaleCompletion(t *testing.T) {
	m := newTestModel(t, &fakeSession{})
	m.input.SetValue("hello b")

	m = update(t, m, completedMsg{input: "b", output: "bob: "})
	assert.Equal(t, "hello b", m.input.Value())
}

func TestModelVisibility(t *testing.T) {
	s := &fakeSession{}
	m := newTestModel(t, s)

	m, cmd := updateCmd(t, m, tea.BlurMsg{})
	cmd()
	_, cmd = updateCmd(t, m, tea.FocusMsg{})
	cmd()

	assert.Equal(t, []bool{false, true}, s.visible)
}

func TestModelReconnect(t *testing.T) {
	s := &fakeSession{}
	m := newTestModel(t, s)

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	cmd()
	assert.Equal(t, 1, s.reconnects)
	assert.Equal(t, "reconnecting", m.status)
}

func TestModelRendersSessionOutput(t *testing.T) {
	m := newTestModel(t, &fakeSession{})

	m = update(t, m, entryMsg{entry: chatterbox.RenderEntry(chatterbox.CategoryMessage,
		chatterbox.Payload{Message: "hi &amp; bye", Sender: "bob", When: "09:00:00"}, time.Time{})})
	m = update(t, m, rosterMsg{"alice", "bob"})
	m = update(t, m, topicMsg("welcome to #general"))
	m = update(t, m, stateMsg(chatterbox.StateReady))

	view := m.View()
	assert.Contains(t, view, "[09:00:00] <bob> hi & bye")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "welcome to #general")
	assert.Contains(t, view, "[ready]")
	assert.Equal(t, 1, m.history.Len())
}

func TestModelPending(t *testing.T) {
	m := newTestModel(t, &fakeSession{})

	m, cmd := updateCmd(t, m, pendingMsg(3))
	assert.NotNil(t, cmd)
	assert.Equal(t, 3, m.pending)

	m = update(t, m, pendingMsg(0))
	assert.Equal(t, 0, m.pending)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &fakeSession{})
	_, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "chatterbox", windowTitle(0))
	assert.Equal(t, "(4) chatterbox", windowTitle(4))
}

func TestSinkForwardsToProgram(t *testing.T) {
	var got []tea.Msg
	s := &Sink{send: func(msg tea.Msg) { got = append(got, msg) }}

	var _ chatterbox.Display = s
	var _ chatterbox.PendingSink = s

	s.SetTopic("t")
	s.SetState(chatterbox.StateError)
	s.SetPending(2)
	s.ClearPending()

	assert.Equal(t, []tea.Msg{topicMsg("t"), stateMsg(chatterbox.StateError), pendingMsg(2), pendingMsg(0)}, got)
}

func TestModelShowsErrors(t *testing.T) {
	m := newTestModel(t, &fakeSession{})
	m = update(t, m, errMsg{err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")
}
