// Package tui is the terminal front end of the chatterbox CLI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

// Session is the part of *chatterbox.Session the view drives.
type Session interface {
	Submit(ctx context.Context, line string) error
	Complete(ctx context.Context, input string) (string, error)
	SetVisible(ctx context.Context, visible bool) error
	Reconnect(ctx context.Context) error
}

// Model is the Bubble Tea model for one chat session.
//
// Session calls block on the session's event loop, which in turn blocks on
// Program.Send while delivering output, so they only ever run inside
// commands and never in Update.
type Model struct {
	ctx     context.Context
	session Session
	title   string

	history *chatterbox.History
	roster  []string
	topic   string
	state   chatterbox.ConnectionState
	pending int
	status  string

	viewport viewport.Model
	input    textinput.Model
	width    int
	height   int
}

// New returns a model driving session. title is shown until the relay sends
// a topic.
func New(ctx context.Context, session Session, title string) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "message or /command"
	in.PromptStyle = stateStyle(chatterbox.StateConnecting)
	in.Focus()

	return Model{
		ctx:      ctx,
		session:  session,
		title:    title,
		history:  chatterbox.NewHistory(),
		state:    chatterbox.StateConnecting,
		status:   "tab completes nicks, ctrl+r reconnects. " + strings.Join(chatterbox.Usage(), "  "),
		viewport: viewport.New(0, 0),
		input:    in,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(windowTitle(0)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			return m, m.submit(line)
		case tea.KeyTab:
			return m, m.complete(m.input.Value())
		case tea.KeyCtrlR:
			m.status = "reconnecting"
			return m, m.reconnect()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.FocusMsg:
		return m, m.setVisible(true)
	case tea.BlurMsg:
		return m, m.setVisible(false)

	case entryMsg:
		m.history.Append(msg.entry)
		m.refresh()
		return m, nil
	case rosterMsg:
		m.roster = msg
		return m, nil
	case topicMsg:
		m.topic = string(msg)
		return m, nil
	case stateMsg:
		m.state = chatterbox.ConnectionState(msg)
		m.input.PromptStyle = stateStyle(m.state)
		return m, nil
	case pendingMsg:
		m.pending = int(msg)
		return m, tea.SetWindowTitle(windowTitle(m.pending))
	case completedMsg:
		// Drop completions for input that has since changed.
		if m.input.Value() == msg.input {
			m.input.SetValue(msg.output)
			m.input.CursorEnd()
		}
		return m, nil
	case errMsg:
		m.status = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		stateStyle(m.state).Render("["+m.state.String()+"]"),
		headerStyle.Render(m.headline()),
	)
	body := m.viewport.View()
	if w := m.rosterWidth(); w > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.rosterView(w))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.input.View(),
		statusStyle.Render(m.status),
	)
}

func (m Model) headline() string {
	if m.topic != "" {
		return m.topic
	}
	return m.title
}

// rosterWidth is 0 on terminals too narrow for the roster column.
func (m Model) rosterWidth() int {
	if m.width < 3*rosterWidth {
		return 0
	}
	return rosterWidth
}

func (m Model) rosterView(width int) string {
	names := make([]string, len(m.roster))
	for i, n := range m.roster {
		names[i] = runewidth.Truncate(n, width-2, "…")
	}
	return rosterStyle.
		Width(width - 1).
		Height(m.viewport.Height).
		Render(strings.Join(names, "\n"))
}

func (m *Model) layout() {
	m.viewport.Width = m.width - m.rosterWidth()
	// Header, input and status lines.
	m.viewport.Height = max(m.height-3, 1)
	m.input.Width = max(m.width-len(m.input.Prompt)-1, 1)
	m.refresh()
}

// refresh re-renders history into the viewport, following the tail unless
// the user has scrolled up.
func (m *Model) refresh() {
	follow := m.viewport.AtBottom()
	entries := m.history.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = formatEntry(e)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

// formatEntry renders an entry for the terminal: markup is stripped from the
// body and links are highlighted.
func formatEntry(e chatterbox.ChatEntry) string {
	text := chatterbox.Render(chatterbox.TemplateFor(e.Category), map[string]string{
		"mode":    e.Category.String(),
		"when":    e.Timestamp,
		"sender":  e.Sender,
		"target":  e.Target,
		"message": highlightLinks(PlainText(e.Body), linkStyle),
	})
	if st, ok := categoryStyles[e.Category]; ok {
		return st.Render(text)
	}
	return text
}

func windowTitle(pending int) string {
	if pending == 0 {
		return "chatterbox"
	}
	return fmt.Sprintf("(%d) chatterbox", pending)
}

func (m Model) submit(line string) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Submit(m.ctx, line); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m Model) complete(input string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Complete(m.ctx, input)
		if err != nil {
			return errMsg{err: err}
		}
		return completedMsg{input: input, output: out}
	}
}

func (m Model) setVisible(visible bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.session.SetVisible(m.ctx, visible); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m Model) reconnect() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Reconnect(m.ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}
