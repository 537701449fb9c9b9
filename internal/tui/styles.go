package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/funkybob/aio-mini-chat/chatterbox"
)

const rosterWidth = 18

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingLeft(1)
	statusStyle = lipgloss.NewStyle().Faint(true)
	linkStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12"))
	rosterStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			PaddingLeft(1)

	stateStyles = map[chatterbox.ConnectionState]lipgloss.Style{
		chatterbox.StateConnecting:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		chatterbox.StateReady:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		chatterbox.StateError:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		chatterbox.StateDisconnected: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}

	categoryStyles = map[chatterbox.Category]lipgloss.Style{
		chatterbox.CategoryAction:   lipgloss.NewStyle().Italic(true),
		chatterbox.CategoryJoin:     lipgloss.NewStyle().Faint(true),
		chatterbox.CategoryNick:     lipgloss.NewStyle().Faint(true),
		chatterbox.CategoryNote:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		chatterbox.CategoryDirected: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		chatterbox.CategoryAlert:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
)

func stateStyle(s chatterbox.ConnectionState) lipgloss.Style {
	if st, ok := stateStyles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
