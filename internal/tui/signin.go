package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/ui"
)

type signInScreen struct{}

func (s *signInScreen) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		return tea.Quit
	}
	return nil
}

func (s *signInScreen) View() string {
	return ui.Hero("Sign in required", "Run `tasks login` to sign in, then start tasks again.") +
		"\n\n" + ui.Help("press any key to exit") + "\n"
}
