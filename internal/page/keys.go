package page

import tea "github.com/charmbracelet/bubbletea"

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.pendingDelete != "" {
		return m.send(ConfirmDeleteMsg{Confirmed: key == "y" || key == "Y"})
	}
	if m.authLoading || m.user == "" {
		if key == "q" {
			return tea.Quit
		}
		return nil
	}

	switch key {
	case "q":
		return tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case " ", "x":
		if id, ok := m.selected(); ok {
			return m.send(ToggleMsg{ID: id})
		}
	case "d":
		if id, ok := m.selected(); ok {
			return m.send(RequestDeleteMsg{ID: id})
		}
	case "f":
		return m.send(SetFilterMsg{Filter: m.filter.Next()})
	case "1", "2", "3":
		return m.send(SetFilterMsg{Filter: Filters[key[0]-'1']})
	case "s":
		return m.send(SetSortMsg{Sort: m.sort.Next()})
	case "r":
		if m.CanRetry() {
			return m.send(RetryMsg{})
		}
	case "esc":
		m.clearError()
	case "n":
		return m.router.Push(NewTaskPath)
	}
	return nil
}

func (m *Model) send(msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// selected returns the id of the task under the cursor.
func (m *Model) selected() (string, bool) {
	views, _ := m.Derived()
	if m.cursor < 0 || m.cursor >= len(views) {
		return "", false
	}
	return views[m.cursor].ID, true
}

func (m *Model) clampCursor() {
	views, _ := m.Derived()
	if m.cursor >= len(views) {
		m.cursor = len(views) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
