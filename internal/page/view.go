package page

import (
	"strings"

	"tasks/internal/ui"
)

// View renders the page.
func (m *Model) View() string {
	spin := ""
	if m.animate {
		spin = m.spinner.View()
	}
	if m.authLoading {
		return ui.Loading(spin, "Authenticating...") + "\n"
	}
	if m.user == "" {
		return ui.Loading(spin, "Redirecting to sign in...") + "\n"
	}

	views, counts := m.Derived()
	sections := []string{ui.Hero("My Tasks", "Manage your tasks and stay organized")}

	if m.successMsg != "" {
		sections = append(sections, ui.SuccessMessage(m.successMsg))
	}
	if m.errMsg != "" {
		sections = append(sections, ui.ErrorAlert(m.errMsg, m.CanRetry()))
	}

	tabs := make([]ui.FilterTab, 0, len(Filters))
	for _, f := range Filters {
		tabs = append(tabs, ui.FilterTab{Label: f.Label(), Count: counts.For(f), Active: f == m.filter})
	}
	sections = append(sections, ui.FilterBar(tabs), ui.SortDropdown(m.sort.Label()))

	if m.loading {
		sections = append(sections, ui.Loading(spin, "Loading tasks..."))
	} else {
		items := make([]ui.TaskItem, 0, len(views))
		for _, v := range views {
			items = append(items, ui.TaskItem{
				ID:          v.ID,
				Title:       v.Title,
				Description: v.Description,
				Completed:   v.Status == StatusCompleted,
			})
		}
		sections = append(sections, ui.TaskList(items, m.cursor, emptyText(m.filter)))
	}

	if _, ok := m.ConfirmingDelete(); ok {
		sections = append(sections, ui.ConfirmPrompt("Are you sure you want to delete this task?"))
	} else {
		help := []string{"j/k move", "x toggle", "d delete", "f filter", "s sort", "n new", "q quit"}
		if m.CanRetry() {
			help = append(help, "r retry")
		}
		sections = append(sections, ui.Help(help...))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func emptyText(f Filter) string {
	switch f {
	case FilterActive:
		return "No active tasks."
	case FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Press n to create one."
	}
}
