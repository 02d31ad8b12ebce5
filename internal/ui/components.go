package ui

import (
	"fmt"
	"strings"
)

// Hero is the page heading.
func Hero(title, subtitle string) string {
	if subtitle == "" {
		return titleStyle.Render(title)
	}
	return titleStyle.Render(title) + "\n" + subtitleStyle.Render(subtitle)
}

// SuccessMessage renders a transient confirmation.
func SuccessMessage(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// ErrorAlert renders an error. When retry is set the alert offers the retry key.
func ErrorAlert(msg string, retry bool) string {
	body := "✗ " + msg
	if retry {
		body += "\n" + helpStyle.Render("press r to retry")
	}
	return errorStyle.Render(body)
}

// ConfirmPrompt renders a yes/no question.
func ConfirmPrompt(question string) string {
	return promptStyle.Render(question) + " " + helpStyle.Render("[y/N]")
}

// Loading renders a spinner frame next to text.
func Loading(spinner, text string) string {
	if spinner == "" {
		return text
	}
	return spinner + " " + text
}

// FilterTab is one entry of the filter bar.
type FilterTab struct {
	Label  string
	Count  int
	Active bool
}

// FilterBar renders the filter tabs with their counts.
func FilterBar(tabs []FilterTab) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s (%d)", i+1, tab.Label, tab.Count)
		if tab.Active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

// SortDropdown renders the current sort choice.
func SortDropdown(label string) string {
	return subtitleStyle.Render("Sort: ") + label
}

// TaskItem is one row of the task list.
type TaskItem struct {
	ID          string
	Title       string
	Description string
	Completed   bool
}

// TaskList renders items with a cursor on the row at index cursor.
// An empty list renders emptyText.
func TaskList(items []TaskItem, cursor int, emptyText string) string {
	if len(items) == 0 {
		return subtitleStyle.Render(emptyText)
	}
	var b strings.Builder
	for i, item := range items {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		if item.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s", pointer, check, title)
		if item.Description != "" {
			b.WriteString("\n")
			b.WriteString(descStyle.Render(item.Description))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Help renders a key binding hint line.
func Help(bindings ...string) string {
	return helpStyle.Render(strings.Join(bindings, " • "))
}
