package page

import (
	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/auth"
	"tasks/internal/service"
)

// Router navigates between screens.
type Router interface {
	Push(path string) tea.Cmd
}

// AuthResolvedMsg carries the outcome of resolving the current identity.
type AuthResolvedMsg struct {
	Identity auth.Identity
	Err      error

	from *Model
}

// SetFilterMsg selects a filter.
type SetFilterMsg struct{ Filter Filter }

// SetSortMsg selects a sort order.
type SetSortMsg struct{ Sort Sort }

// RetryMsg requests a fresh fetch after a network error.
type RetryMsg struct{}

// DismissErrorMsg hides the current error.
type DismissErrorMsg struct{}

// RequestDeleteMsg asks for confirmation before deleting task ID.
type RequestDeleteMsg struct{ ID string }

// ConfirmDeleteMsg answers the pending delete confirmation.
type ConfirmDeleteMsg struct{ Confirmed bool }

// ToggleMsg flips the completion state of task ID.
type ToggleMsg struct{ ID string }

// Messages produced by a page's own commands carry the page that issued
// them, so a page never acts on results addressed to an earlier page.
type owned interface {
	owner() *Model
}

type tasksLoadedMsg struct {
	from  *Model
	seq   int
	tasks []service.Task
	err   error
}

type taskDeletedMsg struct {
	from *Model
	id   string
	err  error
}

type taskToggledMsg struct {
	from *Model
	id   string
	task service.Task
	err  error
}

type clearSuccessMsg struct {
	from *Model
	gen  int
}

type redirectMsg struct {
	from *Model
	path string
}

func (msg AuthResolvedMsg) owner() *Model { return msg.from }
func (msg tasksLoadedMsg) owner() *Model  { return msg.from }
func (msg taskDeletedMsg) owner() *Model  { return msg.from }
func (msg taskToggledMsg) owner() *Model  { return msg.from }
func (msg clearSuccessMsg) owner() *Model { return msg.from }
func (msg redirectMsg) owner() *Model     { return msg.from }
