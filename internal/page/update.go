package page

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/logging"
	"tasks/internal/service"
)

// Update applies msg to the page.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	if o, ok := msg.(owned); ok && o.owner() != nil && o.owner() != m {
		return m, nil
	}
	switch msg := msg.(type) {
	case AuthResolvedMsg:
		return m, m.handleAuth(msg)
	case tasksLoadedMsg:
		return m, m.handleLoaded(msg)
	case SetFilterMsg:
		m.filter = msg.Filter
		m.cursor = 0
		return m, m.reload()
	case SetSortMsg:
		m.sort = msg.Sort
		return m, m.reload()
	case RetryMsg:
		m.clearError()
		m.retryCount++
		return m, m.reload()
	case DismissErrorMsg:
		m.clearError()
		return m, nil
	case RequestDeleteMsg:
		m.pendingDelete = msg.ID
		return m, nil
	case ConfirmDeleteMsg:
		id := m.pendingDelete
		m.pendingDelete = ""
		if !msg.Confirmed || id == "" {
			return m, nil
		}
		return m, m.deleteTask(id)
	case ToggleMsg:
		return m, m.toggleTask(msg.ID)
	case taskDeletedMsg:
		return m, m.handleDeleted(msg)
	case taskToggledMsg:
		return m, m.handleToggled(msg)
	case clearSuccessMsg:
		if msg.gen == m.successGen {
			m.successMsg = ""
		}
		return m, nil
	case redirectMsg:
		return m, m.router.Push(msg.path)
	case spinner.TickMsg:
		if !m.animate {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleAuth(msg AuthResolvedMsg) tea.Cmd {
	m.authLoading = false
	if msg.Err != nil {
		m.log.Warn("resolve identity failed", logging.Fields{"error": msg.Err.Error()})
	}
	if msg.Err != nil || !msg.Identity.Authenticated() {
		m.user = ""
		m.loading = false
		if m.redirected {
			return nil
		}
		m.redirected = true
		m.log.Info("not signed in, redirecting", logging.Fields{"path": SignInPath})
		return m.router.Push(SignInPath)
	}
	m.user = msg.Identity.UserID
	return m.reload()
}

// reload starts a fetch if the load inputs changed since the last one.
func (m *Model) reload() tea.Cmd {
	if m.authLoading || m.user == "" {
		return nil
	}
	key := loadKey{user: m.user, filter: m.filter, sort: m.sort, retry: m.retryCount}
	if m.hasLoaded && key == m.lastLoad {
		return nil
	}
	m.lastLoad = key
	m.hasLoaded = true

	if m.loadCancel != nil {
		m.loadCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.loadCancel = cancel
	m.loadSeq++
	m.loading = true
	m.clearError()

	seq, svc, user := m.loadSeq, m.svc, m.user
	status, sortKey := m.filter.APIStatus(), m.sort.APIKey()
	m.log.Debug("loading tasks", logging.Fields{
		"seq":    seq,
		"status": string(status),
		"sort":   string(sortKey),
	})
	return func() tea.Msg {
		defer cancel()
		tasks, err := svc.ListTasks(ctx, user, status, sortKey)
		return tasksLoadedMsg{from: m, seq: seq, tasks: tasks, err: err}
	}
}

func (m *Model) handleLoaded(msg tasksLoadedMsg) tea.Cmd {
	if msg.seq != m.loadSeq {
		m.log.Debug("discarding stale load", logging.Fields{"seq": msg.seq, "latest": m.loadSeq})
		return nil
	}
	m.loading = false
	m.loadCancel = nil
	if msg.err != nil {
		m.log.Error("load tasks failed", logging.Fields{"error": msg.err.Error()})
		if m.setError(OpLoad, msg.err) == service.KindAuth {
			return m.redirectLater()
		}
		return nil
	}
	m.tasks = msg.tasks
	m.clearError()
	m.clampCursor()
	m.log.Debug("tasks loaded", logging.Fields{"count": len(msg.tasks)})
	return nil
}

func (m *Model) deleteTask(id string) tea.Cmd {
	if m.user == "" {
		return m.authFailure()
	}
	taskID, err := parseID(id)
	if err != nil {
		m.setError(OpDelete, err)
		return nil
	}
	ctx, svc, user := m.ctx, m.svc, m.user
	m.log.Debug("deleting task", logging.Fields{"id": id})
	return func() tea.Msg {
		return taskDeletedMsg{from: m, id: id, err: svc.DeleteTask(ctx, user, taskID)}
	}
}

func (m *Model) handleDeleted(msg taskDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("delete task failed", logging.Fields{"id": msg.id, "error": msg.err.Error()})
		kind := m.setError(OpDelete, msg.err)
		switch kind {
		case service.KindNotFound:
			m.removeTask(msg.id)
		case service.KindAuth:
			return m.redirectLater()
		}
		return nil
	}
	m.removeTask(msg.id)
	return m.setSuccess(DeleteSuccessMessage)
}

func (m *Model) toggleTask(id string) tea.Cmd {
	if m.user == "" {
		return m.authFailure()
	}
	taskID, err := parseID(id)
	if err != nil {
		m.setError(OpToggle, err)
		return nil
	}
	ctx, svc, user := m.ctx, m.svc, m.user
	m.log.Debug("toggling task", logging.Fields{"id": id})
	return func() tea.Msg {
		task, err := svc.ToggleTaskComplete(ctx, user, taskID)
		return taskToggledMsg{from: m, id: id, task: task, err: err}
	}
}

func (m *Model) handleToggled(msg taskToggledMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("toggle task failed", logging.Fields{"id": msg.id, "error": msg.err.Error()})
		kind := m.setError(OpToggle, msg.err)
		switch kind {
		case service.KindNotFound:
			m.removeTask(msg.id)
		case service.KindAuth:
			return m.redirectLater()
		}
		return nil
	}
	for i := range m.tasks {
		if TaskID(m.tasks[i]) == msg.id {
			m.tasks[i] = msg.task
		}
	}
	if msg.task.Completed {
		return m.setSuccess(CompletedMessage)
	}
	return m.setSuccess(ActiveMessage)
}

func (m *Model) authFailure() tea.Cmd {
	m.errMsg = AuthErrorMessage
	m.errKind = service.KindAuth
	return m.redirectLater()
}

func (m *Model) redirectLater() tea.Cmd {
	return m.after(AuthRedirectDelay, redirectMsg{from: m, path: SignInPath})
}

// setError shows the message for err and returns its kind.
func (m *Model) setError(op Operation, err error) service.ErrorKind {
	m.errMsg, m.errKind = DescribeError(op, err)
	return m.errKind
}

func (m *Model) clearError() {
	m.errMsg = ""
	m.errKind = ""
}

func (m *Model) setSuccess(msg string) tea.Cmd {
	m.successGen++
	m.successMsg = msg
	return m.after(SuccessClearDelay, clearSuccessMsg{from: m, gen: m.successGen})
}

func (m *Model) removeTask(id string) {
	kept := m.tasks[:0:0]
	for _, t := range m.tasks {
		if TaskID(t) != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	m.clampCursor()
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %q", id)
	}
	return n, nil
}
