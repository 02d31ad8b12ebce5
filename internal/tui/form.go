package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/auth"
	"tasks/internal/logging"
	"tasks/internal/page"
	"tasks/internal/service"
	"tasks/internal/ui"
)

type taskCreatedMsg struct {
	task service.Task
	err  error
}

// taskForm collects a title and optional description and creates the task.
type taskForm struct {
	ctx     context.Context
	svc     service.Service
	auth    auth.Provider
	log     *logging.Logger
	animate bool

	title       textinput.Model
	description textinput.Model
	focus       int
	saving      bool
	errMsg      string
}

func newTaskForm(opts Options) *taskForm {
	mode := cursor.CursorStatic
	if opts.Animate {
		mode = cursor.CursorBlink
	}

	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = 200
	title.Width = 50
	title.Cursor.SetMode(mode)
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000
	desc.Width = 50
	desc.Cursor.SetMode(mode)

	return &taskForm{
		ctx:         opts.Context,
		svc:         opts.Service,
		auth:        opts.Auth,
		log:         opts.Logger.WithComponent("form"),
		animate:     opts.Animate,
		title:       title,
		description: desc,
	}
}

func (f *taskForm) Init() tea.Cmd {
	if f.animate {
		return textinput.Blink
	}
	return nil
}

func (f *taskForm) Update(msg tea.Msg, router page.Router) tea.Cmd {
	switch msg := msg.(type) {
	case taskCreatedMsg:
		f.saving = false
		if msg.err != nil {
			f.log.Error("create task failed", logging.Fields{"error": msg.err.Error()})
			f.errMsg, _ = page.DescribeError(page.OpCreate, msg.err)
			if service.Classify(msg.err) == service.KindAuth {
				return router.Push(page.SignInPath)
			}
			return nil
		}
		f.log.Info("task created", logging.Fields{"id": msg.task.ID})
		return router.Push(page.TasksPath)
	case tea.KeyMsg:
		if f.saving {
			return nil
		}
		switch msg.String() {
		case "esc":
			return router.Push(page.TasksPath)
		case "tab", "shift+tab", "up", "down":
			f.toggleFocus()
			return nil
		case "enter":
			if f.focus == 0 {
				f.toggleFocus()
				return nil
			}
			return f.submit()
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *taskForm) toggleFocus() {
	if f.focus == 0 {
		f.focus = 1
		f.title.Blur()
		f.description.Focus()
	} else {
		f.focus = 0
		f.description.Blur()
		f.title.Focus()
	}
}

func (f *taskForm) submit() tea.Cmd {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.errMsg = "Title is required"
		return nil
	}
	in := service.NewTask{Title: title}
	if d := strings.TrimSpace(f.description.Value()); d != "" {
		in.Description = &d
	}
	f.saving = true
	f.errMsg = ""
	ctx, svc, provider := f.ctx, f.svc, f.auth
	return func() tea.Msg {
		id, err := provider.Resolve(ctx)
		if err != nil {
			return taskCreatedMsg{err: &service.APIError{Op: "create task", Kind: service.KindAuth, Err: err}}
		}
		if !id.Authenticated() {
			return taskCreatedMsg{err: &service.APIError{Op: "create task", Kind: service.KindAuth, Err: auth.ErrNoSession}}
		}
		task, err := svc.CreateTask(ctx, id.UserID, in)
		return taskCreatedMsg{task: task, err: err}
	}
}

func (f *taskForm) View() string {
	sections := []string{ui.Hero("New Task", "")}
	if f.errMsg != "" {
		sections = append(sections, ui.ErrorAlert(f.errMsg, false))
	}
	sections = append(sections, f.title.View(), f.description.View())
	if f.saving {
		sections = append(sections, ui.Loading("", "Saving..."))
	} else {
		sections = append(sections, ui.Help("tab switch field", "enter save", "esc cancel"))
	}
	return strings.Join(sections, "\n\n") + "\n"
}
