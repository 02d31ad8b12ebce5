// Package tui hosts the interactive screens and routes between them.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"tasks/internal/auth"
	"tasks/internal/logging"
	"tasks/internal/page"
	"tasks/internal/service"
)

// NavigateMsg switches the visible screen.
type NavigateMsg struct {
	Path string
}

// Options configures an App.
type Options struct {
	Service service.Service
	Auth    auth.Provider
	Logger  *logging.Logger
	Context context.Context

	Filter page.Filter
	Sort   page.Sort

	// Animate enables spinners and cursor blinking.
	Animate bool

	// NewTraceID returns the trace id for a page view. Defaults to a random UUID.
	NewTraceID func() string
}

// App is the root bubbletea model. It implements page.Router.
type App struct {
	opts Options
	log  *logging.Logger

	path   string
	tasks  *page.Model
	form   *taskForm
	signIn *signInScreen

	width, height int
}

// New creates an App showing the task page.
func New(opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.NewTraceID == nil {
		opts.NewTraceID = func() string { return uuid.NewString() }
	}
	return &App{
		opts: opts,
		log:  opts.Logger.WithComponent("tui"),
	}
}

// Push implements page.Router.
func (a *App) Push(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Path is the current route.
func (a *App) Path() string { return a.path }

// TaskPage returns the task page, nil when another screen is shown.
func (a *App) TaskPage() *page.Model { return a.tasks }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.navigate(page.TasksPath)
}

func (a *App) navigate(path string) tea.Cmd {
	if a.tasks != nil && path != page.TasksPath {
		a.tasks.Teardown()
		a.tasks = nil
	}
	a.form = nil
	a.signIn = nil
	a.log.Debug("navigate", logging.Fields{"from": a.path, "to": path})

	switch path {
	case page.NewTaskPath:
		a.path = path
		a.form = newTaskForm(a.opts)
		return a.form.Init()
	case page.SignInPath:
		a.path = path
		a.signIn = &signInScreen{}
		return nil
	default:
		if a.tasks != nil {
			a.tasks.Teardown()
		}
		a.path = page.TasksPath
		a.tasks = page.New(page.Options{
			Service: a.opts.Service,
			Auth:    a.opts.Auth,
			Router:  a,
			Logger:  a.opts.Logger.WithTraceID(a.opts.NewTraceID()),
			Filter:  a.opts.Filter,
			Sort:    a.opts.Sort,
			Context: a.opts.Context,
			Animate: a.opts.Animate,
		})
		return a.tasks.Init()
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NavigateMsg:
		return a, a.navigate(msg.Path)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.shutdown()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch {
	case a.tasks != nil:
		_, cmd = a.tasks.Update(msg)
	case a.form != nil:
		cmd = a.form.Update(msg, a)
	case a.signIn != nil:
		cmd = a.signIn.Update(msg)
	}
	return a, cmd
}

func (a *App) shutdown() {
	if a.tasks != nil {
		a.tasks.Teardown()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	switch {
	case a.tasks != nil:
		return a.tasks.View()
	case a.form != nil:
		return a.form.View()
	case a.signIn != nil:
		return a.signIn.View()
	}
	return ""
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	opts.Animate = true
	app := New(opts)
	defer app.shutdown()
	_, err := tea.NewProgram(app, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
