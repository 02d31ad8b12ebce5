// Package page implements the task list page: an auth-gated loader,
// delete and toggle mutations, retry after network failures, and the
// derived view over the loaded tasks.
package page

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/auth"
	"tasks/internal/logging"
	"tasks/internal/service"
)

// Delays for timed transitions.
const (
	AuthRedirectDelay = 2000 * time.Millisecond
	SuccessClearDelay = 3000 * time.Millisecond
)

// Options configures a page.
type Options struct {
	Service service.Service
	Auth    auth.Provider
	Router  Router
	Logger  *logging.Logger

	// Initial filter and sort. Zero values mean all and newest.
	Filter Filter
	Sort   Sort

	// After schedules msg to be delivered after d. Defaults to tea.Tick.
	After func(d time.Duration, msg tea.Msg) tea.Cmd

	// Context bounds every request the page makes. Defaults to context.Background.
	Context context.Context

	// Animate enables spinner ticking while loading.
	Animate bool
}

type loadKey struct {
	user   string
	filter Filter
	sort   Sort
	retry  int
}

// Model is the task page state.
type Model struct {
	svc    service.Service
	auth   auth.Provider
	router Router
	log    *logging.Logger
	after  func(time.Duration, tea.Msg) tea.Cmd

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	authLoading bool
	user        string
	redirected  bool

	filter     Filter
	sort       Sort
	tasks      []service.Task
	loading    bool
	errMsg     string
	errKind    service.ErrorKind
	successMsg string
	successGen int
	retryCount int

	loadSeq    int
	loadCancel context.CancelFunc
	lastLoad   loadKey
	hasLoaded  bool

	pendingDelete string
	cursor        int
	animate       bool
	spinner       spinner.Model
}

// New creates a page. The page does nothing until Init's command runs.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	after := opts.After
	if after == nil {
		after = func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		}
	}
	filter := opts.Filter
	if filter == "" {
		filter = FilterAll
	}
	sort := opts.Sort
	if sort == "" {
		sort = SortNewest
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		svc:         opts.Service,
		auth:        opts.Auth,
		router:      opts.Router,
		log:         log.WithComponent("page"),
		after:       after,
		ctx:         ctx,
		cancel:      cancel,
		authLoading: true,
		filter:      filter,
		sort:        sort,
		loading:     true,
		animate:     opts.Animate,
		spinner:     s,
	}
}

// Init starts resolving the current identity.
func (m *Model) Init() tea.Cmd {
	resolve := m.resolveAuth()
	if m.animate {
		return tea.Batch(resolve, m.spinner.Tick)
	}
	return resolve
}

func (m *Model) resolveAuth() tea.Cmd {
	ctx, provider := m.ctx, m.auth
	return func() tea.Msg {
		id, err := provider.Resolve(ctx)
		return AuthResolvedMsg{Identity: id, Err: err, from: m}
	}
}

// Teardown ends the page's lifetime. In-flight requests are cancelled and
// every later message, including pending timers, is ignored.
func (m *Model) Teardown() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	m.log.Debug("page closed")
}

// Closed reports whether Teardown has been called.
func (m *Model) Closed() bool { return m.closed }

// AuthLoading reports whether the identity is still being resolved.
func (m *Model) AuthLoading() bool { return m.authLoading }

// UserID is the resolved user id, empty if none.
func (m *Model) UserID() string { return m.user }

// Filter is the current filter.
func (m *Model) Filter() Filter { return m.filter }

// Sort is the current sort.
func (m *Model) Sort() Sort { return m.sort }

// Loading reports whether a fetch is outstanding.
func (m *Model) Loading() bool { return m.loading }

// Err is the visible error message, empty if none.
func (m *Model) Err() string { return m.errMsg }

// ErrKind is the kind of the visible error.
func (m *Model) ErrKind() service.ErrorKind { return m.errKind }

// Success is the visible success message, empty if none.
func (m *Model) Success() string { return m.successMsg }

// RetryCount is the number of retries requested so far.
func (m *Model) RetryCount() int { return m.retryCount }

// CanRetry reports whether the retry control is offered.
func (m *Model) CanRetry() bool {
	return m.errMsg != "" && m.errKind == service.KindNetwork
}

// ConfirmingDelete returns the id awaiting delete confirmation.
func (m *Model) ConfirmingDelete() (string, bool) {
	return m.pendingDelete, m.pendingDelete != ""
}

// Tasks returns a copy of the task collection.
func (m *Model) Tasks() []service.Task {
	out := make([]service.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Derived returns the visible tasks and counts for the current filter and sort.
func (m *Model) Derived() ([]ViewTask, Counts) {
	return Derive(m.tasks, m.filter, m.sort)
}
