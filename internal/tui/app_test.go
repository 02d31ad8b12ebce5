package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tasks/internal/page"
	"tasks/internal/testutil"
)

func newApp(svc *testutil.FakeService, a *testutil.FakeAuth) *App {
	n := 0
	return New(Options{
		Service: svc,
		Auth:    a,
		NewTraceID: func() string {
			n++
			return "trace-" + string(rune('0'+n))
		},
	})
}

func applyMsg(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := a.Update(msg)
	return applyCmd(t, a, cmd)
}

// applyCmd runs cmd and feeds its messages back until nothing is left.
// It returns a quit command if one was produced.
func applyCmd(t *testing.T, a *App, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	for i := 0; i < 10 && cmd != nil; i++ {
		msg := cmd()
		switch msg := msg.(type) {
		case tea.QuitMsg:
			return cmd
		case tea.BatchMsg:
			var quit tea.Cmd
			for _, c := range msg {
				if q := applyCmd(t, a, c); q != nil {
					quit = q
				}
			}
			return quit
		}
		_, cmd = a.Update(msg)
	}
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppShowsTaskPage(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("u1", "Buy milk", false)
	a := newApp(svc, testutil.SignedIn("u1"))
	applyCmd(t, a, a.Init())

	if a.Path() != page.TasksPath {
		t.Errorf("expected %s, got %s", page.TasksPath, a.Path())
	}
	if !strings.Contains(a.View(), "Buy milk") {
		t.Errorf("expected task in view, got %q", a.View())
	}
}

func TestAppRedirectsToSignIn(t *testing.T) {
	svc := testutil.NewFakeService()
	a := newApp(svc, testutil.SignedOut())
	applyCmd(t, a, a.Init())

	if a.Path() != page.SignInPath {
		t.Fatalf("expected %s, got %s", page.SignInPath, a.Path())
	}
	if a.TaskPage() != nil {
		t.Error("expected task page torn down")
	}
	if !strings.Contains(a.View(), "tasks login") {
		t.Errorf("expected login hint, got %q", a.View())
	}
	if q := applyMsg(t, a, keyRunes("x")); q == nil {
		t.Error("expected any key to quit")
	}
}

func TestAppCreateTask(t *testing.T) {
	svc := testutil.NewFakeService()
	a := newApp(svc, testutil.SignedIn("u1"))
	applyCmd(t, a, a.Init())
	first := a.TaskPage()

	applyMsg(t, a, keyRunes("n"))
	if a.Path() != page.NewTaskPath {
		t.Fatalf("expected %s, got %s", page.NewTaskPath, a.Path())
	}
	if !first.Closed() {
		t.Error("expected task page torn down when leaving")
	}

	applyMsg(t, a, keyRunes("Write report"))
	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	applyMsg(t, a, keyRunes("quarterly"))
	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.Path() != page.TasksPath {
		t.Fatalf("expected back on %s, got %s", page.TasksPath, a.Path())
	}
	stored := svc.Tasks("u1")
	if len(stored) != 1 || stored[0].Title != "Write report" {
		t.Fatalf("expected created task, got %+v", stored)
	}
	if stored[0].Description == nil || *stored[0].Description != "quarterly" {
		t.Errorf("expected description, got %v", stored[0].Description)
	}
	if a.TaskPage() == first {
		t.Error("expected a fresh task page")
	}
	if len(a.TaskPage().Tasks()) != 1 {
		t.Errorf("expected new page to load the created task, got %+v", a.TaskPage().Tasks())
	}
}

func TestAppFormRequiresTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	a := newApp(svc, testutil.SignedIn("u1"))
	applyCmd(t, a, a.Init())
	applyMsg(t, a, keyRunes("n"))

	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyTab})
	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(a.View(), "Title is required") {
		t.Errorf("expected validation error, got %q", a.View())
	}
	if len(svc.Tasks("u1")) != 0 {
		t.Error("expected nothing created")
	}
}

func TestAppFormEscape(t *testing.T) {
	svc := testutil.NewFakeService()
	a := newApp(svc, testutil.SignedIn("u1"))
	applyCmd(t, a, a.Init())
	applyMsg(t, a, keyRunes("n"))

	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	if a.Path() != page.TasksPath {
		t.Errorf("expected %s, got %s", page.TasksPath, a.Path())
	}
	if a.TaskPage() == nil || a.TaskPage().Closed() {
		t.Error("expected a live task page")
	}
}

func TestAppFormCreateError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = &testNetworkError{}
	a := newApp(svc, testutil.SignedIn("u1"))
	applyCmd(t, a, a.Init())
	applyMsg(t, a, keyRunes("n"))

	applyMsg(t, a, keyRunes("x"))
	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyTab})
	applyMsg(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.Path() != page.NewTaskPath {
		t.Errorf("expected to stay on the form, got %s", a.Path())
	}
	if !strings.Contains(a.View(), "Unable to create task") {
		t.Errorf("expected network error, got %q", a.View())
	}
}

type testNetworkError struct{}

func (e *testNetworkError) Error() string { return "network unreachable" }
