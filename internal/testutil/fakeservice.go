// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"tasks/internal/auth"
	"tasks/internal/service"
)

// ListCall records the arguments of one ListTasks call.
type ListCall struct {
	UserID string
	Status service.StatusFilter
	Sort   service.SortKey
}

// NotFound returns the error the API gives for a missing task.
func NotFound(op string) error {
	return &service.APIError{Op: op, Kind: service.KindNotFound, Status: 404, Message: "Task not found"}
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  map[string][]service.Task // userID -> tasks in insertion order
	nextID int64
	clock  time.Time

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	ToggleErr     error

	// ToggleHook, if set, edits the toggled task before it is stored and returned.
	ToggleHook func(*service.Task)

	// Recorded calls
	ListCalls   []ListCall
	DeleteCalls []int64
	ToggleCalls []int64
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:  make(map[string][]service.Task),
		nextID: 1,
		clock:  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// AddTask adds a task for userID and returns its id.
// Each task is created one minute after the previous one.
func (f *FakeService) AddTask(userID, title string, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(userID, title, nil, completed).ID
}

func (f *FakeService) insert(userID, title string, desc *string, completed bool) service.Task {
	t := service.Task{
		ID:          f.nextID,
		UserID:      userID,
		Title:       title,
		Description: desc,
		Completed:   completed,
		CreatedAt:   f.clock.Format("2006-01-02T15:04:05"),
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	f.tasks[userID] = append(f.tasks[userID], t)
	return t
}

// Tasks returns a copy of userID's stored tasks.
func (f *FakeService) Tasks(userID string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks[userID]))
	copy(out, f.tasks[userID])
	return out
}

// ListCallCount returns the number of ListTasks calls so far.
func (f *FakeService) ListCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ListCalls)
}

// ListTasks implements service.Service. Filtering and ordering follow the API:
// created_at newest first, title ascending.
func (f *FakeService) ListTasks(ctx context.Context, userID string, status service.StatusFilter, sortKey service.SortKey) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls = append(f.ListCalls, ListCall{UserID: userID, Status: status, Sort: sortKey})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	result := []service.Task{}
	for _, t := range f.tasks[userID] {
		switch status {
		case service.StatusPending:
			if t.Completed {
				continue
			}
		case service.StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		result = append(result, t)
	}

	switch sortKey {
	case service.SortTitle:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	case service.SortCreatedAt:
		sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt > result[j].CreatedAt })
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, userID string, taskID int64) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(userID, taskID)
	if i < 0 {
		return service.Task{}, NotFound("get task")
	}
	return f.tasks[userID][i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, userID string, in service.NewTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if strings.TrimSpace(in.Title) == "" {
		return service.Task{}, &service.APIError{Op: "create task", Kind: service.KindGeneric, Status: 422, Message: "title required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(userID, in.Title, in.Description, false), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, userID string, taskID int64, in service.TaskUpdate) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(userID, taskID)
	if i < 0 {
		return service.Task{}, NotFound("update task")
	}
	t := &f.tasks[userID][i]
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	return *t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, taskID)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	i := f.find(userID, taskID)
	if i < 0 {
		return NotFound("delete task")
	}
	tasks := f.tasks[userID]
	f.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
	return nil
}

// ToggleTaskComplete implements service.Service.
func (f *FakeService) ToggleTaskComplete(ctx context.Context, userID string, taskID int64) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ToggleCalls = append(f.ToggleCalls, taskID)
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}
	i := f.find(userID, taskID)
	if i < 0 {
		return service.Task{}, NotFound("toggle task")
	}
	t := &f.tasks[userID][i]
	t.Completed = !t.Completed
	if f.ToggleHook != nil {
		f.ToggleHook(t)
	}
	return *t, nil
}

func (f *FakeService) find(userID string, taskID int64) int {
	for i, t := range f.tasks[userID] {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// FakeAuth is a fixed auth.Provider.
type FakeAuth struct {
	Identity auth.Identity
	Err      error
}

// SignedIn returns a FakeAuth for userID.
func SignedIn(userID string) *FakeAuth {
	return &FakeAuth{Identity: auth.Identity{UserID: userID}}
}

// SignedOut returns a FakeAuth with no identity.
func SignedOut() *FakeAuth {
	return &FakeAuth{}
}

// Resolve implements auth.Provider.
func (a *FakeAuth) Resolve(ctx context.Context) (auth.Identity, error) {
	return a.Identity, a.Err
}

// TokenSource implements auth.Provider.
func (a *FakeAuth) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: fmt.Sprintf("token-%s", a.Identity.UserID)})
}
