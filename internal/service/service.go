// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All Tasks API calls go through this interface.
// The page and commands never talk HTTP directly.
type Service interface {
	// ListTasks returns the user's tasks.
	// status is one of StatusAll, StatusPending, StatusCompleted.
	// sort is one of SortCreatedAt, SortTitle; ordering is applied by the server.
	ListTasks(ctx context.Context, userID string, status StatusFilter, sort SortKey) ([]Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, userID string, taskID int64) (Task, error)

	// CreateTask creates a task and returns the stored record.
	CreateTask(ctx context.Context, userID string, in NewTask) (Task, error)

	// UpdateTask applies the non-nil fields of in and returns the stored record.
	UpdateTask(ctx context.Context, userID string, taskID int64, in TaskUpdate) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, userID string, taskID int64) error

	// ToggleTaskComplete flips the completion flag and returns the updated record.
	ToggleTaskComplete(ctx context.Context, userID string, taskID int64) (Task, error)
}
