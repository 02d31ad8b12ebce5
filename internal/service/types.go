package service

// Task is a task record as returned by the API.
type Task struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// NewTask is the payload for creating a task.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// TaskUpdate is the payload for updating a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// StatusFilter is the API's status query value.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// SortKey is the API's sort query value.
type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortTitle     SortKey = "title"
)
