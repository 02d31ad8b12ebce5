package page

import (
	"fmt"
	"time"

	"tasks/internal/service"
)

// Routes the page navigates to.
const (
	SignInPath  = "/signin"
	TasksPath   = "/tasks"
	NewTaskPath = "/tasks/new"
)

// Filter is the view-level completion bucket.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter parses a filter name.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// APIStatus maps the filter to the API's status query value.
func (f Filter) APIStatus() service.StatusFilter {
	switch f {
	case FilterActive:
		return service.StatusPending
	case FilterCompleted:
		return service.StatusCompleted
	default:
		return service.StatusAll
	}
}

// Label is the filter bar label.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, c := range Filters {
		if c == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Sort is the view-level ordering.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortAZ     Sort = "a-z"
	SortZA     Sort = "z-a"
)

// Sorts lists the sort options in display order.
var Sorts = []Sort{SortNewest, SortOldest, SortAZ, SortZA}

// ParseSort parses a sort name.
func ParseSort(s string) (Sort, error) {
	for _, o := range Sorts {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid sort: %s", s)
}

// APIKey maps the sort to the API's sort key. Both directions of a pair
// share a key; the direction is applied when deriving the view.
func (s Sort) APIKey() service.SortKey {
	switch s {
	case SortAZ, SortZA:
		return service.SortTitle
	default:
		return service.SortCreatedAt
	}
}

// Label is the sort dropdown label.
func (s Sort) Label() string {
	switch s {
	case SortOldest:
		return "Oldest first"
	case SortAZ:
		return "Title A-Z"
	case SortZA:
		return "Title Z-A"
	default:
		return "Newest first"
	}
}

// Next returns the sort after s, wrapping around.
func (s Sort) Next() Sort {
	for i, c := range Sorts {
		if c == s {
			return Sorts[(i+1)%len(Sorts)]
		}
	}
	return SortNewest
}

// Status is a view task's completion state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ViewTask is the presentation shape of a task.
type ViewTask struct {
	ID          string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// Counts holds the number of tasks per filter bucket.
type Counts struct {
	All       int
	Active    int
	Completed int
}

// For returns the count for f.
func (c Counts) For(f Filter) int {
	switch f {
	case FilterActive:
		return c.Active
	case FilterCompleted:
		return c.Completed
	default:
		return c.All
	}
}
