package page

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"tasks/internal/service"
)

// createdAtLayouts are the timestamp encodings the API has been seen to use.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseCreatedAt parses an API timestamp. Timestamps without a zone are UTC.
// Returns the zero time if s matches no known layout.
func ParseCreatedAt(s string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TaskID returns the view id of t.
func TaskID(t service.Task) string {
	return strconv.FormatInt(t.ID, 10)
}

// ToView maps an API task to its view shape.
func ToView(t service.Task) ViewTask {
	v := ViewTask{
		ID:        TaskID(t),
		Title:     t.Title,
		Status:    StatusActive,
		CreatedAt: ParseCreatedAt(t.CreatedAt),
	}
	if t.Description != nil {
		v.Description = *t.Description
	}
	if t.Completed {
		v.Status = StatusCompleted
	}
	return v
}

// CountTasks returns the per-bucket counts over tasks.
func CountTasks(tasks []service.Task) Counts {
	c := Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Derive returns the tasks visible under f in order s, and the counts over
// the whole collection. tasks is not modified.
func Derive(tasks []service.Task, f Filter, s Sort) ([]ViewTask, Counts) {
	views := make([]ViewTask, 0, len(tasks))
	for _, t := range tasks {
		v := ToView(t)
		switch f {
		case FilterActive:
			if v.Status != StatusActive {
				continue
			}
		case FilterCompleted:
			if v.Status != StatusCompleted {
				continue
			}
		}
		views = append(views, v)
	}
	orderViews(views, s)
	return views, CountTasks(tasks)
}

func orderViews(views []ViewTask, s Sort) {
	var less func(a, b ViewTask) bool
	switch s {
	case SortOldest:
		less = func(a, b ViewTask) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortAZ:
		less = func(a, b ViewTask) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortZA:
		less = func(a, b ViewTask) bool { return strings.ToLower(a.Title) > strings.ToLower(b.Title) }
	default:
		less = func(a, b ViewTask) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}
