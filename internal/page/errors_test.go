package page

import (
	"errors"
	"testing"

	"tasks/internal/service"
)

func TestDescribeError(t *testing.T) {
	network := &service.APIError{Op: "x", Kind: service.KindNetwork}
	authErr := &service.APIError{Op: "x", Kind: service.KindAuth, Status: 401}
	notFound := &service.APIError{Op: "x", Kind: service.KindNotFound, Status: 404}
	generic := errors.New("title too long")

	tests := []struct {
		name string
		op   Operation
		err  error
		msg  string
		kind service.ErrorKind
	}{
		{"load network", OpLoad, network, "Network error: Unable to load tasks. Please check your internet connection and try again.", service.KindNetwork},
		{"delete network", OpDelete, network, "Network error: Unable to delete task. Please check your internet connection and try again.", service.KindNetwork},
		{"toggle network", OpToggle, network, "Network error: Unable to update task. Please check your internet connection and try again.", service.KindNetwork},
		{"load auth", OpLoad, authErr, AuthErrorMessage, service.KindAuth},
		{"delete not found", OpDelete, notFound, "Task not found. It may have already been deleted.", service.KindNotFound},
		{"toggle not found", OpToggle, notFound, "Task not found. It may have been deleted.", service.KindNotFound},
		{"fetch not found", OpFetch, notFound, "Task not found.", service.KindNotFound},
		{"edit not found", OpEdit, notFound, "Task not found. It may have been deleted.", service.KindNotFound},
		{"edit network", OpEdit, network, "Network error: Unable to edit task. Please check your internet connection and try again.", service.KindNetwork},
		{"load not found is generic", OpLoad, notFound, notFound.Error(), service.KindGeneric},
		{"generic", OpDelete, generic, "title too long", service.KindGeneric},
		{"message fallback", OpLoad, errors.New("TypeError: Failed to fetch"), "Network error: Unable to load tasks. Please check your internet connection and try again.", service.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, kind := DescribeError(tt.op, tt.err)
			if msg != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, msg)
			}
			if kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, kind)
			}
		})
	}
}
