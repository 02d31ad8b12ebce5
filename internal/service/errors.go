package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies API failures by how the caller should react.
type ErrorKind string

const (
	// KindNetwork means the request never got a response (connection, DNS, timeout).
	KindNetwork ErrorKind = "network"

	// KindAuth means the server rejected the credentials (401/403).
	KindAuth ErrorKind = "auth"

	// KindNotFound means the task does not exist (404).
	KindNotFound ErrorKind = "not_found"

	// KindGeneric is everything else.
	KindGeneric ErrorKind = "generic"
)

// APIError is returned by backends for every failed call.
type APIError struct {
	Op      string // e.g. "list tasks"
	Kind    ErrorKind
	Status  int    // HTTP status, 0 if no response
	Message string // server-provided detail, if any
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindForStatus maps an HTTP status code to an error kind.
func KindForStatus(status int) ErrorKind {
	switch status {
	case 401, 403:
		return KindAuth
	case 404:
		return KindNotFound
	default:
		return KindGeneric
	}
}

// Classify returns the kind of err.
// Errors carrying an *APIError use its kind; any other error is classified
// by its message text, case-sensitively.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind != "" {
		return apiErr.Kind
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "fetch") || strings.Contains(msg, "network"):
		return KindNetwork
	case strings.Contains(msg, "401") || strings.Contains(msg, "403"):
		return KindAuth
	case strings.Contains(msg, "404"):
		return KindNotFound
	default:
		return KindGeneric
	}
}
