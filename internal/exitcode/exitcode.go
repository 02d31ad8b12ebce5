// Package exitcode defines exit codes for the CLI.
package exitcode

import "tasks/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid config, task not found).
	UserError = 1

	// AuthError indicates the user is not signed in or the API rejected the credentials.
	AuthError = 2

	// BackendError indicates an API, network or terminal failure.
	BackendError = 3
)

// ForKind maps an API error kind to the exit code reported for it.
func ForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindAuth:
		return AuthError
	case service.KindNotFound:
		return UserError
	default:
		return BackendError
	}
}
