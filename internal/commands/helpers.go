package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasks/internal/auth"
	"tasks/internal/exitcode"
	"tasks/internal/page"
)

// requireUser resolves the signed-in user id. On failure it reports the
// problem and returns the exit code to use.
func requireUser(ctx context.Context, who auth.Provider, errOut io.Writer) (string, int) {
	id, err := who.Resolve(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return "", exitcode.AuthError
	}
	if !id.Authenticated() {
		fmt.Fprintln(errOut, "error: not signed in (run: tasks login)")
		return "", exitcode.AuthError
	}
	return id.UserID, exitcode.Success
}

// parseTaskID parses the single task id argument.
func parseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("task id required")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// reportError prints the message the task page would show for err and
// returns the matching exit code.
func reportError(errOut io.Writer, op page.Operation, err error) int {
	msg, kind := page.DescribeError(op, err)
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return exitcode.ForKind(kind)
}

// usageError prints a bad-arguments error.
func usageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
