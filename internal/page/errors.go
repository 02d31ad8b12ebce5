package page

import "tasks/internal/service"

// Operation names the page action an error came from.
type Operation string

const (
	OpLoad   Operation = "load"
	OpDelete Operation = "delete"
	OpToggle Operation = "update"
	OpCreate Operation = "create"
	OpFetch  Operation = "fetch"
	OpEdit   Operation = "edit"
)

// Messages shown to the user.
const (
	AuthErrorMessage     = "Authentication error. Please sign in again."
	DeleteSuccessMessage = "Task deleted successfully"
	CompletedMessage     = "Task marked as completed"
	ActiveMessage        = "Task marked as active"
)

// DescribeError converts err into the message shown for op, and its kind.
// Not-found is only meaningful for mutations; a load that fails with 404
// is reported as a generic error.
func DescribeError(op Operation, err error) (string, service.ErrorKind) {
	kind := service.Classify(err)
	switch kind {
	case service.KindNetwork:
		return "Network error: Unable to " + string(op) + " task" + plural(op) +
			". Please check your internet connection and try again.", kind
	case service.KindAuth:
		return AuthErrorMessage, kind
	case service.KindNotFound:
		switch op {
		case OpDelete:
			return "Task not found. It may have already been deleted.", kind
		case OpToggle, OpEdit:
			return "Task not found. It may have been deleted.", kind
		case OpFetch:
			return "Task not found.", kind
		}
	}
	return err.Error(), service.KindGeneric
}

func plural(op Operation) string {
	if op == OpLoad {
		return "s"
	}
	return ""
}
