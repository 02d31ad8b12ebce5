package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/page"
	"tasks/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle a task between active and completed" }
func (c *ToggleCmd) Usage() string     { return "tasks toggle <id>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	taskID, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	userID, code := requireUser(ctx, who, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := svc.ToggleTaskComplete(ctx, userID, taskID)
	if err != nil {
		return reportError(errOut, page.OpToggle, err)
	}

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, page.CompletedMessage)
		} else {
			fmt.Fprintln(out, page.ActiveMessage)
		}
	}
	return exitcode.Success
}
