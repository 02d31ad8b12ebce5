package commands

import (
	"context"
	"flag"
	"io"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/output"
	"tasks/internal/page"
	"tasks/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"get"} }
func (c *ShowCmd) Synopsis() string  { return "Print one task with its description" }
func (c *ShowCmd) Usage() string     { return "tasks show <id>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	taskID, err := parseTaskID(args)
	if err != nil {
		return usageError(errOut, err)
	}

	userID, code := requireUser(ctx, who, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := svc.GetTask(ctx, userID, taskID)
	if err != nil {
		return reportError(errOut, page.OpFetch, err)
	}

	output.FormatDetail(out, page.ToView(task))
	return exitcode.Success
}
