package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/page"
	"tasks/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(d string) {
	c.description = d
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tasks add [--description <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	userID, code := requireUser(ctx, who, errOut)
	if code != exitcode.Success {
		return code
	}

	in := service.NewTask{Title: title}
	if d := strings.TrimSpace(c.description); d != "" {
		in.Description = &d
	}
	task, err := svc.CreateTask(ctx, userID, in)
	if err != nil {
		return reportError(errOut, page.OpCreate, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", task.ID)
	}
	return exitcode.Success
}
