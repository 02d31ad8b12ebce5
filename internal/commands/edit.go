package commands

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/output"
	"tasks/internal/page"
	"tasks/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given,
// so an explicit empty description can clear the field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(t string) {
	c.title.Set(t)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(d string) {
	c.description.Set(d)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "tasks edit [--title <text>] [--description <text>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	taskID, err := parseTaskID(args)
	if err != nil {
		return usageError(errOut, err)
	}

	var in service.TaskUpdate
	if c.title.set {
		title := strings.TrimSpace(c.title.value)
		if title == "" {
			return usageError(errOut, errors.New("title cannot be empty"))
		}
		in.Title = &title
	}
	if c.description.set {
		desc := strings.TrimSpace(c.description.value)
		in.Description = &desc
	}
	if in.Title == nil && in.Description == nil {
		return usageError(errOut, errors.New("nothing to change (use --title or --description)"))
	}

	userID, code := requireUser(ctx, who, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := svc.UpdateTask(ctx, userID, taskID, in)
	if err != nil {
		return reportError(errOut, page.OpEdit, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, page.ToView(task))
	}
	return exitcode.Success
}
