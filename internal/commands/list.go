package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/output"
	"tasks/internal/page"
	"tasks/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	filter string
	sort   string
}

// SetFilter sets the filter (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

// SetSort sets the sort order (for testing).
func (c *ListCmd) SetSort(s string) {
	c.sort = s
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "tasks list [--filter all|active|completed] [--sort newest|oldest|a-z|z-a]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filterName := c.filter
	if filterName == "" {
		filterName = cfg.DefaultFilter
	}
	filter, err := page.ParseFilter(filterName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	sortName := c.sort
	if sortName == "" {
		sortName = cfg.DefaultSort
	}
	order, err := page.ParseSort(sortName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	userID, code := requireUser(ctx, who, errOut)
	if code != exitcode.Success {
		return code
	}

	// Counts cover every task, so fetch the whole collection and filter here.
	all, err := svc.ListTasks(ctx, userID, service.StatusAll, order.APIKey())
	if err != nil {
		return reportError(errOut, page.OpLoad, err)
	}

	views, counts := page.Derive(all, filter, order)
	if len(views) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	for _, v := range views {
		output.FormatTask(out, v)
	}
	if !cfg.Quiet {
		output.FormatCounts(out, counts)
	}
	return exitcode.Success
}
