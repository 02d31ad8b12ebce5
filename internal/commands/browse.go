package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/logging"
	"tasks/internal/page"
	"tasks/internal/service"
	"tasks/internal/tui"
)

func init() {
	Register(&BrowseCmd{})
}

// BrowseCmd implements the browse command, the interactive task page.
type BrowseCmd struct {
	filter string
	sort   string
	run    func(ctx context.Context, opts tui.Options) error
}

// SetRunner replaces the interactive program (for testing).
func (c *BrowseCmd) SetRunner(run func(ctx context.Context, opts tui.Options) error) {
	c.run = run
}

func (c *BrowseCmd) Name() string      { return "browse" }
func (c *BrowseCmd) Aliases() []string { return []string{"ui"} }
func (c *BrowseCmd) Synopsis() string  { return "Open the interactive task page" }
func (c *BrowseCmd) Usage() string {
	return "tasks browse [--filter all|active|completed] [--sort newest|oldest|a-z|z-a]"
}
func (c *BrowseCmd) NeedsAuth() bool { return true }

func (c *BrowseCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *BrowseCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
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

	// The terminal belongs to the page, so logs go to a file or nowhere.
	log := logging.Discard()
	if cfg.Debug {
		if err := cfg.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
			return exitcode.UserError
		}
		f, err := os.OpenFile(cfg.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to open debug log: %v\n", err)
			return exitcode.UserError
		}
		defer f.Close()
		log = cfg.Logger(f)
	}

	run := c.run
	if run == nil {
		run = tui.Run
	}
	err = run(ctx, tui.Options{
		Service: svc,
		Auth:    who,
		Logger:  log,
		Filter:  filter,
		Sort:    order,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
