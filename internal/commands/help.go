package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasks/internal/auth"
	"tasks/internal/config"
	"tasks/internal/exitcode"
	"tasks/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasks help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, who auth.Provider, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasks                                              Open the interactive task page
  tasks browse [common flags] [--filter f] [--sort s]
  tasks list [common flags] [--filter f] [--sort s]  Print tasks with counts
  tasks add [common flags] [--description <text>] <title...>
  tasks show [common flags] <id>
  tasks edit [common flags] [--title <text>] [--description <text>] <id>
  tasks toggle [common flags] <id>
  tasks rm [common flags] [--yes] <id>
  tasks login [common flags] [--user <id>] [--email <email>] [--token <token>]
  tasks logout [common flags]
  tasks help
  tasks version

Filters: all, active, completed
Sorts:   newest, oldest, a-z, z-a

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs (browse writes them to debug.log)
`
