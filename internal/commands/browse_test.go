package commands_test

import (
	"context"
	"errors"
	"flag"
	"io"
	"testing"

	"tasks/internal/commands"
	"tasks/internal/exitcode"
	"tasks/internal/page"
	"tasks/internal/testutil"
	"tasks/internal/tui"
)

func TestBrowseCommand_PassesOptions(t *testing.T) {
	svc := testutil.NewFakeService()

	var got tui.Options
	cmd := &commands.BrowseCmd{}
	cmd.SetRunner(func(ctx context.Context, opts tui.Options) error {
		got = opts
		return nil
	})
	if err := setFlags(cmd, "--sort", "z-a"); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if got.Service == nil || got.Auth == nil {
		t.Error("expected service and auth to be passed through")
	}
	if got.Filter != page.FilterAll || got.Sort != page.SortZA {
		t.Errorf("expected all/z-a, got %s/%s", got.Filter, got.Sort)
	}
	if got.Logger == nil {
		t.Error("expected a logger")
	}
}

func TestBrowseCommand_InvalidSort(t *testing.T) {
	cmd := &commands.BrowseCmd{}
	cmd.SetRunner(func(ctx context.Context, opts tui.Options) error {
		t.Error("runner should not be called")
		return nil
	})
	if err := setFlags(cmd, "--sort", "random"); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid sort: random\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestBrowseCommand_RunnerError(t *testing.T) {
	cmd := &commands.BrowseCmd{}
	cmd.SetRunner(func(ctx context.Context, opts tui.Options) error {
		return errors.New("no tty")
	})

	_, stderr, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: no tty\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func setFlags(cmd commands.Command, args ...string) error {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	return fs.Parse(args)
}
