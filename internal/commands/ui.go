package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
	"todos/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive view.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Interactive view" }
func (c *UICmd) Usage() string      { return "todos ui" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Logs would corrupt the full-screen view; keep them only with --debug.
	var logOut io.Writer = io.Discard
	if cfg.Debug {
		logOut = errOut
	}
	store := newStore(cfg, svc, logOut)

	if err := tui.Run(ctx, store, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
