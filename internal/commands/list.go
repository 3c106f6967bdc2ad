package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/filter"
	"todos/internal/output"
	"todos/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todos` (no args) and `todos list --filter <mode>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter flag (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List todos" }
func (c *ListCmd) Usage() string      { return "todos list [--filter all|active|completed]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	mode, err := filter.ParseMode(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	store, code := loadStore(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return code
	}
	store.SetFilter(mode)
	snap := store.Snapshot()

	if len(snap.Todos) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no todos found")
		}
		return exitcode.Success
	}

	output.FormatList(out, snap.Todos, mode)
	if !cfg.Quiet {
		output.FormatFooter(out, snap.ActiveCount())
	}
	return exitcode.Success
}
