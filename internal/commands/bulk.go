package commands

import (
	"context"
	"flag"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
)

func init() {
	Register(&ToggleAllCmd{})
	Register(&ClearCompletedCmd{})
}

// ToggleAllCmd completes every todo, or reopens them all if all are completed.
type ToggleAllCmd struct{}

func (c *ToggleAllCmd) Name() string       { return "toggle-all" }
func (c *ToggleAllCmd) Aliases() []string  { return nil }
func (c *ToggleAllCmd) Synopsis() string   { return "Complete all todos, or reopen all" }
func (c *ToggleAllCmd) Usage() string      { return "todos toggle-all" }
func (c *ToggleAllCmd) NeedsBackend() bool { return true }

func (c *ToggleAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleAllCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store, code := loadStore(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := store.ToggleAll(ctx); err != nil {
		return report(errOut, err)
	}
	return ok(cfg, out)
}

// ClearCompletedCmd deletes every completed todo.
type ClearCompletedCmd struct{}

func (c *ClearCompletedCmd) Name() string       { return "clear-completed" }
func (c *ClearCompletedCmd) Aliases() []string  { return []string{"clear"} }
func (c *ClearCompletedCmd) Synopsis() string   { return "Delete all completed todos" }
func (c *ClearCompletedCmd) Usage() string      { return "todos clear-completed" }
func (c *ClearCompletedCmd) NeedsBackend() bool { return true }

func (c *ClearCompletedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCompletedCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store, code := loadStore(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return code
	}
	if err := store.ClearCompleted(ctx); err != nil {
		return report(errOut, err)
	}
	return ok(cfg, out)
}
