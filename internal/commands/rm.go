package commands

import (
	"context"
	"flag"
	"io"

	"todos/internal/config"
	"todos/internal/service"
	"todos/internal/state"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a todo" }
func (c *RmCmd) Usage() string      { return "todos rm <ref>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return withTodo(ctx, cfg, svc, args, errOut, func(store *state.Store, todo service.Todo) int {
		if err := store.Delete(ctx, todo.ID); err != nil {
			return report(errOut, err)
		}
		return ok(cfg, out)
	})
}
