package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
	"todos/internal/state"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. A blank title deletes the todo.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a todo's title" }
func (c *EditCmd) Usage() string      { return "todos edit <ref> <title...>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 1 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	var title string
	if len(args) > 1 {
		title = strings.Join(args[1:], " ")
	}
	return withTodo(ctx, cfg, svc, args, errOut, func(store *state.Store, todo service.Todo) int {
		if err := store.Rename(ctx, todo.ID, title); err != nil {
			return report(errOut, err)
		}
		return ok(cfg, out)
	})
}
