package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
	"todos/internal/state"
)

func init() {
	Register(&DoneCmd{completed: true})
	Register(&DoneCmd{completed: false})
}

// DoneCmd implements done (mark completed) and undo (mark active).
type DoneCmd struct {
	completed bool
}

func (c *DoneCmd) Name() string {
	if c.completed {
		return "done"
	}
	return "undo"
}

func (c *DoneCmd) Aliases() []string { return nil }

func (c *DoneCmd) Synopsis() string {
	if c.completed {
		return "Mark a todo completed"
	}
	return "Mark a todo active"
}

func (c *DoneCmd) Usage() string      { return "todos " + c.Name() + " <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return withTodo(ctx, cfg, svc, args, errOut, func(store *state.Store, todo service.Todo) int {
		if err := store.SetCompleted(ctx, todo.ID, c.completed); err != nil {
			return report(errOut, err)
		}
		return ok(cfg, out)
	})
}

// withTodo parses a reference from args, loads the collection, resolves the
// reference and calls fn with the result.
func withTodo(ctx context.Context, cfg *config.Config, svc service.Service, args []string, errOut io.Writer, fn func(*state.Store, service.Todo) int) int {
	ref, err := ParseTodoRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	store, code := loadStore(ctx, cfg, svc, errOut)
	if code != exitcode.Success {
		return code
	}

	todo, err := ref.Resolve(store.Snapshot())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return fn(store, todo)
}
