package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todos help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todos                                        List all todos
  todos list [common flags] [--filter <mode>]  List todos (all, active, completed)
  todos add [common flags] <title...>
  todos edit [common flags] <ref> <title...>   An empty title deletes the todo
  todos done [common flags] <ref>
  todos undo [common flags] <ref>
  todos rm [common flags] <ref>
  todos toggle-all [common flags]
  todos clear-completed [common flags]
  todos ui [common flags]                      Interactive view
  todos login [common flags] --token <token>
  todos logout [common flags]
  todos help
  todos version

References:
  <n>    row number as printed by list
  #<id>  server id

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Configuration:
  <config dir>/config.yaml   base_url, user_id, timeout (duration, e.g. 5s), log_format
  TODOS_BASE_URL, TODOS_USER_ID override the file
`
