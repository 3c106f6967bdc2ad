package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/logging"
	"todos/internal/service"
	"todos/internal/state"
)

// newStore builds the state container for one command run.
// Logs go to errOut so stdout stays parseable.
func newStore(cfg *config.Config, svc service.Service, errOut io.Writer) *state.Store {
	log := logging.New(errOut, cfg.LogFormat, cfg.Debug)
	return state.New(svc, cfg.UserID, state.WithLogger(log))
}

// loadStore builds a store and loads the collection.
// On failure it prints the error and returns a non-zero exit code.
func loadStore(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) (*state.Store, int) {
	store := newStore(cfg, svc, errOut)
	if err := store.Load(ctx); err != nil {
		return nil, report(errOut, err)
	}
	return store, exitcode.Success
}

// report prints err and maps it to an exit code.
// Store failures print their user-facing message only.
func report(errOut io.Writer, err error) int {
	var se *state.Error
	switch {
	case state.IsValidation(err):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	case errors.Is(err, state.ErrUnknownTodo), errors.Is(err, state.ErrPending), errors.Is(err, state.ErrSubmitting):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &se):
		fmt.Fprintf(errOut, "error: %s\n", se.Msg)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// ok prints the success marker unless quiet.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
