// Package tui is the interactive single-page view over a state.Store.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/state"
)

// Run shows the view until the user quits or ctx is cancelled.
func Run(ctx context.Context, store *state.Store, out io.Writer) error {
	m := newModel(ctx, store)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	).Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
