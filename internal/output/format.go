// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todos/internal/filter"
	"todos/internal/service"
)

// FormatTodo formats one row.
// Format: "{N:>4}  [x] {TITLE}\n" (4-wide right-aligned row number, two spaces, checkbox, title)
func FormatTodo(w io.Writer, num int, todo service.Todo) {
	mark := " "
	if todo.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, NormalizeTitle(todo.Title))
}

// FormatList writes every todo matching mode, numbered by its position in the
// full collection so row numbers stay valid as references under any filter.
func FormatList(w io.Writer, todos []service.Todo, mode filter.Mode) {
	for i, todo := range todos {
		if mode.Match(todo) {
			FormatTodo(w, i+1, todo)
		}
	}
}

// FormatFooter writes the active count line.
func FormatFooter(w io.Writer, active int) {
	fmt.Fprintln(w, ItemsLeft(active))
}

// ItemsLeft returns "1 item left" or "N items left".
func ItemsLeft(active int) string {
	if active == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", active)
}

// NormalizeTitle normalizes a todo title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
