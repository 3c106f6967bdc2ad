// Package filter maps a todo collection and a filter mode to the visible subset.
package filter

import (
	"fmt"
	"strings"

	"todos/internal/service"
)

// Mode selects which todos are visible.
type Mode int

const (
	All Mode = iota
	Active
	Completed
)

// Modes lists every mode in footer order.
var Modes = []Mode{All, Active, Completed}

func (m Mode) String() string {
	switch m {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "all"
	}
}

// ParseMode parses a mode name. Empty input is All.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed":
		return Completed, nil
	}
	return All, fmt.Errorf("invalid filter: %s", s)
}

// Match reports whether todo is visible under m.
func (m Mode) Match(todo service.Todo) bool {
	switch m {
	case Active:
		return !todo.Completed
	case Completed:
		return todo.Completed
	default:
		return true
	}
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// Apply returns the todos matching m in their original relative order.
// The input slice is not modified.
func Apply(todos []service.Todo, m Mode) []service.Todo {
	out := make([]service.Todo, 0, len(todos))
	for _, t := range todos {
		if m.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
