package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todos/internal/service"
	"todos/internal/state"
)

// TodoRef is a parsed reference to a todo: either a 1-based row number as
// printed by list, or a server ID written as #<id>.
type TodoRef struct {
	Row  int
	ID   int
	ByID bool
}

// ErrTodoRefRequired indicates no reference was provided.
var ErrTodoRefRequired = errors.New("todo reference required")

// ParseTodoRef parses the first argument as a reference.
//
//	"3"    row 3
//	"#42"  todo with server ID 42
func ParseTodoRef(args []string) (TodoRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TodoRef{}, ErrTodoRefRequired
	}
	raw := strings.TrimSpace(args[0])

	if id, found := strings.CutPrefix(raw, "#"); found {
		n, err := strconv.Atoi(id)
		if err != nil || n <= 0 || !isAllDigits(id) {
			return TodoRef{}, fmt.Errorf("invalid todo reference: %s", raw)
		}
		return TodoRef{ID: n, ByID: true}, nil
	}

	if !isAllDigits(raw) {
		return TodoRef{}, fmt.Errorf("invalid todo reference: %s", raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return TodoRef{}, fmt.Errorf("invalid todo reference: %s", raw)
	}
	return TodoRef{Row: n}, nil
}

// Resolve finds the referenced todo in a loaded snapshot.
func (r TodoRef) Resolve(snap state.Snapshot) (service.Todo, error) {
	if r.ByID {
		for _, t := range snap.Todos {
			if t.ID == r.ID {
				return t, nil
			}
		}
		return service.Todo{}, fmt.Errorf("todo not found: #%d", r.ID)
	}
	if r.Row < 1 || r.Row > len(snap.Todos) {
		return service.Todo{}, fmt.Errorf("row out of range: %d", r.Row)
	}
	return snap.Todos[r.Row-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
