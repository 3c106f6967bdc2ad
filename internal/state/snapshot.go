package state

import (
	"todos/internal/filter"
	"todos/internal/service"
)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Todos      []service.Todo
	Visible    []service.Todo
	Filter     filter.Mode
	Error      string
	ErrorSeq   uint64 // identifies the write that set Error
	Submitting bool
	Loaded     bool

	pending map[int]bool
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := cloneTodos(s.todos)
	pending := make(map[int]bool, len(s.pending))
	for id := range s.pending {
		pending[id] = true
	}
	return Snapshot{
		Todos:      todos,
		Visible:    filter.Apply(todos, s.mode),
		Filter:     s.mode,
		Error:      s.errMsg,
		ErrorSeq:   s.errSeq,
		Submitting: s.submitting,
		Loaded:     s.loaded,
		pending:    pending,
	}
}

// IsPending reports whether id belongs to a placeholder awaiting confirmation.
func (s Snapshot) IsPending(id int) bool {
	return s.pending[id]
}

// ActiveCount returns the number of todos not completed.
func (s Snapshot) ActiveCount() int {
	n := 0
	for _, t := range s.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed todos.
func (s Snapshot) CompletedCount() int {
	return len(s.Todos) - s.ActiveCount()
}

// AllCompleted reports whether the collection is non-empty and fully completed.
func (s Snapshot) AllCompleted() bool {
	return len(s.Todos) > 0 && s.ActiveCount() == 0
}
