// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"todos/internal/service"
)

// ErrNotFound is returned when a todo does not exist.
var ErrNotFound = errors.New("not found")

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	todos  []service.Todo
	nextID int
	calls  []string

	// Error injection for testing
	ListErr      error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	UpdateErrFor map[int]error // todo ID -> error
	DeleteErrFor map[int]error // todo ID -> error

	// OnCreate, if set, runs inside CreateTodo before it returns,
	// so tests can observe state while the request is in flight.
	OnCreate func(service.NewTodo)
}

// NewFakeService creates an empty FakeService. Server IDs start at 1.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:       1,
		UpdateErrFor: make(map[int]error),
		DeleteErrFor: make(map[int]error),
	}
}

// AddTodo seeds a todo with a server ID.
func (f *FakeService) AddTodo(userID int, title string, completed bool) service.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Todo{ID: f.nextID, UserID: userID, Title: title, Completed: completed}
	f.nextID++
	f.todos = append(f.todos, t)
	return t
}

// Todos returns a copy of the server-side collection.
func (f *FakeService) Todos() []service.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Todo, len(f.todos))
	copy(out, f.todos)
	return out
}

// Calls returns the recorded calls, e.g. "list 7", "create", "update 3", "delete 4".
// Concurrent calls are recorded in completion order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CountCalls returns how many recorded calls start with the given verb.
func (f *FakeService) CountCalls(verb string) int {
	n := 0
	for _, c := range f.Calls() {
		if len(c) >= len(verb) && c[:len(verb)] == verb {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// ListTodos implements service.Service.
func (f *FakeService) ListTodos(ctx context.Context, userID int) ([]service.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list %d", userID)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := []service.Todo{}
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTodo implements service.Service.
func (f *FakeService) CreateTodo(ctx context.Context, todo service.NewTodo) (service.Todo, error) {
	if f.OnCreate != nil {
		f.OnCreate(todo)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.CreateErr != nil {
		return service.Todo{}, f.CreateErr
	}
	t := service.Todo{ID: f.nextID, UserID: todo.UserID, Title: todo.Title, Completed: todo.Completed}
	f.nextID++
	f.todos = append(f.todos, t)
	return t, nil
}

// UpdateTodo implements service.Service.
func (f *FakeService) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update %d", todo.ID)
	if f.UpdateErr != nil {
		return service.Todo{}, f.UpdateErr
	}
	if err := f.UpdateErrFor[todo.ID]; err != nil {
		return service.Todo{}, err
	}
	for i, t := range f.todos {
		if t.ID == todo.ID {
			f.todos[i].Title = todo.Title
			f.todos[i].Completed = todo.Completed
			return f.todos[i], nil
		}
	}
	return service.Todo{}, ErrNotFound
}

// DeleteTodo implements service.Service.
func (f *FakeService) DeleteTodo(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete %d", id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if err := f.DeleteErrFor[id]; err != nil {
		return err
	}
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
