// Package service defines the backend-agnostic interface for todo operations.
package service

import "context"

// Service defines the interface for todo backend operations.
// Every remote call goes through this interface; the state layer never
// talks HTTP directly.
type Service interface {
	// ListTodos returns every todo owned by userID in server order.
	ListTodos(ctx context.Context, userID int) ([]Todo, error)

	// CreateTodo creates a todo and returns it with its server-assigned ID.
	CreateTodo(ctx context.Context, todo NewTodo) (Todo, error)

	// UpdateTodo replaces the fields of the todo identified by todo.ID.
	UpdateTodo(ctx context.Context, todo Todo) (Todo, error)

	// DeleteTodo deletes a todo by ID.
	DeleteTodo(ctx context.Context, id int) error
}
