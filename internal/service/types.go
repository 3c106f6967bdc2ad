// Package service defines the backend-agnostic interface for todo operations.
package service

// Todo is a single task owned by a user.
type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTodo is the create payload. The server assigns the ID.
type NewTodo struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}
