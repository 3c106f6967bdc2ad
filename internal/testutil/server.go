package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/go-chi/chi/v5"

	"todos/internal/service"
)

// NewServer starts an httptest server exposing svc as the todos REST API:
//
//	GET    /todos?userId={id}
//	POST   /todos
//	PATCH  /todos/{id}
//	DELETE /todos/{id}
//
// Service errors become 404 for ErrNotFound and 500 otherwise.
// The server is closed when the test finishes.
func NewServer(t interface{ Cleanup(func()) }, svc service.Service) *httptest.Server {
	srv := httptest.NewServer(NewRouter(svc))
	t.Cleanup(srv.Close)
	return srv
}

// NewRouter returns the chi router behind NewServer.
func NewRouter(svc service.Service) http.Handler {
	r := chi.NewRouter()

	r.Get("/todos", func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		todos, err := svc.ListTodos(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, todos)
	})

	r.Post("/todos", func(w http.ResponseWriter, r *http.Request) {
		var in service.NewTodo
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		created, err := svc.CreateTodo(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	})

	r.Patch("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var in service.Todo
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		in.ID = id
		updated, err := svc.UpdateTodo(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	})

	r.Delete("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := svc.DeleteTodo(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		// The store answers deletes with a bare count.
		respondJSON(w, http.StatusOK, 1)
	})

	return r
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
