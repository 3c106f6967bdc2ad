package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"todos/internal/backend/rest"
	"todos/internal/service"
	"todos/internal/testutil"
)

func newClient(t *testing.T, fake *testutil.FakeService) *rest.Client {
	t.Helper()
	srv := testutil.NewServer(t, fake)
	return rest.NewWithHTTPClient(srv.Client(), srv.URL, time.Second, nil)
}

func TestListTodos_ScopedByUser(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTodo(7, "mine", false)
	fake.AddTodo(8, "theirs", false)
	fake.AddTodo(7, "also mine", true)

	c := newClient(t, fake)
	todos, err := c.ListTodos(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Title != "mine" || todos[1].Title != "also mine" || !todos[1].Completed {
		t.Errorf("unexpected todos: %+v", todos)
	}
}

func TestListTodos_EmptyIsNotNil(t *testing.T) {
	c := newClient(t, testutil.NewFakeService())
	todos, err := c.ListTodos(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todos == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCreateTodo_ReturnsServerID(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTodo(7, "existing", false)

	c := newClient(t, fake)
	created, err := c.CreateTodo(context.Background(), service.NewTodo{Title: "new", UserID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 2 || created.Title != "new" || created.UserID != 7 || created.Completed {
		t.Errorf("unexpected created todo: %+v", created)
	}
}

func TestUpdateTodo(t *testing.T) {
	fake := testutil.NewFakeService()
	todo := fake.AddTodo(7, "old", false)

	c := newClient(t, fake)
	todo.Title = "new"
	todo.Completed = true
	updated, err := c.UpdateTodo(context.Background(), todo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "new" || !updated.Completed {
		t.Errorf("unexpected updated todo: %+v", updated)
	}
	if got := fake.Todos()[0]; got.Title != "new" || !got.Completed {
		t.Errorf("server state not updated: %+v", got)
	}
}

func TestDeleteTodo(t *testing.T) {
	fake := testutil.NewFakeService()
	todo := fake.AddTodo(7, "gone", false)

	c := newClient(t, fake)
	if err := c.DeleteTodo(context.Background(), todo.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.Todos()) != 0 {
		t.Error("expected todo deleted on server")
	}
}

func TestDeleteTodo_NotFound(t *testing.T) {
	c := newClient(t, testutil.NewFakeService())
	err := c.DeleteTodo(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		t.Errorf("expected wrapped 404 googleapi.Error, got %v", err)
	}
}

func TestServerError(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.ListErr = testutil.ErrInjected

	c := newClient(t, fake)
	_, err := c.ListTodos(context.Background(), 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "server error 500") {
		t.Errorf("expected server error, got %v", err)
	}
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := rest.NewWithHTTPClient(srv.Client(), srv.URL, time.Second, nil)
	_, err := c.ListTodos(context.Background(), 1)
	if err == nil || !strings.HasPrefix(err.Error(), "unauthorized") {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := rest.NewWithHTTPClient(srv.Client(), srv.URL, 50*time.Millisecond, nil)
	_, err := c.ListTodos(context.Background(), 1)
	if err == nil || !strings.HasPrefix(err.Error(), "request timed out") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestRequestShape(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotRequestID string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(rest.RequestIDHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"userId":7,"title":"x","completed":true}`))
	}))
	defer srv.Close()

	c := rest.NewWithHTTPClient(srv.Client(), srv.URL, time.Second, nil)
	_, err := c.UpdateTodo(context.Background(), service.Todo{ID: 5, UserID: 7, Title: "x", Completed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPatch || gotPath != "/todos/5" {
		t.Errorf("expected PATCH /todos/5, got %s %s", gotMethod, gotPath)
	}
	if !strings.HasPrefix(gotContentType, "application/json") {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotRequestID == "" {
		t.Error("expected request id header")
	}
	for _, key := range []string{"id", "userId", "title", "completed"} {
		if _, ok := gotBody[key]; !ok {
			t.Errorf("expected body field %q, got %v", key, gotBody)
		}
	}
}
