// Package rest implements the service.Service interface against a JSON REST store.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/service"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	log     logrus.FieldLogger
}

// New creates a REST client from config.
// If a token is stored, requests are authorized with it as a bearer token.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	httpClient := &http.Client{}
	if cfg.HasToken() {
		tok, err := cfg.LoadToken()
		if err != nil {
			return nil, err
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	return NewWithHTTPClient(httpClient, cfg.BaseURL, cfg.Timeout, log), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		timeout: timeout,
		log:     log,
	}
}

// ListTodos returns every todo owned by userID.
func (c *Client) ListTodos(ctx context.Context, userID int) ([]service.Todo, error) {
	var todos []service.Todo
	path := "/todos?userId=" + strconv.Itoa(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []service.Todo{}
	}
	return todos, nil
}

// CreateTodo creates a todo.
func (c *Client) CreateTodo(ctx context.Context, todo service.NewTodo) (service.Todo, error) {
	var created service.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", todo, &created); err != nil {
		return service.Todo{}, err
	}
	return created, nil
}

// UpdateTodo sends the full todo as a PATCH.
func (c *Client) UpdateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	var updated service.Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+strconv.Itoa(todo.ID), todo, &updated); err != nil {
		return service.Todo{}, err
	}
	return updated, nil
}

// DeleteTodo deletes a todo. The response body is ignored.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+strconv.Itoa(id), nil, nil)
}

// do performs one request. body is encoded as JSON when non-nil; the response
// is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	log := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return wrapError(err)
	}
	defer resp.Body.Close()

	log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError wraps transport and status errors with short messages.
// The original error stays reachable through errors.Is/As.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("unauthorized (run: todos login): %w", err)
		case http.StatusNotFound:
			return fmt.Errorf("not found: %w", err)
		}
		return fmt.Errorf("server error %d: %w", apiErr.Code, err)
	}

	return err
}
