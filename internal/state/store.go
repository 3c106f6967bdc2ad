// Package state holds the task collection and the transitions that change it.
//
// Every transition follows the same pattern: mutate the local collection
// (optionally, before the backend confirms), call the backend, then reconcile
// with the confirmed result or roll back. Failures are written to a single
// error slot as one of the fixed Msg* strings.
package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"todos/internal/filter"
	"todos/internal/logging"
	"todos/internal/service"
)

// Store is the state container. It is safe for concurrent use; backend calls
// run without holding the lock, so independent operations may interleave.
type Store struct {
	svc    service.Service
	userID int
	log    logrus.FieldLogger
	now    func() time.Time

	mu         sync.Mutex
	todos      []service.Todo
	pending    map[int]service.Todo // temp ID -> placeholder
	errMsg     string
	errSeq     uint64 // bumped on every write to errMsg
	mode       filter.Mode
	submitting bool
	loaded     bool

	obsMu     sync.Mutex
	observers []func()
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the clock used for placeholder IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store for userID.
func New(svc service.Service, userID int, opts ...Option) *Store {
	s := &Store{
		svc:     svc,
		userID:  userID,
		log:     logging.Discard(),
		now:     time.Now,
		pending: make(map[int]service.Todo),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called after every state change.
// fn is called without the store lock held and may read the store.
func (s *Store) OnChange(fn func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Store) notify() {
	s.obsMu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// Load replaces the collection with the user's todos from the backend.
func (s *Store) Load(ctx context.Context) error {
	var opErr error
	_, err := optimistic(ctx, s, step[[]service.Todo]{
		remote: func(ctx context.Context) ([]service.Todo, error) {
			return s.svc.ListTodos(ctx, s.userID)
		},
		commit: func(todos []service.Todo) {
			s.replaceAllLocked(todos)
			s.loaded = true
			s.log.WithField("count", len(todos)).Debug("todos loaded")
		},
		revert: func(err error) {
			opErr = s.failLocked(MsgLoad, err)
		},
	})
	if err != nil {
		return opErr
	}
	return nil
}

// Add creates a todo titled title (trimmed). A placeholder with a temporary ID
// is visible until the backend answers; it is then replaced by the confirmed
// todo, or removed on failure. Only one Add may be in flight.
func (s *Store) Add(ctx context.Context, title string) (service.Todo, error) {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	if title == "" {
		err := s.failLocked(MsgEmptyTitle, nil)
		s.mu.Unlock()
		s.notify()
		return service.Todo{}, err
	}
	if s.submitting {
		s.mu.Unlock()
		return service.Todo{}, ErrSubmitting
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
		s.notify()
	}()

	var tempID int
	var opErr error
	created, err := optimistic(ctx, s, step[service.Todo]{
		apply: func() {
			tempID = s.tempIDLocked()
			placeholder := service.Todo{ID: tempID, UserID: s.userID, Title: title}
			s.pending[tempID] = placeholder
			s.todos = append(s.todos, placeholder)
		},
		remote: func(ctx context.Context) (service.Todo, error) {
			return s.svc.CreateTodo(ctx, service.NewTodo{Title: title, UserID: s.userID})
		},
		commit: func(t service.Todo) {
			delete(s.pending, tempID)
			if i := s.indexLocked(tempID); i >= 0 {
				s.todos[i] = t
			} else if s.indexLocked(t.ID) < 0 {
				// A reload dropped the placeholder before the create landed.
				s.todos = append(s.todos, t)
			}
			s.log.WithFields(logrus.Fields{"temp_id": tempID, "id": t.ID}).Debug("todo added")
		},
		revert: func(err error) {
			delete(s.pending, tempID)
			s.removeLocked(tempID)
			opErr = s.failLocked(MsgAdd, err)
		},
	})
	if err != nil {
		return service.Todo{}, opErr
	}
	return created, nil
}

// Delete removes a todo once the backend confirms. On failure the collection
// is left as it was.
func (s *Store) Delete(ctx context.Context, id int) error {
	if _, err := s.confirmed(id); err != nil {
		return err
	}

	var opErr error
	_, err := optimistic(ctx, s, step[struct{}]{
		remote: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.svc.DeleteTodo(ctx, id)
		},
		commit: func(struct{}) {
			s.removeLocked(id)
			s.log.WithField("id", id).Debug("todo deleted")
		},
		revert: func(err error) {
			opErr = s.failLocked(MsgDelete, err)
		},
	})
	if err != nil {
		return opErr
	}
	return nil
}

// Update sends the todo with the given title and completed state, and merges
// both into the local todo once the backend confirms.
func (s *Store) Update(ctx context.Context, id int, title string, completed bool) error {
	cur, err := s.confirmed(id)
	if err != nil {
		return err
	}
	next := cur
	next.Title = title
	next.Completed = completed

	var opErr error
	_, err = optimistic(ctx, s, step[service.Todo]{
		remote: func(ctx context.Context) (service.Todo, error) {
			return s.svc.UpdateTodo(ctx, next)
		},
		commit: func(service.Todo) {
			if i := s.indexLocked(id); i >= 0 {
				s.todos[i].Title = title
				s.todos[i].Completed = completed
			}
			s.log.WithFields(logrus.Fields{"id": id, "completed": completed}).Debug("todo updated")
		},
		revert: func(err error) {
			opErr = s.failLocked(MsgUpdate, err)
		},
	})
	if err != nil {
		return opErr
	}
	return nil
}

// SetCompleted updates only the completed state of a todo.
func (s *Store) SetCompleted(ctx context.Context, id int, completed bool) error {
	cur, err := s.confirmed(id)
	if err != nil {
		return err
	}
	return s.Update(ctx, id, cur.Title, completed)
}

// Toggle flips the completed state of a todo.
func (s *Store) Toggle(ctx context.Context, id int) error {
	cur, err := s.confirmed(id)
	if err != nil {
		return err
	}
	return s.Update(ctx, id, cur.Title, !cur.Completed)
}

// Rename sets a new title. The title is trimmed; an unchanged title is a
// no-op and a blank one deletes the todo.
func (s *Store) Rename(ctx context.Context, id int, title string) error {
	cur, err := s.confirmed(id)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	switch title {
	case cur.Title:
		return nil
	case "":
		return s.Delete(ctx, id)
	}
	return s.Update(ctx, id, title, cur.Completed)
}

// refetchError marks a failure of the reload that follows a successful bulk update.
type refetchError struct{ err error }

func (e *refetchError) Error() string { return "reload: " + e.err.Error() }
func (e *refetchError) Unwrap() error { return e.err }

// ToggleAll completes every todo, or reopens every todo if all are already
// completed. The local collection flips immediately; only todos whose state
// differs from the target are sent, concurrently, and the first failure
// cancels the rest. On success the collection is reloaded. On failure the
// collection is reloaded to match whatever the backend accepted, and if that
// reload fails too the pre-toggle collection is restored. Every failure,
// including a failed reload after all updates landed, reports MsgBulkUpdate. Placeholders of
// in-flight creates are left alone.
func (s *Store) ToggleAll(ctx context.Context) error {
	var before []service.Todo
	var changed []service.Todo
	var opErr error

	_, err := optimistic(ctx, s, step[[]service.Todo]{
		apply: func() {
			before = cloneTodos(s.todos)
			target := !s.allCompletedLocked()
			for i, t := range s.todos {
				if _, ok := s.pending[t.ID]; ok || t.Completed == target {
					continue
				}
				t.Completed = target
				changed = append(changed, t)
				s.todos[i].Completed = target
			}
			s.log.WithFields(logrus.Fields{"target": target, "changed": len(changed)}).Debug("toggle all")
		},
		remote: func(ctx context.Context) ([]service.Todo, error) {
			g, gctx := errgroup.WithContext(ctx)
			for _, t := range changed {
				g.Go(func() error {
					if _, err := s.svc.UpdateTodo(gctx, t); err != nil {
						return fmt.Errorf("update %d: %w", t.ID, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
			todos, err := s.svc.ListTodos(ctx, s.userID)
			if err != nil {
				return nil, &refetchError{err: err}
			}
			return todos, nil
		},
		commit: func(todos []service.Todo) {
			s.replaceAllLocked(todos)
		},
		revert: func(err error) {
			// A failed reload after every update landed keeps the toggled collection.
			opErr = s.failLocked(MsgBulkUpdate, err)
		},
	})
	if err == nil {
		return nil
	}

	var rf *refetchError
	if !errors.As(err, &rf) {
		s.resync(ctx, before)
	}
	return opErr
}

// resync reloads the collection after a partially failed bulk update,
// falling back to before if the reload fails. The error slot is not touched.
func (s *Store) resync(ctx context.Context, before []service.Todo) {
	todos, err := s.svc.ListTodos(ctx, s.userID)

	s.mu.Lock()
	if err != nil {
		s.log.WithError(err).Debug("resync failed, restoring previous collection")
		s.replaceAllLocked(withoutPending(before, s.pending))
	} else {
		s.replaceAllLocked(todos)
	}
	s.mu.Unlock()
	s.notify()
}

// ClearCompleted deletes every completed todo concurrently. Each delete
// stands alone: confirmed ones are removed, failed ones stay (still
// completed) and the error slot is set if there was at least one failure.
func (s *Store) ClearCompleted(ctx context.Context) error {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		opErr := s.failLocked(MsgUnexpected, err)
		s.mu.Unlock()
		s.notify()
		return opErr
	}
	var completed []service.Todo
	for _, t := range s.todos {
		if _, ok := s.pending[t.ID]; !ok && t.Completed {
			completed = append(completed, t)
		}
	}
	s.mu.Unlock()

	if len(completed) == 0 {
		return nil
	}

	results := make([]error, len(completed))
	var wg sync.WaitGroup
	for i, t := range completed {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.svc.DeleteTodo(ctx, t.ID)
		}()
	}
	wg.Wait()

	s.mu.Lock()
	var failed []error
	for i, t := range completed {
		if results[i] != nil {
			failed = append(failed, fmt.Errorf("delete %d: %w", t.ID, results[i]))
			continue
		}
		s.removeLocked(t.ID)
	}
	s.log.WithFields(logrus.Fields{"cleared": len(completed) - len(failed), "failed": len(failed)}).Debug("clear completed")

	var opErr error
	if len(failed) > 0 {
		opErr = s.failLocked(MsgDelete, errors.Join(failed...))
	}
	s.mu.Unlock()
	s.notify()
	return opErr
}

// SetFilter changes the visible subset.
func (s *Store) SetFilter(m filter.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.notify()
}

// DismissError clears the error slot.
func (s *Store) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// ExpireError clears the error slot only if seq still names the current
// write, so a timer armed for an earlier failure never clears a later one
// that happens to carry the same message.
func (s *Store) ExpireError(seq uint64) bool {
	s.mu.Lock()
	if s.errMsg == "" || s.errSeq != seq {
		s.mu.Unlock()
		return false
	}
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
	return true
}

// ErrorMessage returns the current error message, or "".
func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Find returns the todo with the given ID.
func (s *Store) Find(id int) (service.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.todos[i], true
	}
	return service.Todo{}, false
}

// confirmed returns the todo with the given ID if it exists and is not a placeholder.
func (s *Store) confirmed(id int) (service.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; ok {
		return service.Todo{}, ErrPending
	}
	i := s.indexLocked(id)
	if i < 0 {
		return service.Todo{}, fmt.Errorf("%w: %d", ErrUnknownTodo, id)
	}
	return s.todos[i], nil
}

// failLocked records msg in the error slot and returns it as an *Error.
func (s *Store) failLocked(msg string, cause error) error {
	s.errMsg = msg
	s.errSeq++
	entry := s.log.WithField("reason", msg)
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Debug("operation failed")
	return &Error{Msg: msg, Err: cause}
}

// tempIDLocked returns a placeholder ID derived from the clock, unique in the collection.
func (s *Store) tempIDLocked() int {
	id := int(s.now().UnixMilli())
	for s.indexLocked(id) >= 0 {
		id++
	}
	return id
}

func (s *Store) indexLocked(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id int) {
	if i := s.indexLocked(id); i >= 0 {
		s.todos = append(s.todos[:i:i], s.todos[i+1:]...)
	}
}

func (s *Store) allCompletedLocked() bool {
	for _, t := range s.todos {
		if _, ok := s.pending[t.ID]; ok {
			continue
		}
		if !t.Completed {
			return false
		}
	}
	return true
}

// replaceAllLocked installs a fetched collection, keeping placeholders of
// in-flight creates at the end.
func (s *Store) replaceAllLocked(todos []service.Todo) {
	next := cloneTodos(todos)
	for _, t := range s.todos {
		if _, ok := s.pending[t.ID]; ok {
			next = append(next, t)
		}
	}
	s.todos = next
}

func withoutPending(todos []service.Todo, pending map[int]service.Todo) []service.Todo {
	out := make([]service.Todo, 0, len(todos))
	for _, t := range todos {
		if _, ok := pending[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

func cloneTodos(todos []service.Todo) []service.Todo {
	out := make([]service.Todo, len(todos))
	copy(out, todos)
	return out
}
