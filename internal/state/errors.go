package state

import "errors"

// User-facing failure messages. These are the only strings that ever reach
// the error channel.
const (
	MsgLoad       = "Unable to load todos"
	MsgEmptyTitle = "Title should not be empty"
	MsgAdd        = "Unable to add a todo"
	MsgDelete     = "Unable to delete a todo"
	MsgUpdate     = "Unable to update a todo"
	MsgBulkUpdate = "Unable to update todos"
	MsgUnexpected = "Unexpected error"
)

// ErrSubmitting is returned by Add while another create is in flight.
var ErrSubmitting = errors.New("a todo is already being added")

// ErrUnknownTodo is returned when an operation names an ID not in the collection.
var ErrUnknownTodo = errors.New("unknown todo")

// ErrPending is returned for operations on a todo the server has not confirmed yet.
var ErrPending = errors.New("todo is still being created")

// Error is a failed transition. Msg is one of the Msg* constants; Err is the
// underlying cause, nil for validation failures.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local validation failure that never
// reached the backend.
func IsValidation(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Msg == MsgEmptyTitle
}
