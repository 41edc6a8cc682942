package task

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation references a task id that is
	// not in the list.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidTask is returned by StartEdit for an id that does not resolve.
	ErrInvalidTask = errors.New("invalid task")
	// ErrAlreadyLoaded is returned when Load is called more than once.
	ErrAlreadyLoaded = errors.New("tasks already loaded")
	// ErrInvalidFilter is returned for a filter outside all, active and completed.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrCorrupt is returned when a stored payload is not a list of tasks.
	ErrCorrupt = errors.New("corrupt task data")
)

// Reason identifies why task text was rejected.
type Reason string

const (
	ReasonEmpty     Reason = "empty"
	ReasonTooLong   Reason = "too_long"
	ReasonDuplicate Reason = "duplicate"
)

// ValidationError reports user-correctable task text.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "task text is empty"
	case ReasonTooLong:
		return fmt.Sprintf("task text exceeds %d characters", MaxTextLength)
	case ReasonDuplicate:
		return "task text duplicates an existing task"
	default:
		return "invalid task text"
	}
}

// PersistenceError wraps a failed read or write of the task slot.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError with the given reason.
// An empty reason matches any validation failure.
func IsValidation(err error, reason Reason) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	return reason == "" || verr.Reason == reason
}
