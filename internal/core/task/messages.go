package task

import (
	"fmt"

	"github.com/colonyops/taskr/internal/core/notify"
)

// Outcome names a result of a Store operation that is surfaced to the user.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeLoadFailed
	OutcomeSaveFailed
	OutcomeEmpty
	OutcomeTooLong
	OutcomeDuplicate
	OutcomeAdded
	OutcomeNotFound
	OutcomeCompleted
	OutcomeActivated
	OutcomeInvalidTask
	OutcomeUpdated
	OutcomeEditCancelled
	OutcomeDeleted
	OutcomeFilterChanged
)

type message struct {
	kind   notify.Kind
	format string
}

var messages = map[Outcome]message{
	OutcomeLoaded:        {notify.KindInfo, "Tasks loaded successfully!"},
	OutcomeLoadFailed:    {notify.KindError, "Failed to load tasks. Starting fresh."},
	OutcomeSaveFailed:    {notify.KindError, "Failed to save tasks!"},
	OutcomeEmpty:         {notify.KindWarning, "Please enter a task!"},
	OutcomeTooLong:       {notify.KindWarning, fmt.Sprintf("Task is too long! Max %d characters.", MaxTextLength)},
	OutcomeDuplicate:     {notify.KindWarning, "This task already exists!"},
	OutcomeAdded:         {notify.KindSuccess, "Task added successfully!"},
	OutcomeNotFound:      {notify.KindError, "Task not found!"},
	OutcomeCompleted:     {notify.KindSuccess, "Task marked as completed!"},
	OutcomeActivated:     {notify.KindSuccess, "Task marked as active!"},
	OutcomeInvalidTask:   {notify.KindError, "Invalid task!"},
	OutcomeUpdated:       {notify.KindSuccess, "Task updated successfully!"},
	OutcomeEditCancelled: {notify.KindInfo, "Edit cancelled"},
	OutcomeDeleted:       {notify.KindSuccess, "Task deleted successfully!"},
	OutcomeFilterChanged: {notify.KindInfo, "Showing %s tasks"},
}

// Message returns the notification kind and text for an outcome. Args fill
// the format verbs of outcomes that take them (the filter name for
// OutcomeFilterChanged).
func Message(o Outcome, args ...any) (notify.Kind, string) {
	m, ok := messages[o]
	if !ok {
		return notify.KindInfo, ""
	}
	if len(args) > 0 {
		return m.kind, fmt.Sprintf(m.format, args...)
	}
	return m.kind, m.format
}

func reasonOutcome(r Reason) Outcome {
	switch r {
	case ReasonTooLong:
		return OutcomeTooLong
	case ReasonDuplicate:
		return OutcomeDuplicate
	default:
		return OutcomeEmpty
	}
}
