package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts op and task_id from the event context and adds them
// to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if op := GetOperation(ctx); op != "" {
		e.Str("op", op)
	}

	if id, ok := GetTaskID(ctx); ok {
		e.Int64("task_id", id)
	}
}
