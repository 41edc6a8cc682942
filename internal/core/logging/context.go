package logging

import "context"

type contextKey string

const (
	operationKey contextKey = "op"
	taskIDKey    contextKey = "task_id"
)

// WithOperation tags the context with the name of the store operation in progress.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// WithTaskID tags the context with the task an operation targets.
func WithTaskID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// GetOperation retrieves the operation name from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}

// GetTaskID retrieves the task ID from the context.
func GetTaskID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(taskIDKey).(int64)
	return id, ok
}
