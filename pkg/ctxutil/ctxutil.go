package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "run_id"

// WithRunID stores the conversion run ID in the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// WithNewRunID stores a freshly generated run ID and returns it as well.
func WithNewRunID(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return WithRunID(ctx, id), id
}

// RunIDFromCtx extracts the run ID from the context.
// Returns an empty string if absent.
func RunIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// Logger returns log annotated with the run ID from ctx, if any.
func Logger(ctx context.Context, log *slog.Logger) *slog.Logger {
	if id := RunIDFromCtx(ctx); id != "" {
		return log.With(slog.String("run_id", id))
	}
	return log
}
