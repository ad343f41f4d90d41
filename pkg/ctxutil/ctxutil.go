package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	jobIDKey     ctxKey = "job_id"
	requestIDKey ctxKey = "request_id"
)

// WithJobID stores the subtitle download job ID in the context.
func WithJobID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromCtx extracts the download job ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func JobIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(jobIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LogAttrs returns the request and job IDs present in ctx as slog-style
// key/value pairs.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if id, ok := JobIDFromCtx(ctx); ok {
		attrs = append(attrs, "job_id", id.String())
	}
	return attrs
}
