package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// ContextKey is the type for values stored in the request context.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's id (int64).
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the per-request trace id.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context for correlating logs
// and error responses.
func SetTraceID(ctx context.Context) context.Context {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(b))
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
