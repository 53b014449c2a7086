package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the key type for context values set by this layer.
type ContextKey string

// Context keys for various values
const (
	// APIKeyContextKey is the context key for the caller's upstream API key,
	// set by the API key middleware after credential extraction.
	APIKeyContextKey ContextKey = "apiKey"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// GetAPIKey retrieves the caller's API key from the context.
// Returns the key and a boolean indicating if it was found.
func GetAPIKey(ctx context.Context) (string, bool) {
	apiKey, ok := ctx.Value(APIKeyContextKey).(string)
	if !ok || apiKey == "" {
		return "", false
	}
	return apiKey, true
}
