package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AutomatedMarketer/flodesk/internal/redact"
)

// ErrorResponse defines the standard error envelope returned by every route
// on failure. Error carries the upstream provider's own error detail when
// one exists; Message is always a safe, user-facing summary.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes a 200 envelope with success:true merged over the
// given fields, so callers receive `{"success":true, ...data}` flat rather
// than nested under a data key.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, data map[string]interface{}) {
	body := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		body[k] = v
	}
	body["success"] = true
	RespondWithJSON(w, r, http.StatusOK, body)
}

// RespondWithError writes a JSON error envelope with the given status code
// and message. It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Message: message,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a JSON error envelope including an error
// detail field, and logs the full (redacted) error. The detail string must
// already be safe to expose; the raw error only ever reaches the logs.
//
// Log level strategy: 5xx at ERROR, 4xx at DEBUG. This keeps routine
// validation noise out of production logs while upstream failures surface.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	detail string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Message: userMessage,
		Error:   detail,
		TraceID: traceID,
	})
}
