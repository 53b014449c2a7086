package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
)

// Recovery is the global safety net: it converts any panic escaping a
// handler into the standard 500 error envelope instead of killing the
// connection. Handlers are expected to catch their own errors; this only
// fires for genuine bugs.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				slog.Error("recovered from panic in handler",
					slog.String("trace_id", shared.GetTraceID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"An unexpected error occurred", fmt.Sprintf("%v", rec), nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
