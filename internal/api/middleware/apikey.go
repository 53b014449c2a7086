package middleware

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
)

// basicPrefix is the Authorization scheme prefix used by Basic auth.
const basicPrefix = "Basic "

// ExtractAPIKey parses an Authorization header value into the caller's
// upstream API key. It never fails: a malformed Basic payload logs and
// returns empty, meaning no credential is present.
//
// Supported forms:
//   - "Basic <base64(key:anything)>" — the key is everything before the
//     first colon of the decoded text
//   - "Basic <base64(key)>" — no colon; the whole decoded text is the key
//   - anything else — the raw header value is treated as the key
//     (backward-compatibility fallback for callers that skip the scheme)
func ExtractAPIKey(header string) string {
	if header == "" {
		return ""
	}

	if strings.HasPrefix(header, basicPrefix) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
		if err != nil {
			slog.Warn("failed to decode Basic authorization header", "error", err)
			return ""
		}
		credentials := string(decoded)
		if i := strings.Index(credentials, ":"); i >= 0 {
			return credentials[:i]
		}
		return credentials
	}

	return header
}

// RequireAPIKey extracts the caller's API key from the Authorization header
// and stores it in the request context. Requests without a credential are
// rejected with 401 before any upstream call can happen.
func RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := ExtractAPIKey(r.Header.Get("Authorization"))
		if apiKey == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "API key is required")
			return
		}

		ctx := context.WithValue(r.Context(), shared.APIKeyContextKey, apiKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAPIKey extracts the API key from the request context.
// Returns the key and a boolean indicating if it was found.
func GetAPIKey(r *http.Request) (string, bool) {
	return shared.GetAPIKey(r.Context())
}
