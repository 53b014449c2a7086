package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/AutomatedMarketer/flodesk/internal/platform/logger"
)

// decodeEmailOnce normalizes an email-like path or query value. The router
// already percent-decodes once; this applies at most one more decode for
// clients that double-encode, and only when the value still looks encoded.
// Decode failure falls back to the raw value.
func decodeEmailOnce(raw string) string {
	if !strings.Contains(raw, "%") {
		return raw
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// pathEmail extracts and normalizes the {email} path parameter.
func pathEmail(r *http.Request) string {
	return decodeEmailOnce(chi.URLParam(r, "email"))
}

// executeAndRespond runs one gateway action for the authenticated caller
// and writes the envelope: flattened data on success, status-mapped error
// envelope on failure. Every dispatching handler funnels through here so
// the success/error shapes cannot drift between routes.
func executeAndRespond(
	w http.ResponseWriter,
	r *http.Request,
	gateway flodesk.Gateway,
	action flodesk.Action,
	payload flodesk.Payload,
	log *slog.Logger,
) {
	log = logger.FromContextOrDefault(r.Context(), log)

	apiKey, ok := shared.GetAPIKey(r.Context())
	if !ok {
		// The middleware guarantees a key; reaching this means a route was
		// registered outside the protected group.
		log.Warn("API key missing from request context", slog.String("path", r.URL.Path))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "API key is required")
		return
	}

	result, err := gateway.Execute(r.Context(), flodesk.Request{
		Action:  action,
		APIKey:  apiKey,
		Payload: payload,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), ErrorDetail(err), err)
		return
	}

	log.Debug("action completed", slog.String("action", string(action)))
	shared.RespondWithSuccess(w, r, result)
}
