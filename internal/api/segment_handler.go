package api

import (
	"log/slog"
	"net/http"

	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/AutomatedMarketer/flodesk/internal/platform/logger"
)

// SegmentHandler handles segment catalog and custom field HTTP requests.
type SegmentHandler struct {
	gateway  flodesk.Gateway
	segments flodesk.SegmentLister
	logger   *slog.Logger
}

// NewSegmentHandler creates a new SegmentHandler.
func NewSegmentHandler(
	gateway flodesk.Gateway,
	segments flodesk.SegmentLister,
	logger *slog.Logger,
) *SegmentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SegmentHandler")
	}

	return &SegmentHandler{
		gateway:  gateway,
		segments: segments,
		logger:   logger.With(slog.String("component", "segment_handler")),
	}
}

// Get handles GET /segments requests. With an id query parameter it looks
// up a single segment; without one it returns the full catalog shaped as
// an options list, degrading to an empty options list on upstream failure
// so form-rendering callers always receive the shape they expect.
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id != "" {
		executeAndRespond(w, r, h.gateway, flodesk.ActionGetSegment,
			flodesk.GetSegmentPayload{ID: decodeEmailOnce(id)}, h.logger)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	apiKey, ok := shared.GetAPIKey(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "API key is required")
		return
	}

	options, err := h.segments.ListSegments(r.Context(), apiKey)
	if err != nil {
		log.Debug("segment listing failed", slog.String("error", ErrorDetail(err)))
		shared.RespondWithJSON(w, r, MapErrorToStatusCode(err), map[string]interface{}{
			"success": false,
			"options": []flodesk.SegmentOption{},
			"error":   ErrorDetail(err),
		})
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"options": options})
}

// GetCustomFields handles GET /custom-fields requests.
func (h *SegmentHandler) GetCustomFields(w http.ResponseWriter, r *http.Request) {
	executeAndRespond(w, r, h.gateway,
		flodesk.ActionGetCustomFields, flodesk.EmptyPayload{}, h.logger)
}
