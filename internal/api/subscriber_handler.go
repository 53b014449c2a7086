// Package api provides HTTP handlers for the proxy's REST surface.
package api

import (
	"log/slog"
	"net/http"

	"github.com/AutomatedMarketer/flodesk/internal/api/shared"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/AutomatedMarketer/flodesk/internal/platform/logger"
)

// SubscriberHandler handles subscriber-related HTTP requests.
type SubscriberHandler struct {
	gateway flodesk.Gateway
	logger  *slog.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(gateway flodesk.Gateway, logger *slog.Logger) *SubscriberHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SubscriberHandler")
	}

	return &SubscriberHandler{
		gateway: gateway,
		logger:  logger.With(slog.String("component", "subscriber_handler")),
	}
}

// List handles GET /subscribers requests. Without an id query parameter it
// fetches all subscribers; with one it looks up that subscriber's segments.
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		executeAndRespond(w, r, h.gateway,
			flodesk.ActionGetAllSubscribers, flodesk.EmptyPayload{}, h.logger)
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionGetSubscriber,
		flodesk.GetSubscriberPayload{Email: decodeEmailOnce(id), SegmentsOnly: true}, h.logger)
}

// Get handles GET /subscribers/{email} requests.
func (h *SubscriberHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := pathEmail(r)
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionGetSubscriber,
		flodesk.GetSubscriberPayload{Email: email, SegmentsOnly: true}, h.logger)
}

// CreateOrUpdate handles POST /subscribers requests. The body is forwarded
// upstream unmodified once the email field is confirmed present.
func (h *SubscriberHandler) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var body map[string]interface{}
	if err := shared.DecodeJSON(r, &body); err != nil {
		log.Debug("failed to decode subscriber body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	email, _ := body["email"].(string)
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionCreateOrUpdateSubscriber,
		flodesk.CreateOrUpdateSubscriberPayload{Body: body}, h.logger)
}

// AddToSegments handles POST /subscribers/{email}/segments requests.
func (h *SubscriberHandler) AddToSegments(w http.ResponseWriter, r *http.Request) {
	email, ids, ok := h.segmentParams(w, r)
	if !ok {
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionAddToSegments,
		flodesk.AddToSegmentsPayload{Email: email, SegmentIDs: ids}, h.logger)
}

// RemoveFromSegment handles DELETE /subscribers/{email}/segments requests.
func (h *SubscriberHandler) RemoveFromSegment(w http.ResponseWriter, r *http.Request) {
	email, ids, ok := h.segmentParams(w, r)
	if !ok {
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionRemoveFromSegment,
		flodesk.RemoveFromSegmentPayload{Email: email, SegmentIDs: ids}, h.logger)
}

// UpdateSegments handles PATCH /subscribers/{email}/segments requests.
func (h *SubscriberHandler) UpdateSegments(w http.ResponseWriter, r *http.Request) {
	email, ids, ok := h.segmentParams(w, r)
	if !ok {
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionUpdateSubscriberSegments,
		flodesk.UpdateSubscriberSegmentsPayload{Email: email, SegmentIDs: ids}, h.logger)
}

// Unsubscribe handles POST /subscribers/{email}/unsubscribe requests.
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := pathEmail(r)
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	executeAndRespond(w, r, h.gateway, flodesk.ActionUnsubscribeFromAll,
		flodesk.UnsubscribeFromAllPayload{Email: email}, h.logger)
}

// segmentParams validates the common inputs of the three segment routes:
// a non-empty path email and a non-empty segment ID list in the body.
// Writes the 400 response itself when validation fails.
func (h *SubscriberHandler) segmentParams(
	w http.ResponseWriter,
	r *http.Request,
) (string, []string, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email := pathEmail(r)
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return "", nil, false
	}

	var body SegmentIDsRequest
	if err := shared.DecodeJSON(r, &body); err != nil {
		log.Debug("failed to decode segment ids body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return "", nil, false
	}

	if err := shared.ValidateRequest(&body); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return "", nil, false
	}

	return email, body.IDs(), true
}
