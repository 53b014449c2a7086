package flodesk

import "context"

// Action identifies one upstream operation the gateway knows how to execute.
// The set is closed: handlers may only dispatch actions named here.
type Action string

const (
	ActionGetAllSubscribers        Action = "getAllSubscribers"
	ActionGetSubscriber            Action = "getSubscriber"
	ActionCreateOrUpdateSubscriber Action = "createOrUpdateSubscriber"
	ActionAddToSegments            Action = "addToSegments"
	ActionRemoveFromSegment        Action = "removeFromSegment"
	ActionUpdateSubscriberSegments Action = "updateSubscriberSegments"
	ActionUnsubscribeFromAll       Action = "unsubscribeFromAll"
	ActionGetSegment               Action = "getSegment"
	ActionGetCustomFields          Action = "getCustomFields"
)

// Payload is the marker interface for per-action payloads. Each action has
// exactly one payload type; the closed set keeps the dispatcher contract
// explicit instead of passing open maps around.
type Payload interface {
	isPayload()
}

// EmptyPayload is used by actions that carry no parameters
// (getAllSubscribers, getCustomFields).
type EmptyPayload struct{}

// GetSubscriberPayload fetches a single subscriber. When SegmentsOnly is set
// the gateway returns only the subscriber's segments list.
type GetSubscriberPayload struct {
	Email        string
	SegmentsOnly bool
}

// CreateOrUpdateSubscriberPayload forwards the caller's request body to the
// upstream create-or-update endpoint unmodified.
type CreateOrUpdateSubscriberPayload struct {
	Body map[string]interface{}
}

// AddToSegmentsPayload adds a subscriber to segments. The upstream contract
// uses the camelCase segmentIds key for additions.
type AddToSegmentsPayload struct {
	Email      string
	SegmentIDs []string
}

// RemoveFromSegmentPayload removes a subscriber from segments. Removal uses
// the snake_case segment_ids key; the asymmetry with AddToSegmentsPayload
// mirrors the upstream contract and must be preserved.
type RemoveFromSegmentPayload struct {
	Email      string
	SegmentIDs []string
}

// UpdateSubscriberSegmentsPayload replaces a subscriber's segment set.
// Uses the snake_case segment_ids key, like removal.
type UpdateSubscriberSegmentsPayload struct {
	Email      string
	SegmentIDs []string
}

// UnsubscribeFromAllPayload unsubscribes a subscriber from all lists.
type UnsubscribeFromAllPayload struct {
	Email string
}

// GetSegmentPayload looks up a single segment. ID is opaque to this layer;
// callers pass the decoded email-like identifier from the query string.
type GetSegmentPayload struct {
	ID string
}

func (EmptyPayload) isPayload()                    {}
func (GetSubscriberPayload) isPayload()            {}
func (CreateOrUpdateSubscriberPayload) isPayload() {}
func (AddToSegmentsPayload) isPayload()            {}
func (RemoveFromSegmentPayload) isPayload()        {}
func (UpdateSubscriberSegmentsPayload) isPayload() {}
func (UnsubscribeFromAllPayload) isPayload()       {}
func (GetSegmentPayload) isPayload()               {}

// Request pairs an action with the caller's API key and its payload.
// It is built once per inbound HTTP request and consumed exactly once.
type Request struct {
	Action  Action
	APIKey  string
	Payload Payload
}

// Result is the decoded JSON object returned by a successful upstream call.
type Result map[string]interface{}

// SegmentOption is one entry of the segment catalog, shaped for callers
// that render the catalog as a select-input options list.
type SegmentOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Gateway executes named actions against the upstream provider. The real
// implementation is Client; handlers depend on this interface so tests can
// substitute a fake.
type Gateway interface {
	Execute(ctx context.Context, req Request) (Result, error)
}

// SegmentLister returns the full segment catalog. Kept separate from Gateway
// because the no-id /segments route bypasses the generic action dispatch.
type SegmentLister interface {
	ListSegments(ctx context.Context, apiKey string) ([]SegmentOption, error)
}
