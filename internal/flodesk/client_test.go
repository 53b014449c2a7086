package flodesk_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AutomatedMarketer/flodesk/internal/config"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the client sent upstream.
type recordedRequest struct {
	method string
	path   string
	user   string
	body   map[string]interface{}
}

func newTestClient(t *testing.T, status int, response string) (*flodesk.Client, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.user, _, _ = r.BasicAuth()
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := flodesk.NewClient(config.FlodeskConfig{
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	}, logger)
	return client, rec
}

func TestExecuteRouting(t *testing.T) {
	tests := []struct {
		name         string
		request      flodesk.Request
		wantMethod   string
		wantPath     string
		wantBodyKey  string
		wantBodyLen  int
		wantNoBody   bool
		responseBody string
	}{
		{
			name: "get all subscribers",
			request: flodesk.Request{
				Action:  flodesk.ActionGetAllSubscribers,
				APIKey:  "key-1",
				Payload: flodesk.EmptyPayload{},
			},
			wantMethod:   http.MethodGet,
			wantPath:     "/subscribers",
			wantNoBody:   true,
			responseBody: `{"data":[]}`,
		},
		{
			name: "get subscriber",
			request: flodesk.Request{
				Action:  flodesk.ActionGetSubscriber,
				APIKey:  "key-1",
				Payload: flodesk.GetSubscriberPayload{Email: "jane@example.com"},
			},
			wantMethod:   http.MethodGet,
			wantPath:     "/subscribers/jane@example.com",
			wantNoBody:   true,
			responseBody: `{"email":"jane@example.com"}`,
		},
		{
			name: "create or update forwards body",
			request: flodesk.Request{
				Action: flodesk.ActionCreateOrUpdateSubscriber,
				APIKey: "key-1",
				Payload: flodesk.CreateOrUpdateSubscriberPayload{
					Body: map[string]interface{}{"email": "jane@example.com", "first_name": "Jane"},
				},
			},
			wantMethod:   http.MethodPost,
			wantPath:     "/subscribers",
			wantBodyKey:  "email",
			responseBody: `{"email":"jane@example.com"}`,
		},
		{
			name: "add to segments uses camelCase key",
			request: flodesk.Request{
				Action: flodesk.ActionAddToSegments,
				APIKey: "key-1",
				Payload: flodesk.AddToSegmentsPayload{
					Email:      "jane@example.com",
					SegmentIDs: []string{"seg-1", "seg-2"},
				},
			},
			wantMethod:   http.MethodPost,
			wantPath:     "/subscribers/jane@example.com/segments",
			wantBodyKey:  "segmentIds",
			wantBodyLen:  2,
			responseBody: `{}`,
		},
		{
			name: "remove from segment uses snake_case key",
			request: flodesk.Request{
				Action: flodesk.ActionRemoveFromSegment,
				APIKey: "key-1",
				Payload: flodesk.RemoveFromSegmentPayload{
					Email:      "jane@example.com",
					SegmentIDs: []string{"seg-1"},
				},
			},
			wantMethod:   http.MethodDelete,
			wantPath:     "/subscribers/jane@example.com/segments",
			wantBodyKey:  "segment_ids",
			wantBodyLen:  1,
			responseBody: `{}`,
		},
		{
			name: "update segments uses snake_case key",
			request: flodesk.Request{
				Action: flodesk.ActionUpdateSubscriberSegments,
				APIKey: "key-1",
				Payload: flodesk.UpdateSubscriberSegmentsPayload{
					Email:      "jane@example.com",
					SegmentIDs: []string{"seg-3"},
				},
			},
			wantMethod:   http.MethodPatch,
			wantPath:     "/subscribers/jane@example.com/segments",
			wantBodyKey:  "segment_ids",
			wantBodyLen:  1,
			responseBody: `{}`,
		},
		{
			name: "unsubscribe from all",
			request: flodesk.Request{
				Action:  flodesk.ActionUnsubscribeFromAll,
				APIKey:  "key-1",
				Payload: flodesk.UnsubscribeFromAllPayload{Email: "jane@example.com"},
			},
			wantMethod:   http.MethodPost,
			wantPath:     "/subscribers/jane@example.com/unsubscribe",
			wantNoBody:   true,
			responseBody: `{}`,
		},
		{
			name: "get segment",
			request: flodesk.Request{
				Action:  flodesk.ActionGetSegment,
				APIKey:  "key-1",
				Payload: flodesk.GetSegmentPayload{ID: "jane@example.com"},
			},
			wantMethod:   http.MethodGet,
			wantPath:     "/segments/jane@example.com",
			wantNoBody:   true,
			responseBody: `{"id":"seg-1"}`,
		},
		{
			name: "get custom fields",
			request: flodesk.Request{
				Action:  flodesk.ActionGetCustomFields,
				APIKey:  "key-1",
				Payload: flodesk.EmptyPayload{},
			},
			wantMethod:   http.MethodGet,
			wantPath:     "/custom-fields",
			wantNoBody:   true,
			responseBody: `{"fields":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, http.StatusOK, tt.responseBody)

			_, err := client.Execute(context.Background(), tt.request)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
			assert.Equal(t, "key-1", rec.user, "API key travels as Basic auth username")

			if tt.wantNoBody {
				assert.Nil(t, rec.body)
			}
			if tt.wantBodyKey != "" {
				require.Contains(t, rec.body, tt.wantBodyKey)
				if tt.wantBodyLen > 0 {
					assert.Len(t, rec.body[tt.wantBodyKey], tt.wantBodyLen)
				}
			}
		})
	}
}

func TestExecuteSegmentsOnly(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK,
		`{"email":"jane@example.com","status":"active","segments":[{"id":"seg-1","name":"News"}]}`)

	res, err := client.Execute(context.Background(), flodesk.Request{
		Action:  flodesk.ActionGetSubscriber,
		APIKey:  "key-1",
		Payload: flodesk.GetSubscriberPayload{Email: "jane@example.com", SegmentsOnly: true},
	})
	require.NoError(t, err)

	assert.Contains(t, res, "segments")
	assert.NotContains(t, res, "email", "segmentsOnly strips everything but the segments list")
}

func TestExecuteUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "message field",
			status:      http.StatusNotFound,
			body:        `{"message":"not found"}`,
			wantMessage: "not found",
		},
		{
			name:        "error field",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":"invalid segment id"}`,
			wantMessage: "invalid segment id",
		},
		{
			name:        "unparseable body falls back to status text",
			status:      http.StatusBadGateway,
			body:        `<html>oops</html>`,
			wantMessage: http.StatusText(http.StatusBadGateway),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.status, tt.body)

			_, err := client.Execute(context.Background(), flodesk.Request{
				Action:  flodesk.ActionGetSubscriber,
				APIKey:  "key-1",
				Payload: flodesk.GetSubscriberPayload{Email: "jane@example.com"},
			})
			require.Error(t, err)

			apiErr, ok := flodesk.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestExecuteRejectsMismatchedPayload(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{}`)

	_, err := client.Execute(context.Background(), flodesk.Request{
		Action:  flodesk.ActionGetSubscriber,
		APIKey:  "key-1",
		Payload: flodesk.EmptyPayload{},
	})
	assert.ErrorIs(t, err, flodesk.ErrUnknownAction)

	_, err = client.Execute(context.Background(), flodesk.Request{
		Action:  flodesk.Action("dropAllSubscribers"),
		APIKey:  "key-1",
		Payload: flodesk.EmptyPayload{},
	})
	assert.ErrorIs(t, err, flodesk.ErrUnknownAction)
}

func TestListSegments(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK,
		`{"data":[{"id":"seg-1","name":"Newsletter"},{"id":"seg-2","name":"Promos"},{"name":"no id, skipped"}]}`)

	options, err := client.ListSegments(context.Background(), "key-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/segments", rec.path)
	assert.Equal(t, []flodesk.SegmentOption{
		{Label: "Newsletter", Value: "seg-1"},
		{Label: "Promos", Value: "seg-2"},
	}, options)
}

func TestListSegmentsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusUnauthorized, `{"message":"invalid api key"}`)

	_, err := client.ListSegments(context.Background(), "bad-key")
	apiErr, ok := flodesk.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestExecuteEmptyResponseBody(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, "")

	res, err := client.Execute(context.Background(), flodesk.Request{
		Action:  flodesk.ActionUnsubscribeFromAll,
		APIKey:  "key-1",
		Payload: flodesk.UnsubscribeFromAllPayload{Email: "jane@example.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}
