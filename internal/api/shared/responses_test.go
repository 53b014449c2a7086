package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithSuccess(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]interface{}
		expected map[string]interface{}
	}{
		{
			name: "merges data fields beside success flag",
			data: map[string]interface{}{"email": "a@b.com", "status": "active"},
			expected: map[string]interface{}{
				"success": true,
				"email":   "a@b.com",
				"status":  "active",
			},
		},
		{
			name:     "empty data still carries success",
			data:     map[string]interface{}{},
			expected: map[string]interface{}{"success": true},
		},
		{
			name:     "nil data still carries success",
			data:     nil,
			expected: map[string]interface{}{"success": true},
		},
		{
			name:     "success flag from data cannot be overridden",
			data:     map[string]interface{}{"success": false},
			expected: map[string]interface{}{"success": true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithSuccess(w, req, tc.data)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.expected, body)
		})
	}
}

func TestRespondWithError(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "API key is required")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "API key is required", body["message"])
	assert.NotEmpty(t, body["trace_id"])
	assert.NotContains(t, body, "error")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusBadGateway,
		"Failed to fetch subscriber", "upstream unavailable",
		errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to fetch subscriber", body["message"])
	assert.Equal(t, "upstream unavailable", body["error"])
}

func TestTraceIDRoundTrip(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "", GetTraceID(req.Context()))

	ctx := SetTraceID(req.Context())
	first := GetTraceID(ctx)
	assert.NotEmpty(t, first)

	// A second call replaces the trace ID
	second := GetTraceID(SetTraceID(ctx))
	assert.NotEqual(t, first, second)
}
