package flodesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AutomatedMarketer/flodesk/internal/config"
	"github.com/AutomatedMarketer/flodesk/internal/redact"
)

// Client is the HTTP implementation of Gateway and SegmentLister against the
// Flodesk v1 API. The caller's API key travels as the Basic auth username
// with a blank password, which is how Flodesk authenticates requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from configuration. The base URL is normalized
// to carry no trailing slash.
func NewClient(cfg config.FlodeskConfig, logger *slog.Logger) *Client {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Client")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.With(slog.String("component", "flodesk_client")),
	}
}

var _ Gateway = (*Client)(nil)
var _ SegmentLister = (*Client)(nil)

// Execute maps the action to an upstream endpoint, performs the call and
// returns the decoded response. Upstream rejections come back as *APIError.
func (c *Client) Execute(ctx context.Context, req Request) (Result, error) {
	switch req.Action {
	case ActionGetAllSubscribers:
		if _, ok := req.Payload.(EmptyPayload); !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		return c.do(ctx, req.APIKey, http.MethodGet, "/subscribers", nil)

	case ActionGetSubscriber:
		p, ok := req.Payload.(GetSubscriberPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		res, err := c.do(ctx, req.APIKey, http.MethodGet, "/subscribers/"+url.PathEscape(p.Email), nil)
		if err != nil {
			return nil, err
		}
		if p.SegmentsOnly {
			segments, ok := res["segments"]
			if !ok {
				segments = []interface{}{}
			}
			return Result{"segments": segments}, nil
		}
		return res, nil

	case ActionCreateOrUpdateSubscriber:
		p, ok := req.Payload.(CreateOrUpdateSubscriberPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		return c.do(ctx, req.APIKey, http.MethodPost, "/subscribers", p.Body)

	case ActionAddToSegments:
		p, ok := req.Payload.(AddToSegmentsPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		// Additions use the camelCase key; see RemoveFromSegmentPayload.
		body := map[string]interface{}{"segmentIds": p.SegmentIDs}
		return c.do(ctx, req.APIKey, http.MethodPost,
			"/subscribers/"+url.PathEscape(p.Email)+"/segments", body)

	case ActionRemoveFromSegment:
		p, ok := req.Payload.(RemoveFromSegmentPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		body := map[string]interface{}{"segment_ids": p.SegmentIDs}
		return c.do(ctx, req.APIKey, http.MethodDelete,
			"/subscribers/"+url.PathEscape(p.Email)+"/segments", body)

	case ActionUpdateSubscriberSegments:
		p, ok := req.Payload.(UpdateSubscriberSegmentsPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		body := map[string]interface{}{"segment_ids": p.SegmentIDs}
		return c.do(ctx, req.APIKey, http.MethodPatch,
			"/subscribers/"+url.PathEscape(p.Email)+"/segments", body)

	case ActionUnsubscribeFromAll:
		p, ok := req.Payload.(UnsubscribeFromAllPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		return c.do(ctx, req.APIKey, http.MethodPost,
			"/subscribers/"+url.PathEscape(p.Email)+"/unsubscribe", nil)

	case ActionGetSegment:
		p, ok := req.Payload.(GetSegmentPayload)
		if !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		return c.do(ctx, req.APIKey, http.MethodGet, "/segments/"+url.PathEscape(p.ID), nil)

	case ActionGetCustomFields:
		if _, ok := req.Payload.(EmptyPayload); !ok {
			return nil, fmt.Errorf("%w: %s payload mismatch", ErrUnknownAction, req.Action)
		}
		return c.do(ctx, req.APIKey, http.MethodGet, "/custom-fields", nil)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

// ListSegments fetches the full segment catalog and shapes it as options.
func (c *Client) ListSegments(ctx context.Context, apiKey string) ([]SegmentOption, error) {
	res, err := c.do(ctx, apiKey, http.MethodGet, "/segments", nil)
	if err != nil {
		return nil, err
	}

	options := []SegmentOption{}
	data, ok := res["data"].([]interface{})
	if !ok {
		return options, nil
	}
	for _, entry := range data {
		segment, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := segment["id"].(string)
		name, _ := segment["name"].(string)
		if id == "" {
			continue
		}
		options = append(options, SegmentOption{Label: name, Value: id})
	}
	return options, nil
}

// upstreamError is the error body shape Flodesk returns on rejection.
// Some endpoints use "message", others "error".
type upstreamError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(
	ctx context.Context,
	apiKey, method, path string,
	body interface{},
) (Result, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("flodesk: failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("flodesk: failed to build request: %w", err)
	}
	req.SetBasicAuth(apiKey, "")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("upstream request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("flodesk: request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close upstream response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flodesk: failed to read response: %w", err)
	}

	c.logger.Debug("upstream request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		var ue upstreamError
		_ = json.Unmarshal(raw, &ue)
		message := ue.Message
		if message == "" {
			message = ue.Error
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Result{}, nil
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		// A few endpoints answer with a bare array.
		var list []interface{}
		if listErr := json.Unmarshal(raw, &list); listErr == nil {
			return Result{"data": list}, nil
		}
		return nil, fmt.Errorf("flodesk: failed to decode response: %w", err)
	}
	return result, nil
}
