package api

import (
	"net/http"

	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/AutomatedMarketer/flodesk/internal/redact"
)

// MapErrorToStatusCode maps gateway errors to HTTP status codes. Upstream
// rejections relay the status the provider reported; everything else is a
// 500 so internal failure modes never leak through status codes.
func MapErrorToStatusCode(err error) int {
	if apiErr, ok := flodesk.AsAPIError(err); ok && apiErr.StatusCode >= http.StatusBadRequest {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns the message exposed to the caller. Upstream
// error messages pass through verbatim (they belong to the caller's own
// provider account); anything else collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if apiErr, ok := flodesk.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "An unexpected error occurred"
}

// ErrorDetail returns the value of the envelope's error field: the upstream
// message when one exists, otherwise the redacted error text.
func ErrorDetail(err error) string {
	if apiErr, ok := flodesk.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return redact.Error(err)
}
