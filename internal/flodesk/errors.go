package flodesk

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when the gateway receives an action outside
// the closed enumeration, or a payload of the wrong type for the action.
var ErrUnknownAction = errors.New("flodesk: unknown action")

// APIError represents a rejection from the upstream provider. StatusCode is
// the HTTP status Flodesk returned; Message is its error detail. Routes
// relay both to the caller verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flodesk: upstream returned %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
