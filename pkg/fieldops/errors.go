package fieldops

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrFeedUserRequired    = errors.New("notification feed requires a user ID")
	ErrFeedURLRequired     = errors.New("notification feed requires a broker URL")
	ErrNotAuthenticated    = errors.New("not authenticated")
)

// APIError represents a failed HTTP exchange with the field-operations API.
// Message carries the server's structured message when the body had one;
// Meta carries the raw metadata object, which some endpoints use to nest the
// message instead.
type APIError struct {
	StatusCode int                    `json:"-"              yaml:"-"`
	Message    string                 `json:"message"        yaml:"message"`
	Meta       map[string]interface{} `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if msg := e.DisplayMessage(); msg != "" {
		return msg
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// DisplayMessage returns the server-provided message, preferring the
// top-level message field over one nested under meta. Empty when the body
// carried neither.
func (e *APIError) DisplayMessage() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Meta != nil {
		if msg, ok := e.Meta["message"].(string); ok {
			return msg
		}
	}

	return ""
}

// ParseAPIError decodes an error response body. The body is optional; a
// non-JSON or empty body yields an APIError with only the status code set.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	if len(body) > 0 {
		// Best effort: an unparseable body still produces a usable error.
		_ = json.Unmarshal(body, apiErr)
	}

	return apiErr
}

// IsNotFound checks if the error is a not-found API error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsUnauthorized checks if the error is an authentication API error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsValidation checks if the error is a validation API error.
func IsValidation(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.StatusCode == 422
}
