package gemini

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-200 answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the same request may succeed later: rate limits and server errors.
// Bad keys, unknown models and malformed requests will not.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func newAPIError(status int, body []byte) *APIError {
	var wire struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := string(body)
	if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
		msg = wire.Error.Message
	}
	return &APIError{StatusCode: status, Message: msg}
}
