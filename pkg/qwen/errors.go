package qwen

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-200 answer from DashScope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("qwen: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("qwen: API error %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether a retry may succeed: throttling and server errors.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func newAPIError(status int, body []byte) *APIError {
	var wire struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	e := &APIError{StatusCode: status, Message: string(body)}
	if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
		e.Code, e.Message = wire.Error.Code, wire.Error.Message
	}
	return e
}
