package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericFailureMessage is shown when the server gave no usable message.
const GenericFailureMessage = "could not publish the post, please try again"

// APIError is a non-2xx response from the feed server. Message carries the
// server-provided human-readable text when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("feed server returned status %d", e.StatusCode)
}

// UserMessage is the text to surface in the UI: the server's message when it
// sent one, a generic fallback otherwise.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericFailureMessage
}

// AsAPIError unwraps err as an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseAPIError extracts the message field from an error body, tolerating
// both {"message": ...} and {"error": ...} shapes, and falling back to the
// raw body when it is not JSON.
func parseAPIError(status int, body []byte) error {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return &APIError{StatusCode: status, Message: parsed.Message}
		case parsed.Error != "":
			return &APIError{StatusCode: status, Message: parsed.Error}
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 || strings.HasPrefix(msg, "<") {
		// HTML error pages and long dumps are useless to the user
		msg = ""
	}
	return &APIError{StatusCode: status, Message: msg}
}
