package api

import (
	"encoding/json"
	"strings"
)

// FallbackMessage is shown when a failed response carries no usable detail.
const FallbackMessage = "An unexpected error occurred."

// RequestError is returned for non-2xx responses and transport failures.
// Error returns only the human-readable message.
type RequestError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// newStatusError builds a RequestError from an error response body, reading
// its detail field. FastAPI validation errors put a list of {msg} objects in
// detail; their messages are joined.
func newStatusError(status int, body []byte) *RequestError {
	return &RequestError{StatusCode: status, Message: detailMessage(body)}
}

func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return FallbackMessage
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
		return FallbackMessage
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return FallbackMessage
}
