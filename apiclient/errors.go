package apiclient

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies failed API calls so callers branch on the
// failure class instead of probing optional fields.
type ErrorKind int

const (
	// KindHTTP marks a response carrying a non-2xx status code.
	KindHTTP ErrorKind = iota + 1
	// KindMalformedResponse marks a 2xx response whose body could not
	// be decoded as JSON. Treated as a server contract violation.
	KindMalformedResponse
	// KindNetwork marks a transport-level failure with no HTTP
	// response at all.
	KindNetwork
)

// String returns a machine-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http_error"
	case KindMalformedResponse:
		return "malformed_response"
	case KindNetwork:
		return "network_error"
	default:
		return "unknown"
	}
}

// Error represents a structured API failure that implements the error
// interface. Status is zero for KindNetwork errors.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Data    map[string]any
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// maxInlineErrorBody bounds how much raw body text is promoted to the
// error message before falling back to a generic one.
const maxInlineErrorBody = 200

// newHTTPError builds a KindHTTP error from a non-2xx response body.
// The message comes from the body's "error" or "message" field when the
// body is a JSON object, else from the raw text when it is short, else
// a generic status line.
func newHTTPError(status int, body []byte) Error {
	text := string(body)

	var parsed map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			parsed = nil
		}
	}

	message := ""
	if parsed != nil {
		if s, ok := parsed["error"].(string); ok && s != "" {
			message = s
		} else if s, ok := parsed["message"].(string); ok && s != "" {
			message = s
		}
	}
	if message == "" {
		if len(text) > 0 && len(text) < maxInlineErrorBody {
			message = text
		} else {
			message = fmt.Sprintf("request failed with status %d", status)
		}
	}

	data := parsed
	if data == nil {
		data = map[string]any{"rawError": text}
	}

	return Error{Kind: KindHTTP, Status: status, Message: message, Data: data}
}

// newMalformedError builds a KindMalformedResponse error for a 2xx
// response whose body is not valid JSON.
func newMalformedError(status int, text string) Error {
	return Error{
		Kind:    KindMalformedResponse,
		Status:  status,
		Message: "malformed JSON response from server",
		Data:    map[string]any{"rawResponse": text},
	}
}

// newNetworkError builds a KindNetwork error from a transport failure.
func newNetworkError(err error) Error {
	message := "network error or server unreachable"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return Error{Kind: KindNetwork, Message: message}
}
