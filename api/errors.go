package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// StatusError is a server-reported failure: a non-2xx HTTP response
// carrying the server's message when one was provided.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// NetworkError is a transport failure: the request never produced an HTTP
// response. Distinguishable from StatusError so callers can tell
// connectivity problems from server-reported ones.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// StatusError.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// statusError extracts the server's message from an error response body.
// Bodies are arbitrary JSON; the "error" field wins over "message", and a
// missing body falls back to the HTTP status text.
func statusError(resp *response) *StatusError {
	message := ""
	if parsed := gjson.ParseBytes(resp.body); parsed.IsObject() {
		if v := parsed.Get("error"); v.Exists() && v.String() != "" {
			message = v.String()
		} else if v := parsed.Get("message"); v.Exists() && v.String() != "" {
			message = v.String()
		}
	}
	if message == "" {
		message = resp.statusText
	}
	if message == "" {
		message = "request failed"
	}
	return &StatusError{StatusCode: resp.status, Message: message}
}

// rawStatusError builds a StatusError from a non-JSON response, using the
// body text itself as the message. Used by the binary download path.
func rawStatusError(resp *response) *StatusError {
	message := strings.TrimSpace(string(resp.body))
	if message == "" {
		message = resp.statusText
	}
	if message == "" {
		message = "request failed"
	}
	return &StatusError{StatusCode: resp.status, Message: message}
}
