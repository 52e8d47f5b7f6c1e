package client

import (
	"fmt"
	"net/http"
)

// Fixed user-facing defaults, used when the backend supplies no message.
const (
	msgRequestFailed  = "request failed"
	msgSessionExpired = "session expired, please log in again"
	msgForbidden      = "not authorized for this action"
	msgNotFound       = "endpoint not found"
	msgServerBusy     = "server busy, try again later"
	msgNetworkError   = "network error, try again later"
)

// APIError is a failed API call: an envelope that indicated failure, a
// non-2xx status, or a transport error. Message is always suitable for
// direct display to the user.
type APIError struct {
	// StatusCode is the HTTP status of the response, or 0 when no response
	// was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// SessionExpired reports whether the failure signals an invalid session.
// The client never clears the session itself; callers react to this.
func (e *APIError) SessionExpired() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// statusMessage returns the fixed default message for an HTTP status,
// or "" when the status has no specific default.
func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return msgSessionExpired
	case status == http.StatusForbidden:
		return msgForbidden
	case status == http.StatusNotFound:
		return msgNotFound
	case status >= http.StatusInternalServerError:
		return msgServerBusy
	default:
		return ""
	}
}

// httpFailureMessage derives the user-facing message for a non-2xx response:
// backend-supplied message or error field first, then the status default,
// then a generic message carrying the status code.
func httpFailureMessage(status int, body *envelopeFields) string {
	if body != nil {
		if msg := body.stringField("message"); msg != "" {
			return msg
		}
		if msg := body.stringField("error"); msg != "" {
			return msg
		}
	}
	if msg := statusMessage(status); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s (%d)", msgRequestFailed, status)
}
