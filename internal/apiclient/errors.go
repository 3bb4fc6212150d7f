package apiclient

import (
	"errors"
	"fmt"
)

const (
	// DefaultErrorMessage is used when the server rejects a request without
	// saying why.
	DefaultErrorMessage = "An error occurred"
	// NetworkErrorMessage is used whenever no usable response was received.
	NetworkErrorMessage = "Network error. Please check your connection."
)

// APIError is the single error type returned by every Client call.
// Status is the HTTP status code, or 0 when the request never completed or
// the response could not be parsed.
type APIError struct {
	Message     string
	Status      int
	FieldErrors map[string]string

	err error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.err != nil {
			return fmt.Sprintf("%s (%v)", e.Message, e.err)
		}
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.err }

// IsNetwork reports whether the error is a transport or decoding failure.
func (e *APIError) IsNetwork() bool { return e.Status == 0 }

func newNetworkError(cause error) *APIError {
	return &APIError{
		Message:     NetworkErrorMessage,
		FieldErrors: map[string]string{},
		err:         cause,
	}
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status
	}
	return 0
}

// errorFromBody builds the APIError for a non-2xx response whose body parsed
// as a JSON object. The backend reports validation failures either as an
// "errors" object or as an "error" object keyed by field.
func errorFromBody(status int, body Envelope) *APIError {
	e := &APIError{
		Message:     DefaultErrorMessage,
		Status:      status,
		FieldErrors: map[string]string{},
	}

	switch v := body["error"].(type) {
	case string:
		if v != "" {
			e.Message = v
		}
	case map[string]any:
		mergeFieldErrors(e.FieldErrors, v)
	}
	if fields, ok := body["errors"].(map[string]any); ok {
		mergeFieldErrors(e.FieldErrors, fields)
	}
	return e
}

func mergeFieldErrors(dst map[string]string, src map[string]any) {
	for k, v := range src {
		switch msg := v.(type) {
		case string:
			dst[k] = msg
		default:
			dst[k] = fmt.Sprint(msg)
		}
	}
}
