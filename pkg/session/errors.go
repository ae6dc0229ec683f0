package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// APIError is a non-2xx response from the service, with whatever detail the
// error document carried.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Title      string
	Detail     string
	RequestID  string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	out := fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, msg)
	if e.RequestID != "" {
		out += fmt.Sprintf(" (request id %s)", e.RequestID)
	}
	return out
}

// errorDocument covers the error body shapes the service emits: the api-wg
// "errors" list and the WSME faultstring form.
type errorDocument struct {
	Errors []struct {
		Status int    `json:"status"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
	FaultString string `json:"faultstring"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newAPIError(method, path string, status int, requestID string, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		RequestID:  requestID,
		Body:       body,
	}

	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err == nil {
		switch {
		case len(doc.Errors) > 0:
			apiErr.Title = doc.Errors[0].Title
			apiErr.Detail = doc.Errors[0].Detail
		case doc.FaultString != "":
			apiErr.Detail = doc.FaultString
		default:
			apiErr.Title = doc.Title
			apiErr.Detail = doc.Description
		}
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) < 200 {
		apiErr.Detail = trimmed
	}
	return apiErr
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict reports whether err is a 409 from the service.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
