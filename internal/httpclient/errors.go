package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response mapped into the client error taxonomy.
// Everything except the 401 case propagates to the caller for local,
// context-appropriate display.
type APIError struct {
	Status  int
	Message string
	// Fields carries field-level validation messages from 400 responses.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ErrUnauthorized is returned after the adapter has already cleared the
// session in reaction to a 401.
var ErrUnauthorized = errors.New("unauthorized: session cleared")

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool   { return statusOf(err) == http.StatusNotFound }
func IsForbidden(err error) bool  { return statusOf(err) == http.StatusForbidden }
func IsConflict(err error) bool   { return statusOf(err) == http.StatusConflict }
func IsValidation(err error) bool { return statusOf(err) == http.StatusBadRequest }

// FieldErrors extracts field-level validation messages, if any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
