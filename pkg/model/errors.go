package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Messages is the "message" field of an upstream error body. The API sends
// either a single string or, for validation failures, a list of strings.
type Messages []string

// UnmarshalJSON accepts a string, a list of strings or null.
func (m *Messages) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*m = nil
		} else {
			*m = Messages{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("message: expected string or list of strings: %w", err)
	}
	*m = many
	return nil
}

// MarshalJSON writes a single message as a string and several as a list.
func (m Messages) MarshalJSON() ([]byte, error) {
	if len(m) == 1 {
		return json.Marshal(m[0])
	}
	if m == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]string(m))
}

// APIError is an error body returned by the upstream API, or produced by the
// dashboard for its own JSON endpoints.
type APIError struct {
	StatusCode int          `json:"statusCode"`
	Message    Messages     `json:"message"`
	Kind       string       `json:"error,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = http.StatusText(e.StatusCode)
	}
	if len(e.Message) == 0 {
		return fmt.Sprintf("%d %s", e.StatusCode, kind)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, kind, strings.Join(e.Message, "; "))
}

// IsValidation reports whether the error carries messages meant for the
// user (400 and 422 responses).
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// IsNotFound reports whether the upstream answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// FieldError describes a validation error on a specific form field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates a 400 APIError with field details. Each detail
// is also listed in Message so callers that only show messages see them.
func NewValidationError(msg string, details ...FieldError) *APIError {
	msgs := Messages{msg}
	for _, d := range details {
		msgs = append(msgs, d.Message)
	}
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    msgs,
		Kind:       "Bad Request",
		Details:    details,
	}
}

// NewNotFoundError creates a 404 APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		Message:    Messages{fmt.Sprintf("%s '%s' not found", resource, id)},
		Kind:       "Not Found",
	}
}
