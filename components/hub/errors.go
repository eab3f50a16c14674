package hub

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWidgetNotFound     = errors.New("hub: widget not found")
	ErrMissingWidgetID    = errors.New("hub: widget id is required")
	ErrMissingStore       = errors.New("hub: widget store not configured")
	ErrMissingCredentials = errors.New("hub: bot token and chat id are required")
)

// ValidationError reports bad local input: a missing field, a malformed
// config or a rejected project file.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "hub: " + e.Reason
	}
	return fmt.Sprintf("hub: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) ErrCode() string { return "VALIDATION_ERROR" }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func newValidationError(field, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// APIError is a rejection reported by the bot relay.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hub: relay rejected message (%d): %s", e.Status, e.Description)
}

func (e *APIError) ErrCode() string { return "RELAY_API_ERROR" }

func (e *APIError) StatusCode() int { return http.StatusBadGateway }

// NetworkError means the relay could not be reached at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("hub: relay unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) ErrCode() string { return "RELAY_NETWORK_ERROR" }

func (e *NetworkError) StatusCode() int { return http.StatusBadGateway }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsTransport reports whether err came from the bot relay.
func IsTransport(err error) bool {
	var apiErr *APIError
	var netErr *NetworkError
	return errors.As(err, &apiErr) || errors.As(err, &netErr)
}

// StatusCode maps err to an HTTP status.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrWidgetNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingWidgetID) {
		return http.StatusBadRequest
	}
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}
	return http.StatusInternalServerError
}

// UserMessage returns the text a visitor should see for err.
func UserMessage(err error) string {
	text := DefaultPanelCopy()
	var (
		apiErr *APIError
		netErr *NetworkError
		valErr *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		if apiErr.Description != "" {
			return apiErr.Description
		}
		return text.APIFailed
	case errors.As(err, &netErr):
		return text.NetworkFailed
	case errors.Is(err, ErrMissingCredentials):
		return text.NotConfigured
	case errors.As(err, &valErr):
		return valErr.Reason
	default:
		return text.SubmitFailed
	}
}
