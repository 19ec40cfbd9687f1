// Package errors provides custom error types for the soulguide Gemini client.
package errors

import (
	"errors"
	"fmt"
)

// Localized messages shown to the user
const (
	MsgConnectionFailed = "Не вдалося з'єднатися з полем інформації. Спробуйте пізніше."
	MsgNoCredential     = "API key not found in configuration."
)

// Sentinel errors for common cases
var (
	ErrNoCredential     = errors.New("no API key configured")
	ErrConnectionFailed = errors.New("connection failed")
	ErrInvalidResponse  = errors.New("invalid response format")
)

// CredentialError is returned before any network call when no API key is set
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	if e.Message == "" {
		return MsgNoCredential
	}
	return e.Message
}

// Is allows comparison with sentinel errors
func (e *CredentialError) Is(target error) bool {
	if target == ErrNoCredential {
		return true
	}
	_, ok := target.(*CredentialError)
	return ok
}

// NewCredentialError creates a new CredentialError
func NewCredentialError(message string) *CredentialError {
	return &CredentialError{Message: message}
}

// ConnectionError collapses every call or parse failure into one user-facing
// error. The original cause is kept for logging.
type ConnectionError struct {
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string {
	if e.Message == "" {
		return MsgConnectionFailed
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *ConnectionError) Is(target error) bool {
	if target == ErrConnectionFailed {
		return true
	}
	_, ok := target.(*ConnectionError)
	return ok
}

// NewConnectionError wraps cause with the localized connection message
func NewConnectionError(cause error) *ConnectionError {
	return &ConnectionError{Message: MsgConnectionFailed, Cause: cause}
}

// APIError represents a non-200 answer from the generate endpoint
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates an APIError carrying the (truncated) response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// NetworkError represents a transport failure
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
}

// Unwrap returns the transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsCredentialError reports whether err is a missing credential error
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrNoCredential)
}

// IsConnectionError reports whether err is the collapsed connection error
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsNetworkError reports whether err wraps a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or empty
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// UserMessage returns the text to show for err, falling back when it is empty
func UserMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
