package platformsdk

import (
	"fmt"
	"net/http"

	"github.com/verysecretivesoftware/platform/pkg/httpx"
)

// Error codes used across the platform API.
const (
	ErrorCodeMissingToken       = "missing_token"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeServerError        = "server_error"
)

// APIError is the typed form of an API error response. It implements the
// error interface and is used by server handlers (to write responses)
// and by the SDK client (to represent failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:   e.Code,
		Message: e.Message,
	})
}

var (
	// ErrMissingToken is returned when no bearer token accompanies a
	// request to a protected route.
	ErrMissingToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMissingToken,
		Message:    "Access token required",
	}

	// ErrInvalidToken covers every token verification failure. Signature
	// failure and expiry intentionally share this one response so the
	// API leaks nothing about why a token was rejected.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeInvalidToken,
		Message:    "Invalid or expired token",
	}

	// ErrInvalidCredentials covers unknown usernames, wrong passwords and
	// malformed stored hashes alike.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "Invalid credentials",
	}

	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeUsernameTaken,
		Message:    "Username already exists",
	}

	// ErrInvalidRequest is returned for malformed or oversized bodies.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "The request is malformed or missing required fields",
	}

	// ErrNotFound is the generic response for unmatched routes.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "The requested resource was not found",
	}

	// ErrServerError hides all internal failure detail. Store errors are
	// logged server-side; the body never carries schema or query text.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "Something went wrong on our end",
	}
)
