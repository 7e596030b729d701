package authsdk

import (
	"fmt"
	"net/http"

	"github.com/selimellieh72/secure-login-assignment/pkg/httpx"
)

// APIError is a user-facing error with a fixed HTTP status and a fixed
// generic message. It implements error so the client can surface it, and
// the server writes it directly as a response body. Messages are shared
// across sub-causes on purpose: a refresh failure reads the same whether
// the token expired, was superseded, or names a deleted user.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Error: e.Message})
}

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid email or password",
	}

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Message:    "email already registered",
	}

	// ErrInvalidToken covers malformed, expired, forged, superseded, and
	// orphaned tokens alike.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid or expired token",
	}

	// ErrUserNotFound is returned for an authenticated caller whose record
	// no longer exists.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "user not found",
	}

	// ErrMalformedRequest is returned for unreadable or invalid JSON bodies.
	ErrMalformedRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "malformed or empty JSON body",
	}

	// ErrServerError is the catch-all for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
	}
)
