package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrTransport indicates a network or connectivity failure
	ErrTransport = errors.New("tmdb transport error")
	// ErrDecode indicates a response was missing an expected field or had the wrong shape
	ErrDecode = errors.New("tmdb decode error")
	// ErrAuthDenied indicates the user rejected the authorization request
	ErrAuthDenied = errors.New("authorization denied by user")
	// ErrNotAuthenticated indicates an authenticated call was attempted without a session
	ErrNotAuthenticated = errors.New("not authenticated: no TMDB session")
	// ErrAlreadyAuthenticated indicates the session already holds credentials
	ErrAlreadyAuthenticated = errors.New("already authenticated: log out first")
	// ErrAuthInProgress indicates another handshake is running on the same client
	ErrAuthInProgress = errors.New("authentication already in progress")
	// ErrNoConfig indicates the image configuration has not been fetched yet
	ErrNoConfig = errors.New("service configuration not loaded")
	// ErrNoPoster indicates the movie has no poster path
	ErrNoPoster = errors.New("movie has no poster")
	// ErrInvalidPosterSize indicates a poster size the service does not offer
	ErrInvalidPosterSize = errors.New("invalid poster size")
	// ErrEmptyQuery indicates a search was attempted without a query
	ErrEmptyQuery = errors.New("search query is required")
)

// APIError represents a non-2xx response from the TMDB API
type APIError struct {
	StatusCode    int
	TMDBCode      int
	StatusMessage string
	Body          string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusMessage == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.StatusMessage)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// newAPIError builds an APIError, pulling status_code/status_message out of
// the body when TMDB sent its usual error envelope.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var envelope struct {
		StatusCode    int    `json:"status_code"`
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.TMDBCode = envelope.StatusCode
		apiErr.StatusMessage = envelope.StatusMessage
	}

	return apiErr
}

// AuthStep identifies one step of the login handshake
type AuthStep int

const (
	// StepRequestToken is the request token creation
	StepRequestToken AuthStep = iota + 1
	// StepAuthorization is the user approval through the authorization prompt
	StepAuthorization
	// StepSession is the token to session exchange
	StepSession
	// StepAccount is the account (user id) lookup
	StepAccount
)

// String returns the label used in login failure messages
func (s AuthStep) String() string {
	switch s {
	case StepRequestToken:
		return "Request Token"
	case StepAuthorization:
		return "Authorization"
	case StepSession:
		return "Session ID"
	case StepAccount:
		return "User ID"
	default:
		return "Unknown"
	}
}

// AuthError reports the handshake step that failed
type AuthError struct {
	Step AuthStep
	Err  error
}

// Message returns the human-readable failure, e.g. "Login Failed (Request Token)"
func (e *AuthError) Message() string {
	return fmt.Sprintf("Login Failed (%s)", e.Step)
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
