package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthorizationPrompt presents the authorization page to the user.
type AuthorizationPrompt interface {
	// Present shows authURL and blocks until the user approves or denies it.
	// A non-nil error means the prompt itself failed or was cancelled.
	Present(ctx context.Context, authURL string) (approved bool, err error)
}

// PromptFunc adapts a function to AuthorizationPrompt
type PromptFunc func(ctx context.Context, authURL string) (bool, error)

// Present calls f(ctx, authURL)
func (f PromptFunc) Present(ctx context.Context, authURL string) (bool, error) {
	return f(ctx, authURL)
}

// AuthState is the position of a handshake in its step sequence
type AuthState int

const (
	// StateIdle means no handshake has started
	StateIdle AuthState = iota
	// StateTokenRequested means a request token is being created
	StateTokenRequested
	// StateAuthorizationPending means the user has been asked to approve the token
	StateAuthorizationPending
	// StateSessionEstablished means the token was exchanged for a session id
	StateSessionEstablished
	// StateUserResolved means the account id is known
	StateUserResolved
	// StateDone means the handshake completed
	StateDone
	// StateFailed means a step failed
	StateFailed
)

// String returns the string representation of an AuthState
func (s AuthState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTokenRequested:
		return "token_requested"
	case StateAuthorizationPending:
		return "authorization_pending"
	case StateSessionEstablished:
		return "session_established"
	case StateUserResolved:
		return "user_resolved"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Authenticator drives the four-step TMDB login handshake:
// request token, user approval, session exchange, account lookup.
type Authenticator struct {
	client *Client
	logger zerolog.Logger

	mu    sync.RWMutex
	state AuthState
}

// NewAuthenticator creates an authenticator that stores credentials in the client's session
func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{
		client: client,
		logger: client.logger,
		state:  StateIdle,
	}
}

// Authenticate runs the handshake. Each step starts only after the previous
// one succeeded and the first failure ends the run with an *AuthError.
//
// A failed account lookup is reported as a failure but the session id it
// follows is kept, so session-scoped calls keep working and ResolveAccount
// can be called later.
func (a *Authenticator) Authenticate(ctx context.Context, prompt AuthorizationPrompt) error {
	if prompt == nil {
		return fmt.Errorf("%w: authorization prompt is required", ErrInvalidConfig)
	}
	if !a.client.authMu.TryLock() {
		return ErrAuthInProgress
	}
	defer a.client.authMu.Unlock()

	if a.client.session.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}

	log := a.logger.With().Str("auth_run", uuid.NewString()).Logger()

	a.transition(log, StateTokenRequested)
	token, err := a.client.newRequestToken(ctx)
	if err != nil {
		return a.fail(log, StepRequestToken, err)
	}
	a.client.session.setRequestToken(token)

	a.transition(log, StateAuthorizationPending)
	approved, err := prompt.Present(ctx, a.client.AuthorizationURL(token))
	if err != nil {
		return a.fail(log, StepAuthorization, err)
	}
	if !approved {
		return a.fail(log, StepAuthorization, ErrAuthDenied)
	}

	sessionID, err := a.client.newSession(ctx, token)
	if err != nil {
		return a.fail(log, StepSession, err)
	}
	a.client.session.setSessionID(sessionID)
	a.transition(log, StateSessionEstablished)

	if err := a.client.resolveAccount(ctx); err != nil {
		return a.fail(log, StepAccount, err)
	}
	a.transition(log, StateUserResolved)

	a.transition(log, StateDone)
	log.Info().Msg("Authenticated with TMDB")
	return nil
}

// State returns the current handshake state
func (a *Authenticator) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Authenticator) transition(log zerolog.Logger, next AuthState) {
	a.mu.Lock()
	prev := a.state
	a.state = next
	a.mu.Unlock()

	log.Debug().
		Str("from", prev.String()).
		Str("to", next.String()).
		Msg("Authentication state changed")
}

func (a *Authenticator) fail(log zerolog.Logger, step AuthStep, err error) error {
	a.transition(log, StateFailed)
	authErr := &AuthError{Step: step, Err: err}
	log.Warn().Err(err).Str("step", step.String()).Msg(authErr.Message())
	return authErr
}

// Authenticate runs the login handshake with a fresh Authenticator
func (c *Client) Authenticate(ctx context.Context, prompt AuthorizationPrompt) error {
	return NewAuthenticator(c).Authenticate(ctx, prompt)
}

// ResumeSession adopts a session id obtained earlier and resolves its account.
// As with the handshake, the session id is kept when the account lookup fails.
func (c *Client) ResumeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidConfig)
	}
	if !c.authMu.TryLock() {
		return ErrAuthInProgress
	}
	defer c.authMu.Unlock()

	if c.session.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}

	c.session.setSessionID(sessionID)
	if err := c.resolveAccount(ctx); err != nil {
		return &AuthError{Step: StepAccount, Err: err}
	}
	return nil
}

// ResolveAccount looks up the account id for the current session
func (c *Client) ResolveAccount(ctx context.Context) error {
	if !c.authMu.TryLock() {
		return ErrAuthInProgress
	}
	defer c.authMu.Unlock()

	if err := c.resolveAccount(ctx); err != nil {
		return &AuthError{Step: StepAccount, Err: err}
	}
	return nil
}

// Logout revokes the session on TMDB and clears the local credentials.
// The local credentials are cleared even when revocation fails. It returns
// ErrAuthInProgress while a handshake or session resume is running.
func (c *Client) Logout(ctx context.Context) error {
	if !c.authMu.TryLock() {
		return ErrAuthInProgress
	}
	defer c.authMu.Unlock()

	sessionID, ok := c.session.SessionID()
	if !ok {
		return ErrNotAuthenticated
	}
	defer c.session.Clear()

	var resp deleteSessionResponse
	if err := c.sendJSON(ctx, http.MethodDelete, "/authentication/session", nil, deleteSessionRequest{SessionID: sessionID}, &resp); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if resp.Success == nil || !*resp.Success {
		return fmt.Errorf("%w: session revocation was not successful", ErrDecode)
	}

	c.logger.Info().Msg("Logged out of TMDB")
	return nil
}

// newRequestToken creates a request token
func (c *Client) newRequestToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.getJSON(ctx, "/authentication/token/new", nil, &resp); err != nil {
		return "", err
	}
	if resp.Success == nil {
		return "", fmt.Errorf("%w: missing key 'success'", ErrDecode)
	}
	if !*resp.Success {
		return "", fmt.Errorf("%w: the value for key 'success' is false", ErrDecode)
	}
	if resp.RequestToken == nil || *resp.RequestToken == "" {
		return "", fmt.Errorf("%w: missing key 'request_token'", ErrDecode)
	}
	return *resp.RequestToken, nil
}

// newSession exchanges an approved request token for a session id
func (c *Client) newSession(ctx context.Context, requestToken string) (string, error) {
	params := url.Values{"request_token": {requestToken}}

	var resp sessionResponse
	if err := c.getJSON(ctx, "/authentication/session/new", params, &resp); err != nil {
		return "", err
	}
	if resp.Success == nil {
		return "", fmt.Errorf("%w: missing key 'success'", ErrDecode)
	}
	if !*resp.Success {
		return "", fmt.Errorf("%w: the value for key 'success' is false", ErrDecode)
	}
	if resp.SessionID == nil || *resp.SessionID == "" {
		return "", fmt.Errorf("%w: missing key 'session_id'", ErrDecode)
	}
	return *resp.SessionID, nil
}

// resolveAccount fetches /account for the current session and stores the user id
func (c *Client) resolveAccount(ctx context.Context) error {
	sessionID, ok := c.session.SessionID()
	if !ok {
		return ErrNotAuthenticated
	}

	var resp accountResponse
	if err := c.getJSON(ctx, "/account", url.Values{"session_id": {sessionID}}, &resp); err != nil {
		return err
	}
	if resp.ID == nil {
		return fmt.Errorf("%w: missing key 'id'", ErrDecode)
	}

	c.session.setUserID(*resp.ID)
	c.logger.Debug().Int("user_id", *resp.ID).Msg("Resolved TMDB account")
	return nil
}
