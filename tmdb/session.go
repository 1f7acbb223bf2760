package tmdb

import "sync"

// Session holds the credentials of one authenticated TMDB user. The request
// token is replaced on every handshake attempt; the session id and user id
// stay put until Clear.
type Session struct {
	mu      sync.RWMutex
	creds   Credentials
	hasUser bool
}

// Credentials returns a snapshot of the current credentials
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// SessionID returns the session id and whether one is set
func (s *Session) SessionID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.SessionID, s.creds.SessionID != ""
}

// UserID returns the account id and whether it has been resolved
func (s *Session) UserID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.UserID, s.hasUser
}

// IsAuthenticated reports whether a session id has been obtained
func (s *Session) IsAuthenticated() bool {
	_, ok := s.SessionID()
	return ok
}

// Clear forgets all credentials
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.hasUser = false
}

func (s *Session) setRequestToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.RequestToken = token
}

func (s *Session) setSessionID(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.SessionID = sessionID
}

func (s *Session) setUserID(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.UserID = userID
	s.hasUser = true
}

// account returns the session id and user id required by account endpoints
func (s *Session) account() (string, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds.SessionID == "" || !s.hasUser {
		return "", 0, ErrNotAuthenticated
	}
	return s.creds.SessionID, s.creds.UserID, nil
}
