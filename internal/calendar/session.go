package calendar

import (
	"sync"

	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
)

// Session holds the bearer token for backend calls and reacts to
// authorization loss. When the backend answers 401 the session is
// invalidated exactly once and the OnUnauthorized hook fires, so the
// caller can drop to the login screen without every component
// re-checking the token.
type Session struct {
	mu             sync.Mutex
	token          string
	invalidated    bool
	onUnauthorized func()
}

// NewSession creates a session with the given bearer token.
// The hook may be nil.
func NewSession(token string, onUnauthorized func()) *Session {
	return &Session{token: token, onUnauthorized: onUnauthorized}
}

// Token returns the current bearer token, or an error if the session
// has been invalidated or never had a token.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated || s.token == "" {
		return "", shared.ErrUnauthorized
	}
	return s.token, nil
}

// SetToken installs a fresh token and revives the session.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.invalidated = false
}

// Invalidate drops the token and fires the OnUnauthorized hook.
// Safe to call from concurrent backend calls: the hook fires at most
// once per invalidation.
func (s *Session) Invalidate() {
	s.mu.Lock()
	if s.invalidated {
		s.mu.Unlock()
		return
	}
	s.invalidated = true
	s.token = ""
	hook := s.onUnauthorized
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Valid reports whether the session still carries a usable token.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.invalidated && s.token != ""
}
