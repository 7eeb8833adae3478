package admin

import "sync"

// Session is the coarse single-operator lock in front of the mutation
// surface: one shared secret, compared verbatim. No tokens, no expiry, no
// per-user distinction. It gates entry to the admin controller only; the
// HTTP write routes are protected independently by the bearer middleware.
type Session struct {
	secret string

	mu       sync.RWMutex
	unlocked bool
}

func NewSession(secret string) *Session {
	return &Session{secret: secret}
}

// Unlock compares the operator-entered password against the configured
// secret and opens the session on a match.
func (s *Session) Unlock(password string) bool {
	if password != s.secret {
		return false
	}
	s.mu.Lock()
	s.unlocked = true
	s.mu.Unlock()
	return true
}

// Lock closes the session again.
func (s *Session) Lock() {
	s.mu.Lock()
	s.unlocked = false
	s.mu.Unlock()
}

func (s *Session) Unlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked
}
