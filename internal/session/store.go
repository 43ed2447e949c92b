package session

import (
	"sync"

	"study-assistant/internal/model"
)

// Store holds the single active session. Safe for concurrent reads from
// background jobs while the UI goroutine logs in and out.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Start replaces any existing session with a fresh one for the user.
func (s *Store) Start(user *model.User) *Session {
	sess := New(user)
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess
}

// Current returns the active session, or ok=false when logged out.
func (s *Store) Current() (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Clear ends the active session.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
