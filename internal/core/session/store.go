// Package session holds the per-device session state.
//
// A Store is the single mutable record for one device. Writers go through
// Login, Logout, SetRole and SetAuthenticated; every reader gets a copy from
// Snapshot, so concurrent handlers observe the same consistent state between
// updates.
package session

import (
	"sync"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// Store is a mutex-guarded session record.
type Store struct {
	mu  sync.RWMutex
	cur domain.Session
}

// NewStore returns an empty, unauthenticated store.
func NewStore() *Store {
	return &Store{}
}

// Login replaces the session and marks it authenticated.
func (s *Store) Login(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.IsAuthenticated = true
	s.cur = sess
}

// Logout resets every field to its zero value.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = domain.Session{}
}

func (s *Store) SetRole(role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur.Role = role
}

func (s *Store) SetAuthenticated(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur.IsAuthenticated = ok
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cur
}
