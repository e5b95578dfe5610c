// Package session holds the process-held session records. The store is the
// only shared mutable state in the application and is constructed once at
// startup.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell-server/internal/model"
)

var _ model.SessionStore = (*Store)(nil)

// Store is an in-memory session store with lazy expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]model.Session),
		now:      time.Now,
	}
}

// Create saves the session under its token, replacing any previous record
// with the same token.
func (s *Store) Create(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = session
	return nil
}

// Get returns the session for the token. Expired sessions are dropped and
// reported as model.ErrNotFound.
func (s *Store) Get(_ context.Context, token uuid.UUID) (model.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return model.Session{}, model.ErrNotFound
	}

	if session.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return model.Session{}, model.ErrNotFound
	}

	return session, nil
}

// Delete removes the session. Deleting an absent token is a no-op, so a
// repeated logout never fails.
func (s *Store) Delete(_ context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Len reports the number of live records, counting expired ones not yet
// swept by Get.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
