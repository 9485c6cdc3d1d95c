package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
)

// memorySessionStore keeps sessions in process memory guarded by a RWMutex.
// Sessions do not survive a restart, which simply logs everyone out — an
// acceptable trade-off for the session authentication variant.
type memorySessionStore struct {
	logger *logger.Logger

	mu       sync.RWMutex
	sessions map[string]models.Session

	generator *utils.UUIDGenerator
}

// NewMemorySessionStore constructs an in-memory [SessionStore].
func NewMemorySessionStore(logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating in-memory session store")
	return &memorySessionStore{
		logger:    logger,
		sessions:  make(map[string]models.Session),
		generator: utils.NewUUIDGenerator(),
	}
}

// Create establishes a new session for the user under a generated opaque ID.
func (s *memorySessionStore) Create(_ context.Context, user models.User) (models.Session, error) {
	session := models.Session{
		ID:        s.generator.Generate(),
		UserID:    user.UserID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Get returns the session with the given ID or [ErrSessionNotFound].
func (s *memorySessionStore) Get(_ context.Context, sessionID string) (models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

// Delete removes a session. Unknown IDs are ignored so logout stays
// idempotent.
func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return nil
}

// DeleteByUser removes every session belonging to the user.
func (s *memorySessionStore) DeleteByUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	return nil
}

// DeleteOlderThan removes every session established before the cutoff.
func (s *memorySessionStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	removed := 0

	s.mu.Lock()
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("pruned stale sessions")
	}

	return removed, nil
}
