// Package memory provides the in-process store for live quiz attempts.
// Completed attempts are archived to Postgres by the attempt service; only
// in-flight state lives here.
package memory

import (
	"context"
	"sync"

	"github.com/elimu-cbc/quiz-service/internal/engine"
	"github.com/elimu-cbc/quiz-service/internal/models"
)

// AttemptMemoryStore implements engine.AttemptStore with a mutex-guarded map.
// Safe for concurrent access across attempts; per-attempt call ordering is
// the caller's responsibility.
type AttemptMemoryStore struct {
	mu       sync.RWMutex
	attempts map[string]*models.QuizAttempt
}

func NewAttemptMemoryStore() *AttemptMemoryStore {
	return &AttemptMemoryStore{
		attempts: make(map[string]*models.QuizAttempt),
	}
}

func (s *AttemptMemoryStore) Save(_ context.Context, attempt *models.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *AttemptMemoryStore) Get(_ context.Context, attemptID string) (*models.QuizAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[attemptID]
	if !ok {
		return nil, engine.ErrAttemptNotFound
	}
	return attempt, nil
}

func (s *AttemptMemoryStore) Remove(_ context.Context, attemptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, attemptID)
	return nil
}

// Len reports how many live attempts are held, for health reporting.
func (s *AttemptMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attempts)
}
