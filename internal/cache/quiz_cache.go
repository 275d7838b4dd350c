package cache

import (
	"context"
	"errors"
	"time"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

const quizTTL = time.Hour

// QuizCache is a read-through cache in front of the quiz repository. The
// adaptive engine resolves the quiz on every processed response, so hot
// quizzes stay in redis for the lifetime of an attempt. Implements
// engine.QuizSource.
type QuizCache struct {
	repo   repositories.QuizRepository
	cache  CacheService
	logger utils.Logger
}

func NewQuizCache(repo repositories.QuizRepository, cache CacheService, logger utils.Logger) *QuizCache {
	return &QuizCache{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func quizKey(quizID string) string {
	return "quiz:" + quizID
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID string) (*models.GeneratedQuiz, error) {
	var cached models.GeneratedQuiz
	err := c.cache.Get(ctx, quizKey(quizID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		// Redis trouble is not fatal; fall through to the repository
		c.logger.Warn("Quiz cache read failed", "quiz_id", quizID, "error", err)
	}

	quiz, err := c.repo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, quizKey(quizID), quiz, quizTTL); err != nil {
		c.logger.Warn("Quiz cache write failed", "quiz_id", quizID, "error", err)
	}

	return quiz, nil
}

// Store primes the cache right after generation so the first response
// does not pay a database round trip.
func (c *QuizCache) Store(ctx context.Context, quiz *models.GeneratedQuiz) {
	if err := c.cache.Set(ctx, quizKey(quiz.ID), quiz, quizTTL); err != nil {
		c.logger.Warn("Quiz cache prime failed", "quiz_id", quiz.ID, "error", err)
	}
}

// Invalidate drops a quiz from the cache, used on deletion.
func (c *QuizCache) Invalidate(ctx context.Context, quizID string) {
	if err := c.cache.Delete(ctx, quizKey(quizID)); err != nil {
		c.logger.Warn("Quiz cache invalidation failed", "quiz_id", quizID, "error", err)
	}
}
