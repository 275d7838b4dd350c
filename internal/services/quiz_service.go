package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elimu-cbc/quiz-service/internal/cache"
	"github.com/elimu-cbc/quiz-service/internal/events"
	"github.com/elimu-cbc/quiz-service/internal/generator"
	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

// QuizService owns the generate-persist-publish pipeline and quiz lookups.
type QuizService interface {
	Generate(ctx context.Context, config *models.QuizConfiguration) (*models.GeneratedQuiz, error)
	GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error)
	List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error)
	Delete(ctx context.Context, id string) error
}

type QuizListResponse struct {
	Quizzes []*models.QuizRecord `json:"quizzes"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type quizService struct {
	generator *generator.AIQuizGenerator
	repo      repositories.QuizRepository
	cache     *cache.QuizCache
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewQuizService(
	gen *generator.AIQuizGenerator,
	repo repositories.QuizRepository,
	quizCache *cache.QuizCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) QuizService {
	return &quizService{
		generator: gen,
		repo:      repo,
		cache:     quizCache,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Generate builds an adaptive quiz for the configuration, persists it and
// publishes a quiz.generated event. Generation itself cannot fail (the
// generator substitutes fallback content internally), so the only hard error
// here is an invalid configuration. A storage failure is logged and the quiz
// is still returned; it stays servable from the cache while storage recovers.
func (s *quizService) Generate(ctx context.Context, config *models.QuizConfiguration) (*models.GeneratedQuiz, error) {
	s.logger.Info("Generating quiz",
		"student_id", config.StudentID,
		"grade_level", config.GradeLevel,
		"learning_area", config.LearningArea,
		"question_count", config.QuestionCount)

	if err := s.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz := s.generator.GenerateAdaptiveQuiz(*config)

	if err := s.repo.Create(ctx, quiz); err != nil {
		s.logger.Error("Failed to persist generated quiz",
			"quiz_id", quiz.ID, "error", err)
	}
	s.cache.Store(ctx, quiz)

	go func() {
		event := events.NewQuizGeneratedEvent(quiz)
		if err := s.publisher.PublishQuizEvent(context.Background(), event); err != nil {
			s.logger.Error("Failed to publish quiz generated event",
				"quiz_id", quiz.ID, "error", err)
		}
	}()

	s.logger.Info("Quiz generated successfully",
		"quiz_id", quiz.ID,
		"question_count", len(quiz.Questions))

	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error) {
	quiz, err := s.cache.GetQuiz(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error) {
	records, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return &QuizListResponse{
		Quizzes: records,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrQuizNotFound, id)
		}
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	s.cache.Invalidate(ctx, id)

	s.logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}
