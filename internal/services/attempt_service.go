package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elimu-cbc/quiz-service/internal/engine"
	"github.com/elimu-cbc/quiz-service/internal/events"
	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

type StartAttemptRequest struct {
	QuizID    string `json:"quiz_id" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
}

type StartAttemptResponse struct {
	Attempt       *models.QuizAttempt  `json:"attempt"`
	FirstQuestion *models.QuizQuestion `json:"first_question"`
	QuestionCount int                  `json:"question_count"`
}

type SubmitResponseRequest struct {
	QuestionID string                 `json:"question_id" validate:"required"`
	Answer     models.Answer          `json:"answer"`
	TimeSpent  int                    `json:"time_spent" validate:"min=0"`
	Confidence models.ConfidenceLevel `json:"confidence" validate:"omitempty,confidence_level"`
}

// AttemptService drives the attempt lifecycle: live state lives in the
// engine's store, finished attempts are archived with their results and
// announced on the event bus.
type AttemptService interface {
	Start(ctx context.Context, req *StartAttemptRequest) (*StartAttemptResponse, error)
	SubmitResponse(ctx context.Context, attemptID string, req *SubmitResponseRequest) (*engine.ResponseResult, error)
	GetAttempt(ctx context.Context, attemptID string) (*models.QuizAttempt, error)
	GetResults(ctx context.Context, attemptID string) (*models.QuizResults, error)
}

type attemptService struct {
	engine    *engine.AdaptiveQuizEngine
	store     engine.AttemptStore
	quizzes   QuizService
	archive   repositories.AttemptArchive
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAttemptService(
	quizEngine *engine.AdaptiveQuizEngine,
	store engine.AttemptStore,
	quizzes QuizService,
	archive repositories.AttemptArchive,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) AttemptService {
	return &attemptService{
		engine:    quizEngine,
		store:     store,
		quizzes:   quizzes,
		archive:   archive,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *attemptService) Start(ctx context.Context, req *StartAttemptRequest) (*StartAttemptResponse, error) {
	s.logger.Info("Starting quiz attempt",
		"quiz_id", req.QuizID,
		"student_id", req.StudentID)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quiz, err := s.quizzes.GetByID(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.engine.StartQuizAttempt(ctx, quiz, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to start attempt: %w", err)
	}

	var first *models.QuizQuestion
	if len(quiz.Questions) > 0 {
		first = &quiz.Questions[0]
	}

	return &StartAttemptResponse{
		Attempt:       attempt,
		FirstQuestion: first,
		QuestionCount: len(quiz.Questions),
	}, nil
}

func (s *attemptService) SubmitResponse(ctx context.Context, attemptID string, req *SubmitResponseRequest) (*engine.ResponseResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result, err := s.engine.ProcessQuestionResponse(ctx, attemptID, req.QuestionID, req.Answer, req.TimeSpent, req.Confidence)
	if err != nil {
		return nil, err
	}

	if !result.ShouldContinue {
		s.finishAttempt(ctx, attemptID)
	}

	return result, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, attemptID string) (*models.QuizAttempt, error) {
	return s.engine.GetAttempt(ctx, attemptID)
}

// GetResults serves live attempts from the engine and falls back to the
// archive once the attempt has been evicted from the live store.
func (s *attemptService) GetResults(ctx context.Context, attemptID string) (*models.QuizResults, error) {
	results, err := s.engine.GetQuizResults(ctx, attemptID)
	if err == nil {
		return results, nil
	}
	if !errors.Is(err, engine.ErrAttemptNotFound) {
		return nil, err
	}

	record, err := s.archive.GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
		}
		return nil, fmt.Errorf("failed to get archived attempt: %w", err)
	}

	var archived models.QuizResults
	if err := json.Unmarshal(record.Results, &archived); err != nil {
		return nil, fmt.Errorf("failed to decode archived results: %w", err)
	}
	return &archived, nil
}

// finishAttempt archives the completed attempt with its results, announces it
// and evicts the live state. Archive failures keep the attempt live so a
// retry of GetResults still works; they never fail the student's response.
func (s *attemptService) finishAttempt(ctx context.Context, attemptID string) {
	attempt, err := s.engine.GetAttempt(ctx, attemptID)
	if err != nil {
		s.logger.Error("Completed attempt missing from live store",
			"attempt_id", attemptID, "error", err)
		return
	}

	results, err := s.engine.GetQuizResults(ctx, attemptID)
	if err != nil {
		s.logger.Error("Failed to compute results for completed attempt",
			"attempt_id", attemptID, "error", err)
		return
	}

	record, err := models.NewAttemptRecord(attempt, results)
	if err != nil {
		s.logger.Error("Failed to build attempt record",
			"attempt_id", attemptID, "error", err)
		return
	}

	if err := s.archive.Create(ctx, record); err != nil {
		s.logger.Error("Failed to archive completed attempt",
			"attempt_id", attemptID, "error", err)
		return
	}

	if err := s.store.Remove(ctx, attemptID); err != nil {
		s.logger.Warn("Failed to evict archived attempt from live store",
			"attempt_id", attemptID, "error", err)
	}

	go func() {
		event := events.NewAttemptCompletedEvent(attempt, results)
		if err := s.publisher.PublishQuizEvent(context.Background(), event); err != nil {
			s.logger.Error("Failed to publish attempt completed event",
				"attempt_id", attemptID, "error", err)
		}
	}()

	s.logger.Info("Quiz attempt archived",
		"attempt_id", attemptID,
		"score", attempt.Score,
		"max_score", attempt.MaxScore,
		"accuracy", results.Accuracy)
}
