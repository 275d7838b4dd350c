package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")
	ErrQuestionNotFound = errors.New("question not found in quiz")
	ErrAttemptCompleted = errors.New("quiz attempt already completed")
)

// QuizSource resolves question definitions for live attempts. Backed by the
// quiz repository (typically behind the redis cache) in production.
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID string) (*models.GeneratedQuiz, error)
}

// AttemptStore holds live attempt state. The engine performs read-modify-write
// on attempts without a compare-and-swap guard, so the host must serialize
// calls per attempt; the store itself only needs to be safe for concurrent
// access across different attempts.
type AttemptStore interface {
	Save(ctx context.Context, attempt *models.QuizAttempt) error
	Get(ctx context.Context, attemptID string) (*models.QuizAttempt, error)
	Remove(ctx context.Context, attemptID string) error
}

// ResponseResult is what one processed response reports back to the
// presentation layer.
type ResponseResult struct {
	IsCorrect      bool                    `json:"is_correct"`
	Feedback       string                  `json:"feedback"`
	NextQuestion   *models.QuizQuestion    `json:"next_question,omitempty"`
	Adaptations    []models.QuizAdaptation `json:"adaptations,omitempty"`
	ShouldContinue bool                    `json:"should_continue"`
}

// AdaptiveQuizEngine owns live attempt state, evaluates responses, runs the
// adaptation rules and computes results on completion.
type AdaptiveQuizEngine struct {
	quizzes  QuizSource
	attempts AttemptStore
	logger   utils.Logger
}

func NewAdaptiveQuizEngine(quizzes QuizSource, attempts AttemptStore, logger utils.Logger) *AdaptiveQuizEngine {
	return &AdaptiveQuizEngine{
		quizzes:  quizzes,
		attempts: attempts,
		logger:   logger,
	}
}

// StartQuizAttempt creates and stores a fresh attempt for the quiz.
func (e *AdaptiveQuizEngine) StartQuizAttempt(ctx context.Context, quiz *models.GeneratedQuiz, studentID string) (*models.QuizAttempt, error) {
	attempt := &models.QuizAttempt{
		ID:        uuid.NewString(),
		QuizID:    quiz.ID,
		StudentID: studentID,
		StartTime: time.Now(),
		MaxScore:  len(quiz.Questions),
	}

	if err := e.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to store attempt: %w", err)
	}

	e.logger.Info("Quiz attempt started",
		"attempt_id", attempt.ID,
		"quiz_id", quiz.ID,
		"student_id", studentID,
		"question_count", len(quiz.Questions))

	return attempt, nil
}

// ProcessQuestionResponse evaluates one submitted answer, records it, runs
// adaptation analysis and determines the next question. Unknown attempt or
// question ids surface as NotFound errors; continuing silently would corrupt
// scoring.
func (e *AdaptiveQuizEngine) ProcessQuestionResponse(ctx context.Context, attemptID, questionID string, answer models.Answer, timeSpent int, confidence models.ConfidenceLevel) (*ResponseResult, error) {
	attempt, err := e.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
	}
	if attempt.Completed {
		return nil, fmt.Errorf("%w: %s", ErrAttemptCompleted, attemptID)
	}

	quiz, err := e.quizzes.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, attempt.QuizID)
	}

	question := quiz.QuestionByID(questionID)
	if question == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}

	isCorrect := EvaluateResponse(question, answer)

	response := models.QuizResponse{
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  isCorrect,
		TimeSpent:  timeSpent,
		Confidence: confidence,
		Difficulty: question.Difficulty,
	}
	attempt.Responses = append(attempt.Responses, response)
	if isCorrect {
		attempt.Score++
	}
	attempt.TimeSpent += timeSpent

	adaptations := analyzeAdaptations(attempt, question, response)
	attempt.Adaptations = append(attempt.Adaptations, adaptations...)

	feedback := buildFeedback(question, response, adaptations)
	nextQuestion := selectNextQuestion(quiz, attempt, adaptations)

	if nextQuestion == nil {
		attempt.Completed = true
		now := time.Now()
		attempt.EndTime = &now
		e.logger.Info("Quiz attempt completed",
			"attempt_id", attempt.ID,
			"score", attempt.Score,
			"max_score", attempt.MaxScore)
	}

	if err := e.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to store attempt: %w", err)
	}

	return &ResponseResult{
		IsCorrect:      isCorrect,
		Feedback:       feedback,
		NextQuestion:   nextQuestion,
		Adaptations:    adaptations,
		ShouldContinue: nextQuestion != nil && !attempt.Completed,
	}, nil
}

// GetAttempt returns the live attempt state.
func (e *AdaptiveQuizEngine) GetAttempt(ctx context.Context, attemptID string) (*models.QuizAttempt, error) {
	attempt, err := e.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
	}
	return attempt, nil
}

// GetQuizResults recomputes results from the attempt on demand. The result is
// derived state; calling it repeatedly never mutates the attempt.
func (e *AdaptiveQuizEngine) GetQuizResults(ctx context.Context, attemptID string) (*models.QuizResults, error) {
	attempt, err := e.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
	}

	// Topic aggregation needs the question topics; results degrade to the
	// overall bucket when the quiz can no longer be resolved.
	quiz, err := e.quizzes.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		e.logger.Warn("Quiz unavailable for results, topic breakdown degraded",
			"attempt_id", attemptID, "quiz_id", attempt.QuizID, "error", err)
		quiz = nil
	}

	return computeResults(attempt, quiz), nil
}

var praiseByConfidence = map[models.ConfidenceLevel][]string{
	models.ConfidenceHigh: {
		"Excellent! You knew that one cold.",
		"Spot on, and you were sure of it!",
		"Confident and correct, great work!",
	},
	models.ConfidenceMedium: {
		"Correct! Your instincts are good.",
		"Well done, that was the right call.",
		"Nice work, you got it!",
	},
	models.ConfidenceLow: {
		"Correct! You know more than you think.",
		"You got it right, trust yourself more!",
		"That was right! Your doubts were unfounded.",
	},
}

// buildFeedback combines the correctness message with one narrative line per
// triggered adaptation.
func buildFeedback(question *models.QuizQuestion, response models.QuizResponse, adaptations []models.QuizAdaptation) string {
	var feedback string
	if response.IsCorrect {
		variants := praiseByConfidence[response.Confidence]
		if len(variants) == 0 {
			variants = praiseByConfidence[models.ConfidenceMedium]
		}
		feedback = variants[rand.Intn(len(variants))]
	} else {
		feedback = "Not quite. " + question.Explanation
	}

	for _, adaptation := range adaptations {
		switch adaptation.Action {
		case models.ActionReduceDifficulty:
			feedback += " Let's try some easier questions to rebuild momentum."
		case models.ActionIncreaseDifficulty:
			feedback += " You're on a roll, so the next questions will be harder."
		case models.ActionProvideHint:
			hint := "break the problem into smaller steps"
			if len(question.Hints) > 0 {
				hint = question.Hints[0]
			}
			feedback += fmt.Sprintf(" Take your time. Hint: %s.", hint)
		case models.ActionAddExplanation:
			feedback += fmt.Sprintf(" Here's the full explanation: %s", question.Explanation)
		}
	}

	return feedback
}

// selectNextQuestion returns the positional successor by default. When a
// difficulty-changing adaptation fired, an unanswered question at the new
// difficulty is substituted when one exists; with several such adaptations in
// one call, the last one's target wins. Already-answered successors are
// skipped so substitution jumps cannot re-serve a question.
func selectNextQuestion(quiz *models.GeneratedQuiz, attempt *models.QuizAttempt, adaptations []models.QuizAdaptation) *models.QuizQuestion {
	answered := attempt.AnsweredQuestionIDs()

	nextIndex := -1
	for i := attempt.CurrentQuestionIndex + 1; i < len(quiz.Questions); i++ {
		if !answered[quiz.Questions[i].ID] {
			nextIndex = i
			break
		}
	}
	// A substitution can jump past unanswered questions; circle back before
	// declaring the attempt complete.
	if nextIndex < 0 {
		for i := range quiz.Questions {
			if !answered[quiz.Questions[i].ID] {
				nextIndex = i
				break
			}
		}
	}

	for _, adaptation := range adaptations {
		if !adaptation.Action.ChangesDifficulty() {
			continue
		}
		for i := range quiz.Questions {
			q := &quiz.Questions[i]
			if !answered[q.ID] && q.Difficulty == adaptation.NewDifficulty {
				nextIndex = i
				break
			}
		}
	}

	if nextIndex < 0 {
		return nil
	}

	attempt.CurrentQuestionIndex = nextIndex
	return &quiz.Questions[nextIndex]
}
