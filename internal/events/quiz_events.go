package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

type EventType string

const (
	EventQuizGenerated    EventType = "quiz.generated"
	EventAttemptCompleted EventType = "attempt.completed"
)

// QuizEvent is the envelope published to the platform's notification topic.
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

type QuizGeneratedPayload struct {
	QuizID        string  `json:"quiz_id"`
	StudentID     string  `json:"student_id"`
	LearningArea  string  `json:"learning_area"`
	GradeLevel    string  `json:"grade_level"`
	QuestionCount int     `json:"question_count"`
	ExpectedScore float64 `json:"expected_score"`
}

type AttemptCompletedPayload struct {
	AttemptID       string  `json:"attempt_id"`
	QuizID          string  `json:"quiz_id"`
	StudentID       string  `json:"student_id"`
	Score           int     `json:"score"`
	MaxScore        int     `json:"max_score"`
	Accuracy        float64 `json:"accuracy"`
	TimeSpent       int     `json:"time_spent"`
	AdaptationCount int     `json:"adaptation_count"`
}

func newEvent(eventType EventType, payload interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "quiz-service",
		Version:   "1.0",
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// NewQuizGeneratedEvent builds the event published after a quiz is persisted.
func NewQuizGeneratedEvent(quiz *models.GeneratedQuiz) *QuizEvent {
	return newEvent(EventQuizGenerated, QuizGeneratedPayload{
		QuizID:        quiz.ID,
		StudentID:     quiz.Configuration.StudentID,
		LearningArea:  quiz.Configuration.LearningArea,
		GradeLevel:    quiz.Configuration.GradeLevel,
		QuestionCount: len(quiz.Questions),
		ExpectedScore: quiz.Metadata.ExpectedScore,
	})
}

// NewAttemptCompletedEvent builds the event published when an attempt
// finishes and its results are archived.
func NewAttemptCompletedEvent(attempt *models.QuizAttempt, results *models.QuizResults) *QuizEvent {
	return newEvent(EventAttemptCompleted, AttemptCompletedPayload{
		AttemptID:       attempt.ID,
		QuizID:          attempt.QuizID,
		StudentID:       attempt.StudentID,
		Score:           attempt.Score,
		MaxScore:        attempt.MaxScore,
		Accuracy:        results.Accuracy,
		TimeSpent:       attempt.TimeSpent,
		AdaptationCount: len(attempt.Adaptations),
	})
}
