package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizRecord is the persisted form of a GeneratedQuiz. The question list and
// generation metadata are document-shaped, so they live in jsonb columns.
type QuizRecord struct {
	ID           string `json:"id" gorm:"primaryKey;size:64"`
	StudentID    string `json:"student_id" gorm:"not null;size:64;index"`
	GradeLevel   string `json:"grade_level" gorm:"not null;size:32;index"`
	LearningArea string `json:"learning_area" gorm:"not null;size:100;index"`
	Title        string `json:"title" gorm:"not null;size:200"`
	Description  string `json:"description" gorm:"type:text"`

	Configuration datatypes.JSON `json:"configuration" gorm:"type:jsonb"`       // QuizConfiguration
	Questions     datatypes.JSON `json:"questions" gorm:"type:jsonb"`           // []QuizQuestion
	Metadata      datatypes.JSON `json:"generation_metadata" gorm:"type:jsonb"` // GenerationMetadata

	QuestionCount     int `json:"question_count" gorm:"not null"`
	EstimatedDuration int `json:"estimated_duration"`

	AdaptToDifficulty bool `json:"adapt_to_difficulty"`
	FocusOnWeakAreas  bool `json:"focus_on_weak_areas"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (QuizRecord) TableName() string {
	return "quizzes"
}

// AttemptRecord archives a completed QuizAttempt together with its computed
// results. Live attempts stay in the engine's attempt store; only finished
// ones reach this table.
type AttemptRecord struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	QuizID    string `json:"quiz_id" gorm:"not null;size:64;index"`
	StudentID string `json:"student_id" gorm:"not null;size:64;index"`

	Responses   datatypes.JSON `json:"responses" gorm:"type:jsonb"`   // []QuizResponse
	Adaptations datatypes.JSON `json:"adaptations" gorm:"type:jsonb"` // []QuizAdaptation
	Results     datatypes.JSON `json:"results" gorm:"type:jsonb"`     // QuizResults

	Score     int     `json:"score" gorm:"not null"`
	MaxScore  int     `json:"max_score" gorm:"not null"`
	Accuracy  float64 `json:"accuracy"`
	TimeSpent int     `json:"time_spent"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (AttemptRecord) TableName() string {
	return "quiz_attempts"
}

// NewQuizRecord flattens a GeneratedQuiz into its persisted form.
func NewQuizRecord(quiz *GeneratedQuiz) (*QuizRecord, error) {
	configJSON, err := json.Marshal(quiz.Configuration)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	metadataJSON, err := json.Marshal(quiz.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return &QuizRecord{
		ID:                quiz.ID,
		StudentID:         quiz.Configuration.StudentID,
		GradeLevel:        quiz.Configuration.GradeLevel,
		LearningArea:      quiz.Configuration.LearningArea,
		Title:             quiz.Title,
		Description:       quiz.Description,
		Configuration:     configJSON,
		Questions:         questionsJSON,
		Metadata:          metadataJSON,
		QuestionCount:     len(quiz.Questions),
		EstimatedDuration: quiz.EstimatedDuration,
		AdaptToDifficulty: quiz.AdaptiveFeatures.DifficultyAdjustment,
		FocusOnWeakAreas:  quiz.AdaptiveFeatures.WeakAreaFocus,
	}, nil
}

// ToQuiz reconstructs the domain quiz from a record.
func (r *QuizRecord) ToQuiz() (*GeneratedQuiz, error) {
	quiz := &GeneratedQuiz{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		EstimatedDuration: r.EstimatedDuration,
		AdaptiveFeatures: AdaptiveFeatures{
			DifficultyAdjustment: r.AdaptToDifficulty,
			WeakAreaFocus:        r.FocusOnWeakAreas,
		},
	}
	if err := json.Unmarshal(r.Configuration, &quiz.Configuration); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := json.Unmarshal(r.Questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(r.Metadata, &quiz.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	quiz.AdaptiveFeatures.StrengthReinforce = quiz.Configuration.ReinforceStrengths
	quiz.AdaptiveFeatures.ReviewQuestions = quiz.Configuration.IncludeReviewQuestions
	return quiz, nil
}

// NewAttemptRecord archives a finished attempt with its results.
func NewAttemptRecord(attempt *QuizAttempt, results *QuizResults) (*AttemptRecord, error) {
	responsesJSON, err := json.Marshal(attempt.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responses: %w", err)
	}
	adaptationsJSON, err := json.Marshal(attempt.Adaptations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal adaptations: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	return &AttemptRecord{
		ID:          attempt.ID,
		QuizID:      attempt.QuizID,
		StudentID:   attempt.StudentID,
		Responses:   responsesJSON,
		Adaptations: adaptationsJSON,
		Results:     resultsJSON,
		Score:       attempt.Score,
		MaxScore:    attempt.MaxScore,
		Accuracy:    results.Accuracy,
		TimeSpent:   attempt.TimeSpent,
		StartedAt:   attempt.StartTime,
		CompletedAt: attempt.EndTime,
	}, nil
}
