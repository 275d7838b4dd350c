package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	StudentID    *string `json:"student_id"`
	LearningArea *string `json:"learning_area"`
	GradeLevel   *string `json:"grade_level"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
	SortBy       string  `json:"sort_by"`    // "created_at", "title"
	SortOrder    string  `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	StudentID *string    `json:"student_id"`
	QuizID    *string    `json:"quiz_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// QuizRepository persists generated quizzes. GetByID is on the hot path of
// every processed response, so production wiring puts the redis cache in
// front of it.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.GeneratedQuiz) error
	GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error)
	List(ctx context.Context, filters QuizFilters) ([]*models.QuizRecord, int64, error)
	Delete(ctx context.Context, id string) error
}

// AttemptArchive stores finished attempts together with their computed
// results. Live attempt state never touches this store.
type AttemptArchive interface {
	Create(ctx context.Context, record *models.AttemptRecord) error
	GetByID(ctx context.Context, id string) (*models.AttemptRecord, error)
	GetByStudent(ctx context.Context, studentID string, filters AttemptFilters) ([]*models.AttemptRecord, int64, error)
}

// IsNotFoundError reports whether the error is the storage layer's missing
// record condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
