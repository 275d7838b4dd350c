package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (r *QuizPostgreSQL) Create(ctx context.Context, quiz *models.GeneratedQuiz) error {
	record, err := models.NewQuizRecord(quiz)
	if err != nil {
		return fmt.Errorf("failed to build quiz record: %w", err)
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *QuizPostgreSQL) GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error) {
	var record models.QuizRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return record.ToQuiz()
}

func (r *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.QuizRecord, int64, error) {
	var records []*models.QuizRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.QuizRecord{})
	query = applyQuizFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyQuizPagination(query, filters)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *QuizPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.QuizRecord{}, "id = ?", id).Error
}

func applyQuizFilters(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.LearningArea != nil {
		query = query.Where("learning_area = ?", *filters.LearningArea)
	}
	if filters.GradeLevel != nil {
		query = query.Where("grade_level = ?", *filters.GradeLevel)
	}
	return query
}

func applyQuizPagination(query *gorm.DB, filters repositories.QuizFilters) *gorm.DB {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
