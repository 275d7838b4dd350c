package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/elimu-cbc/quiz-service/internal/cache"
	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
)

// MockQuizRepository is a mock implementation of repositories.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.GeneratedQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.GeneratedQuiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.QuizRecord, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.QuizRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttemptArchive is a mock implementation of repositories.AttemptArchive
type MockAttemptArchive struct {
	mock.Mock
}

func (m *MockAttemptArchive) Create(ctx context.Context, record *models.AttemptRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttemptArchive) GetByID(ctx context.Context, id string) (*models.AttemptRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.AttemptRecord), args.Error(1)
}

func (m *MockAttemptArchive) GetByStudent(ctx context.Context, studentID string, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	args := m.Called(ctx, studentID, filters)
	return args.Get(0).([]*models.AttemptRecord), args.Get(1).(int64), args.Error(2)
}

// MockQuizService is a mock implementation of QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Generate(ctx context.Context, config *models.QuizConfiguration) (*models.GeneratedQuiz, error) {
	args := m.Called(ctx, config)
	return args.Get(0).(*models.GeneratedQuiz), args.Error(1)
}

func (m *MockQuizService) GetByID(ctx context.Context, id string) (*models.GeneratedQuiz, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.GeneratedQuiz), args.Error(1)
}

func (m *MockQuizService) List(ctx context.Context, filters repositories.QuizFilters) (*QuizListResponse, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(*QuizListResponse), args.Error(1)
}

func (m *MockQuizService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeCacheService is an in-memory stand-in for the redis cache.
type fakeCacheService struct {
	data map[string][]byte
}

func newFakeCacheService() *fakeCacheService {
	return &fakeCacheService{data: make(map[string][]byte)}
}

func (f *fakeCacheService) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = encoded
	return nil
}

func (f *fakeCacheService) Get(_ context.Context, key string, dest interface{}) error {
	encoded, ok := f.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(encoded, dest)
}

func (f *fakeCacheService) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCacheService) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}
