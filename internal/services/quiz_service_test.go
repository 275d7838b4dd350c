package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/elimu-cbc/quiz-service/internal/cache"
	"github.com/elimu-cbc/quiz-service/internal/events"
	"github.com/elimu-cbc/quiz-service/internal/generator"
	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

func testQuizConfig() *models.QuizConfiguration {
	return &models.QuizConfiguration{
		StudentID:       "student-1",
		GradeLevel:      "grade4",
		LearningArea:    "mathematics",
		QuestionCount:   5,
		DifficultyRange: models.DifficultyRange{Min: 2, Max: 6},
		QuestionTypes:   []models.QuestionType{models.MultipleChoice, models.ShortAnswer},
	}
}

func newQuizServiceForTest(repo *MockQuizRepository) (QuizService, *cache.QuizCache) {
	logger := utils.NewDefaultLogger()
	quizCache := cache.NewQuizCache(repo, newFakeCacheService(), logger)
	gen := generator.NewAIQuizGenerator(generator.NewRegistry(), generator.NewPerformanceAnalyzer(), logger)
	publisher := events.NewMockEventPublisher(slog.Default())

	svc := NewQuizService(gen, repo, quizCache, publisher, slog.Default(), utils.NewValidator())
	return svc, quizCache
}

func TestQuizService_Generate(t *testing.T) {
	mockRepo := &MockQuizRepository{}
	svc, _ := newQuizServiceForTest(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(quiz *models.GeneratedQuiz) bool {
		return len(quiz.Questions) == 5 && quiz.Configuration.StudentID == "student-1"
	})).Return(nil)

	quiz, err := svc.Generate(context.Background(), testQuizConfig())
	require.NoError(t, err)

	assert.NotEmpty(t, quiz.ID)
	assert.Len(t, quiz.Questions, 5)
	mockRepo.AssertExpectations(t)

	// The generated quiz is primed into the cache, so a lookup never touches
	// the repository.
	cached, err := svc.GetByID(context.Background(), quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, cached.ID)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestQuizService_Generate_InvalidConfiguration(t *testing.T) {
	mockRepo := &MockQuizRepository{}
	svc, _ := newQuizServiceForTest(mockRepo)

	config := testQuizConfig()
	config.StudentID = ""
	config.QuestionCount = 0

	_, err := svc.Generate(context.Background(), config)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_Generate_StorageFailureStillReturnsQuiz(t *testing.T) {
	mockRepo := &MockQuizRepository{}
	svc, _ := newQuizServiceForTest(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	quiz, err := svc.Generate(context.Background(), testQuizConfig())
	require.NoError(t, err, "a storage outage must not block quiz delivery")
	assert.NotEmpty(t, quiz.Questions)
}

func TestQuizService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockQuizRepository{}
	svc, _ := newQuizServiceForTest(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "missing").Return((*models.GeneratedQuiz)(nil), gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.True(t, IsNotFound(err))
}

func TestQuizService_Delete(t *testing.T) {
	mockRepo := &MockQuizRepository{}
	svc, quizCache := newQuizServiceForTest(mockRepo)
	ctx := context.Background()

	quiz := &models.GeneratedQuiz{ID: "quiz-1", Configuration: *testQuizConfig()}
	quizCache.Store(ctx, quiz)

	mockRepo.On("Delete", mock.Anything, "quiz-1").Return(nil)
	mockRepo.On("GetByID", mock.Anything, "quiz-1").Return((*models.GeneratedQuiz)(nil), gorm.ErrRecordNotFound)

	require.NoError(t, svc.Delete(ctx, "quiz-1"))

	// The cache entry is gone too; the lookup now falls through to the
	// repository and reports not found.
	_, err := svc.GetByID(ctx, "quiz-1")
	assert.ErrorIs(t, err, ErrQuizNotFound)

	mockRepo.On("Delete", mock.Anything, "missing").Return(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrQuizNotFound)
}
