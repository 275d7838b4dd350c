package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

// stubQuizSource serves a fixed quiz.
type stubQuizSource struct {
	quiz *models.GeneratedQuiz
}

func (s *stubQuizSource) GetQuiz(_ context.Context, quizID string) (*models.GeneratedQuiz, error) {
	if s.quiz == nil || s.quiz.ID != quizID {
		return nil, fmt.Errorf("no quiz %s", quizID)
	}
	return s.quiz, nil
}

// stubAttemptStore is a plain map; engine tests run single-goroutine.
type stubAttemptStore map[string]*models.QuizAttempt

func (s stubAttemptStore) Save(_ context.Context, attempt *models.QuizAttempt) error {
	s[attempt.ID] = attempt
	return nil
}

func (s stubAttemptStore) Get(_ context.Context, attemptID string) (*models.QuizAttempt, error) {
	attempt, ok := s[attemptID]
	if !ok {
		return nil, fmt.Errorf("no attempt %s", attemptID)
	}
	return attempt, nil
}

func (s stubAttemptStore) Remove(_ context.Context, attemptID string) error {
	delete(s, attemptID)
	return nil
}

func testQuiz() *models.GeneratedQuiz {
	return &models.GeneratedQuiz{
		ID:    "quiz-1",
		Title: "GRADE4 Mathematics Quiz",
		Configuration: models.QuizConfiguration{
			StudentID:    "student-1",
			GradeLevel:   "grade4",
			LearningArea: "mathematics",
		},
		Questions: []models.QuizQuestion{
			{ID: "q1", Type: models.ShortAnswer, Question: "2 + 2 = ?", CorrectAnswer: models.NumberAnswer(4), Difficulty: 5, Topic: "addition"},
			{ID: "q2", Type: models.ShortAnswer, Question: "3 + 3 = ?", CorrectAnswer: models.NumberAnswer(6), Difficulty: 5, Topic: "addition"},
			{ID: "q3", Type: models.ShortAnswer, Question: "4 + 4 = ?", CorrectAnswer: models.NumberAnswer(8), Difficulty: 5, Topic: "addition"},
			{ID: "q4", Type: models.ShortAnswer, Question: "1 + 1 = ?", CorrectAnswer: models.NumberAnswer(2), Difficulty: 4, Topic: "addition"},
			{ID: "q5", Type: models.ShortAnswer, Question: "9 x 9 = ?", CorrectAnswer: models.NumberAnswer(81), Difficulty: 6, Topic: "multiplication"},
		},
	}
}

func newTestEngine(quiz *models.GeneratedQuiz) (*AdaptiveQuizEngine, stubAttemptStore) {
	store := stubAttemptStore{}
	e := NewAdaptiveQuizEngine(&stubQuizSource{quiz: quiz}, store, utils.NewDefaultLogger())
	return e, store
}

func TestStartQuizAttempt(t *testing.T) {
	quiz := testQuiz()
	e, store := newTestEngine(quiz)

	attempt, err := e.StartQuizAttempt(context.Background(), quiz, "student-1")
	require.NoError(t, err)

	assert.NotEmpty(t, attempt.ID)
	assert.Equal(t, quiz.ID, attempt.QuizID)
	assert.Equal(t, "student-1", attempt.StudentID)
	assert.Equal(t, len(quiz.Questions), attempt.MaxScore)
	assert.False(t, attempt.Completed)
	assert.Contains(t, store, attempt.ID)
}

func TestProcessQuestionResponse_CorrectAnswerScores(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")

	result, err := e.ProcessQuestionResponse(context.Background(), attempt.ID, "q1", models.NumberAnswer(4), 20, models.ConfidenceHigh)
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.True(t, result.ShouldContinue)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q2", result.NextQuestion.ID)
	assert.Equal(t, 1, attempt.Score)
}

func TestProcessQuestionResponse_UnknownAttempt(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)

	_, err := e.ProcessQuestionResponse(context.Background(), "missing", "q1", models.NumberAnswer(4), 10, models.ConfidenceHigh)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestProcessQuestionResponse_UnknownQuestion(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")

	_, err := e.ProcessQuestionResponse(context.Background(), attempt.ID, "nope", models.NumberAnswer(4), 10, models.ConfidenceHigh)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestProcessQuestionResponse_IncorrectStreakSubstitutesEasierQuestion(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")
	ctx := context.Background()

	result, err := e.ProcessQuestionResponse(ctx, attempt.ID, "q1", models.NumberAnswer(99), 30, models.ConfidenceMedium)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Empty(t, result.Adaptations, "one miss is not yet a streak")

	result, err = e.ProcessQuestionResponse(ctx, attempt.ID, "q2", models.NumberAnswer(99), 30, models.ConfidenceMedium)
	require.NoError(t, err)

	require.Len(t, result.Adaptations, 1)
	assert.Equal(t, models.ActionReduceDifficulty, result.Adaptations[0].Action)
	assert.Equal(t, 4, result.Adaptations[0].NewDifficulty)

	// The next question is pulled from the new difficulty level, not the
	// positional successor q3.
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q4", result.NextQuestion.ID)
}

func TestProcessQuestionResponse_CorrectStreakSubstitutesHarderQuestion(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")
	ctx := context.Background()

	answers := map[string]models.Answer{
		"q1": models.NumberAnswer(4),
		"q2": models.NumberAnswer(6),
		"q3": models.NumberAnswer(8),
	}
	var result *ResponseResult
	var err error
	for _, id := range []string{"q1", "q2", "q3"} {
		result, err = e.ProcessQuestionResponse(ctx, attempt.ID, id, answers[id], 15, models.ConfidenceHigh)
		require.NoError(t, err)
	}

	require.Len(t, result.Adaptations, 1)
	assert.Equal(t, models.ActionIncreaseDifficulty, result.Adaptations[0].Action)
	assert.Equal(t, 6, result.Adaptations[0].NewDifficulty)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "q5", result.NextQuestion.ID)
}

func TestProcessQuestionResponse_CompletionIsOneWay(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")
	ctx := context.Background()

	answers := map[string]models.Answer{
		"q1": models.NumberAnswer(4),
		"q2": models.NumberAnswer(6),
		"q3": models.NumberAnswer(8),
		"q4": models.NumberAnswer(2),
		"q5": models.NumberAnswer(81),
	}

	var result *ResponseResult
	var err error
	processed := 0
	questionID := "q1"
	for {
		result, err = e.ProcessQuestionResponse(ctx, attempt.ID, questionID, answers[questionID], 10, models.ConfidenceMedium)
		require.NoError(t, err)
		processed++
		if result.NextQuestion == nil {
			break
		}
		questionID = result.NextQuestion.ID
		require.LessOrEqual(t, processed, len(quiz.Questions))
	}

	assert.Equal(t, len(quiz.Questions), processed, "every question served exactly once")
	assert.False(t, result.ShouldContinue)
	assert.True(t, attempt.Completed)
	assert.NotNil(t, attempt.EndTime)

	_, err = e.ProcessQuestionResponse(ctx, attempt.ID, "q1", answers["q1"], 10, models.ConfidenceMedium)
	assert.ErrorIs(t, err, ErrAttemptCompleted)
}

func TestGetQuizResults(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)
	attempt, _ := e.StartQuizAttempt(context.Background(), quiz, "student-1")
	ctx := context.Background()

	// Three correct, then two wrong to avoid substitution jumps.
	_, err := e.ProcessQuestionResponse(ctx, attempt.ID, "q1", models.NumberAnswer(4), 20, models.ConfidenceHigh)
	require.NoError(t, err)
	_, err = e.ProcessQuestionResponse(ctx, attempt.ID, "q2", models.NumberAnswer(99), 40, models.ConfidenceLow)
	require.NoError(t, err)

	results, err := e.GetQuizResults(ctx, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, attempt.ID, results.AttemptID)
	assert.Equal(t, quiz.ID, results.QuizID)
	assert.Equal(t, 1, results.Score)
	assert.Equal(t, 5, results.MaxScore)
	assert.InDelta(t, 0.5, results.Accuracy, 1e-9, "accuracy is over answered questions")
	assert.Equal(t, 60, results.TimeSpent)
	assert.InDelta(t, 0.5, results.PerformanceByDifficulty[5], 1e-9)
	assert.InDelta(t, 0.5, results.TopicPerformance["addition"], 1e-9)
	assert.Contains(t, results.TopicPerformance, "Overall")
	assert.Nil(t, results.CompletedAt)
}

func TestGetQuizResults_UnknownAttempt(t *testing.T) {
	quiz := testQuiz()
	e, _ := newTestEngine(quiz)

	_, err := e.GetQuizResults(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}
