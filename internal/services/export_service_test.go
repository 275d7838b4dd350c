package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer models.Answer
		want   string
	}{
		{"text", models.TextAnswer("Nairobi"), "Nairobi"},
		{"whole number", models.NumberAnswer(42), "42"},
		{"fractional number", models.NumberAnswer(2.5), "2.5"},
		{"list", models.ListAnswer("seed", "sprout", "plant"), "seed -> sprout -> plant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAnswer(tt.answer))
		})
	}
}

func TestExportService_ExportQuizToExcel(t *testing.T) {
	quizSvc := &MockQuizService{}
	archive := &MockAttemptArchive{}
	svc := NewExportService(quizSvc, archive, slog.Default())

	quiz := &models.GeneratedQuiz{
		ID: "quiz-1",
		Questions: []models.QuizQuestion{
			{
				ID:            "q1",
				Type:          models.MultipleChoice,
				Question:      "What is 2 + 2?",
				Options:       []string{"3", "4", "5", "6"},
				CorrectAnswer: models.NumberAnswer(4),
				Topic:         "addition",
				Difficulty:    2,
				EstimatedTime: 30,
			},
		},
	}
	quizSvc.On("GetByID", mock.Anything, "quiz-1").Return(quiz, nil)

	data, err := svc.ExportQuizToExcel(context.Background(), "quiz-1")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Questions", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Question", header)

	question, err := f.GetCellValue("Questions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", question)

	options, err := f.GetCellValue("Questions", "F2")
	require.NoError(t, err)
	assert.Equal(t, "3; 4; 5; 6", options)
}

func TestExportService_ExportAttemptResults_NotArchived(t *testing.T) {
	quizSvc := &MockQuizService{}
	archive := &MockAttemptArchive{}
	svc := NewExportService(quizSvc, archive, slog.Default())

	archive.On("GetByID", mock.Anything, "live-attempt").Return((*models.AttemptRecord)(nil), gorm.ErrRecordNotFound)

	_, err := svc.ExportAttemptResults(context.Background(), "live-attempt")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}
