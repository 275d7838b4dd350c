package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
)

// ExportService renders quizzes and attempt results as xlsx workbooks for
// teacher review.
type ExportService interface {
	ExportQuizToExcel(ctx context.Context, quizID string) ([]byte, error)
	ExportAttemptResults(ctx context.Context, attemptID string) ([]byte, error)
}

type exportService struct {
	quizzes QuizService
	archive repositories.AttemptArchive
	logger  *slog.Logger
}

func NewExportService(quizzes QuizService, archive repositories.AttemptArchive, logger *slog.Logger) ExportService {
	return &exportService{
		quizzes: quizzes,
		archive: archive,
		logger:  logger,
	}
}

func (s *exportService) ExportQuizToExcel(ctx context.Context, quizID string) ([]byte, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"No.", "Question", "Type", "Topic", "Difficulty",
		"Options", "Correct Answer", "Explanation", "Estimated Time (s)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range quiz.Questions {
		row := []interface{}{
			rowIndex + 1,
			question.Question,
			string(question.Type),
			question.Topic,
			question.Difficulty,
			strings.Join(question.Options, "; "),
			formatAnswer(question.CorrectAnswer),
			question.Explanation,
			question.EstimatedTime,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Quiz exported", "quiz_id", quizID, "question_count", len(quiz.Questions))
	return buf.Bytes(), nil
}

func (s *exportService) ExportAttemptResults(ctx context.Context, attemptID string) ([]byte, error) {
	record, err := s.archive.GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrAttemptNotFound, attemptID)
		}
		return nil, fmt.Errorf("failed to get archived attempt: %w", err)
	}

	var responses []models.QuizResponse
	if err := json.Unmarshal(record.Responses, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode archived responses: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Question ID", "Answer", "Correct", "Difficulty",
		"Time Spent (s)", "Confidence",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, response := range responses {
		correct := "No"
		if response.IsCorrect {
			correct = "Yes"
		}
		row := []interface{}{
			response.QuestionID,
			formatAnswer(response.Answer),
			correct,
			response.Difficulty,
			response.TimeSpent,
			string(response.Confidence),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Summary block below the response rows.
	summaryRow := len(responses) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Score")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d / %d", record.Score, record.MaxScore))
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Accuracy")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), record.Accuracy)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Time Spent (s)")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), record.TimeSpent)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Attempt results exported", "attempt_id", attemptID)
	return buf.Bytes(), nil
}

func formatAnswer(answer models.Answer) string {
	switch answer.Kind {
	case models.AnswerNumber:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", answer.Number), "0"), ".")
	case models.AnswerList:
		return strings.Join(answer.List, " -> ")
	default:
		return answer.Text
	}
}
