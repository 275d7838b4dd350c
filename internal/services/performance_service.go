package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/elimu-cbc/quiz-service/internal/generator"
	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/repositories"
)

const (
	recentAttemptWindow = 10
	strugglingThreshold = 0.5
	masteredThreshold   = 0.8
)

type StudentPerformanceResponse struct {
	Summary  *models.StudentPerformanceSummary `json:"summary"`
	Analysis *models.PerformanceAnalysis       `json:"analysis"`
}

// PerformanceService aggregates a student's archived attempts into the
// performance profile that seeds the next quiz's configuration.
type PerformanceService interface {
	GetStudentPerformance(ctx context.Context, studentID, learningArea string) (*StudentPerformanceResponse, error)
}

type performanceService struct {
	archive  repositories.AttemptArchive
	analyzer *generator.PerformanceAnalyzer
	logger   *slog.Logger
}

func NewPerformanceService(
	archive repositories.AttemptArchive,
	analyzer *generator.PerformanceAnalyzer,
	logger *slog.Logger,
) PerformanceService {
	return &performanceService{
		archive:  archive,
		analyzer: analyzer,
		logger:   logger,
	}
}

func (s *performanceService) GetStudentPerformance(ctx context.Context, studentID, learningArea string) (*StudentPerformanceResponse, error) {
	filters := repositories.AttemptFilters{Limit: recentAttemptWindow}
	records, total, err := s.archive.GetByStudent(ctx, studentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for student %s: %w", studentID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStudentHasNoAttempts, studentID)
	}

	summary := summarizeAttempts(studentID, learningArea, records, total)
	analysis := s.analyzer.Analyze(
		studentID,
		learningArea,
		summary.StrugglingTopics,
		summary.MasteredTopics,
		summary.RecentPerformance,
	)

	return &StudentPerformanceResponse{
		Summary:  summary,
		Analysis: &analysis,
	}, nil
}

// summarizeAttempts folds archived attempts into recent accuracies and topic
// classifications. Records arrive newest first; recent performance is kept in
// chronological order so streaks read naturally.
func summarizeAttempts(studentID, learningArea string, records []*models.AttemptRecord, total int64) *models.StudentPerformanceSummary {
	recent := make([]float64, 0, len(records))
	topicTotals := make(map[string]float64)
	topicCounts := make(map[string]int)

	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		recent = append(recent, record.Accuracy)

		var results models.QuizResults
		if err := json.Unmarshal(record.Results, &results); err != nil {
			continue
		}
		for topic, score := range results.TopicPerformance {
			if topic == "Overall" {
				continue
			}
			topicTotals[topic] += score
			topicCounts[topic]++
		}
	}

	var struggling, mastered []string
	for topic, sum := range topicTotals {
		avg := sum / float64(topicCounts[topic])
		switch {
		case avg < strugglingThreshold:
			struggling = append(struggling, topic)
		case avg > masteredThreshold:
			mastered = append(mastered, topic)
		}
	}
	sort.Strings(struggling)
	sort.Strings(mastered)

	return &models.StudentPerformanceSummary{
		StudentID:         studentID,
		LearningArea:      learningArea,
		RecentPerformance: recent,
		StrugglingTopics:  struggling,
		MasteredTopics:    mastered,
		AttemptCount:      int(total),
	}
}
