package generator

import (
	"math"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

// PerformanceAnalyzer turns a student's recent score history and topic mastery
// lists into a performance profile. Pure computation, no collaborators; it
// always returns a usable profile, degrading to an "average student" prior on
// empty input.
type PerformanceAnalyzer struct{}

func NewPerformanceAnalyzer() *PerformanceAnalyzer {
	return &PerformanceAnalyzer{}
}

func (a *PerformanceAnalyzer) Analyze(studentID, learningArea string, strugglingTopics, masteredTopics []string, recentPerformance []float64) models.PerformanceAnalysis {
	average := averagePerformance(recentPerformance)
	variability := performanceVariability(recentPerformance)

	analysis := models.PerformanceAnalysis{
		StudentID:              studentID,
		LearningArea:           learningArea,
		AveragePerformance:     average,
		PerformanceVariability: variability,
		AttentionSpan:          attentionSpan(variability),
	}

	if len(strugglingTopics) > len(masteredTopics) {
		analysis.Factors = append(analysis.Factors, "multiple challenging topics")
	}
	if average < 0.4 {
		analysis.Factors = append(analysis.Factors, "below average performance")
	}
	if average > 0.8 {
		analysis.Factors = append(analysis.Factors, "high performance")
	}

	if average < 0.5 {
		analysis.Recommendations = append(analysis.Recommendations,
			"Focus on foundational concepts before moving to new material")
	}
	if len(strugglingTopics) > 3 {
		analysis.Recommendations = append(analysis.Recommendations,
			"Narrow practice to a few topics at a time for better retention")
	}
	if len(masteredTopics) > len(strugglingTopics) {
		analysis.Recommendations = append(analysis.Recommendations,
			"Ready to advance to more challenging material")
	}

	return analysis
}

// averagePerformance returns the mean score, or the 0.5 "average student"
// prior when no history exists.
func averagePerformance(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.5
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// performanceVariability is the population standard deviation, 0 with fewer
// than two samples.
func performanceVariability(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	mean := averagePerformance(scores)
	var sumSquares float64
	for _, s := range scores {
		diff := s - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(scores)))
}

// attentionSpan estimates usable focus time in minutes. Scores in [0,1] keep
// the result inside [10,30].
func attentionSpan(variability float64) int {
	return int(math.Round(10 + (1-variability)*20))
}
