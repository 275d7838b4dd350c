package engine

import (
	"fmt"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

// computeResults derives QuizResults from an attempt. quiz may be nil, in
// which case the topic breakdown degrades to a single overall bucket.
func computeResults(attempt *models.QuizAttempt, quiz *models.GeneratedQuiz) *models.QuizResults {
	results := &models.QuizResults{
		AttemptID:               attempt.ID,
		QuizID:                  attempt.QuizID,
		StudentID:               attempt.StudentID,
		Score:                   attempt.Score,
		MaxScore:                attempt.MaxScore,
		TimeSpent:               attempt.TimeSpent,
		PerformanceByDifficulty: performanceByDifficulty(attempt.Responses),
		TopicPerformance:        topicPerformance(attempt.Responses, quiz),
		AdaptationsSummary:      summarizeAdaptations(attempt.Adaptations),
		CompletedAt:             attempt.EndTime,
	}

	if len(attempt.Responses) > 0 {
		correct := 0
		for _, r := range attempt.Responses {
			if r.IsCorrect {
				correct++
			}
		}
		results.Accuracy = float64(correct) / float64(len(attempt.Responses))
	}

	results.Recommendations = buildRecommendations(results.Accuracy, attempt)

	return results
}

// performanceByDifficulty buckets accuracy by the difficulty recorded on each
// response at answer time.
func performanceByDifficulty(responses []models.QuizResponse) map[int]float64 {
	totals := make(map[int]int)
	correct := make(map[int]int)
	for _, r := range responses {
		totals[r.Difficulty]++
		if r.IsCorrect {
			correct[r.Difficulty]++
		}
	}

	performance := make(map[int]float64, len(totals))
	for difficulty, total := range totals {
		performance[difficulty] = float64(correct[difficulty]) / float64(total)
	}
	return performance
}

// topicPerformance joins responses back to question topics through the quiz.
// Without the quiz only the overall bucket can be computed.
func topicPerformance(responses []models.QuizResponse, quiz *models.GeneratedQuiz) map[string]float64 {
	performance := make(map[string]float64)
	if len(responses) == 0 {
		return performance
	}

	overallCorrect := 0
	totals := make(map[string]int)
	correct := make(map[string]int)

	for _, r := range responses {
		if r.IsCorrect {
			overallCorrect++
		}
		if quiz == nil {
			continue
		}
		question := quiz.QuestionByID(r.QuestionID)
		if question == nil {
			continue
		}
		totals[question.Topic]++
		if r.IsCorrect {
			correct[question.Topic]++
		}
	}

	for topic, total := range totals {
		performance[topic] = float64(correct[topic]) / float64(total)
	}
	performance["Overall"] = float64(overallCorrect) / float64(len(responses))

	return performance
}

var adaptationSummaryText = map[models.AdaptationAction]string{
	models.ActionReduceDifficulty:   "Difficulty was reduced",
	models.ActionIncreaseDifficulty: "Difficulty was increased",
	models.ActionProvideHint:        "Hints were provided",
	models.ActionAddExplanation:     "Extra explanations were added",
	models.ActionChangeTopic:        "The topic focus was changed",
}

// summarizeAdaptations emits one line per distinct action with its count,
// in first-occurrence order.
func summarizeAdaptations(adaptations []models.QuizAdaptation) []string {
	counts := make(map[models.AdaptationAction]int)
	var order []models.AdaptationAction
	for _, a := range adaptations {
		if counts[a.Action] == 0 {
			order = append(order, a.Action)
		}
		counts[a.Action]++
	}

	var summary []string
	for _, action := range order {
		text := adaptationSummaryText[action]
		if text == "" {
			text = string(action)
		}
		summary = append(summary, fmt.Sprintf("%s %d time(s)", text, counts[action]))
	}
	return summary
}

func buildRecommendations(accuracy float64, attempt *models.QuizAttempt) []string {
	var recommendations []string

	if accuracy < 0.5 {
		recommendations = append(recommendations,
			"Review the fundamentals of these topics and take your time on each question")
	}
	if accuracy > 0.8 {
		recommendations = append(recommendations,
			"Strong result! You're ready to advance to more challenging material")
	}

	if len(attempt.Responses) > 0 {
		avgTime := attempt.TimeSpent / len(attempt.Responses)
		if avgTime > 90 {
			recommendations = append(recommendations,
				"Work on answering more efficiently; practice similar questions to build speed")
		} else if avgTime < 30 {
			recommendations = append(recommendations,
				"Great pace! Just make sure you read each question fully before answering")
		}
	}

	return recommendations
}
