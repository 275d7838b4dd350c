package engine

import (
	"fmt"
	"time"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

const (
	// adaptationWindow bounds how far back streak scanning looks, counting
	// the response just recorded.
	adaptationWindow = 6

	incorrectStreakThreshold = 2
	correctStreakThreshold   = 3
	timePressureSeconds      = 120
)

// analyzeAdaptations evaluates every adaptation rule against the trailing
// response window. Rules are independent; several can fire on one response.
// The current response must already be appended to the attempt.
func analyzeAdaptations(attempt *models.QuizAttempt, question *models.QuizQuestion, current models.QuizResponse) []models.QuizAdaptation {
	var adaptations []models.QuizAdaptation
	now := time.Now()
	difficulty := question.Difficulty

	incorrectStreak, correctStreak := trailingStreaks(attempt.Responses)

	if incorrectStreak >= incorrectStreakThreshold {
		newDifficulty := maxInt(1, difficulty-1)
		adaptations = append(adaptations, models.QuizAdaptation{
			Timestamp:          now,
			Trigger:            models.TriggerStreakIncorrect,
			Action:             models.ActionReduceDifficulty,
			QuestionIndex:      attempt.CurrentQuestionIndex,
			PreviousDifficulty: difficulty,
			NewDifficulty:      newDifficulty,
			Reason:             fmt.Sprintf("%d incorrect answers in a row", incorrectStreak),
		})
	}

	if correctStreak >= correctStreakThreshold {
		newDifficulty := minInt(10, difficulty+1)
		adaptations = append(adaptations, models.QuizAdaptation{
			Timestamp:          now,
			Trigger:            models.TriggerStreakCorrect,
			Action:             models.ActionIncreaseDifficulty,
			QuestionIndex:      attempt.CurrentQuestionIndex,
			PreviousDifficulty: difficulty,
			NewDifficulty:      newDifficulty,
			Reason:             fmt.Sprintf("%d correct answers in a row", correctStreak),
		})
	}

	if current.TimeSpent > timePressureSeconds {
		adaptations = append(adaptations, models.QuizAdaptation{
			Timestamp:          now,
			Trigger:            models.TriggerTimePressure,
			Action:             models.ActionProvideHint,
			QuestionIndex:      attempt.CurrentQuestionIndex,
			PreviousDifficulty: difficulty,
			NewDifficulty:      difficulty,
			Reason:             fmt.Sprintf("spent %d seconds on one question", current.TimeSpent),
		})
	}

	if current.Confidence == models.ConfidenceLow && !current.IsCorrect {
		adaptations = append(adaptations, models.QuizAdaptation{
			Timestamp:          now,
			Trigger:            models.TriggerConfidenceLow,
			Action:             models.ActionAddExplanation,
			QuestionIndex:      attempt.CurrentQuestionIndex,
			PreviousDifficulty: difficulty,
			NewDifficulty:      difficulty,
			Reason:             "low confidence on an incorrect answer",
		})
	}

	return adaptations
}

// trailingStreaks scans responses from most recent backward until the
// correct/incorrect pattern breaks, capped at the adaptation window. Exactly
// one of the two counts is non-zero for a non-empty history.
func trailingStreaks(responses []models.QuizResponse) (incorrect, correct int) {
	limit := len(responses)
	if limit > adaptationWindow {
		limit = adaptationWindow
	}
	for i := 0; i < limit; i++ {
		r := responses[len(responses)-1-i]
		if r.IsCorrect {
			if incorrect > 0 {
				break
			}
			correct++
		} else {
			if correct > 0 {
				break
			}
			incorrect++
		}
	}
	return incorrect, correct
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
