package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

// numericTolerance absorbs floating-point error in numeric answers.
const numericTolerance = 0.001

// EvaluateResponse reports whether the student's answer matches the
// question's correct answer. Pure function of (question, answer): list
// answers are an order-independent set match with equal length, numeric
// answers compare within tolerance, everything else compares
// case-insensitively after trimming.
func EvaluateResponse(question *models.QuizQuestion, answer models.Answer) bool {
	correct := question.CorrectAnswer

	switch correct.Kind {
	case models.AnswerList:
		given, ok := answerAsList(answer)
		if !ok || len(given) != len(correct.List) {
			return false
		}
		for _, expected := range correct.List {
			if !containsFold(given, expected) {
				return false
			}
		}
		return true

	case models.AnswerNumber:
		value, ok := answerAsNumber(answer)
		if !ok {
			return false
		}
		return math.Abs(value-correct.Number) <= numericTolerance

	default:
		given, ok := answerAsText(answer)
		if !ok {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct.Text))
	}
}

func answerAsList(answer models.Answer) ([]string, bool) {
	switch answer.Kind {
	case models.AnswerList:
		return answer.List, true
	case models.AnswerText:
		return []string{answer.Text}, true
	default:
		return nil, false
	}
}

func answerAsNumber(answer models.Answer) (float64, bool) {
	switch answer.Kind {
	case models.AnswerNumber:
		return answer.Number, true
	case models.AnswerText:
		value, err := strconv.ParseFloat(strings.TrimSpace(answer.Text), 64)
		return value, err == nil
	default:
		return 0, false
	}
}

func answerAsText(answer models.Answer) (string, bool) {
	switch answer.Kind {
	case models.AnswerText:
		return answer.Text, true
	case models.AnswerNumber:
		return strconv.FormatFloat(answer.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
