package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

func TestEvaluateResponse_Text(t *testing.T) {
	question := &models.QuizQuestion{
		ID:            "q1",
		Type:          models.ShortAnswer,
		CorrectAnswer: models.TextAnswer("Nairobi"),
	}

	tests := []struct {
		name    string
		answer  models.Answer
		correct bool
	}{
		{"exact match", models.TextAnswer("Nairobi"), true},
		{"case insensitive", models.TextAnswer("nairobi"), true},
		{"surrounding whitespace", models.TextAnswer("  Nairobi  "), true},
		{"wrong answer", models.TextAnswer("Mombasa"), false},
		{"empty answer", models.TextAnswer(""), false},
		{"list answer against text", models.ListAnswer("Nairobi"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.correct, EvaluateResponse(question, tt.answer))
		})
	}
}

func TestEvaluateResponse_Number(t *testing.T) {
	question := &models.QuizQuestion{
		ID:            "q1",
		Type:          models.FillBlank,
		CorrectAnswer: models.NumberAnswer(0.5),
	}

	tests := []struct {
		name    string
		answer  models.Answer
		correct bool
	}{
		{"exact value", models.NumberAnswer(0.5), true},
		{"within tolerance", models.NumberAnswer(0.5004), true},
		{"at tolerance boundary", models.NumberAnswer(0.501), true},
		{"outside tolerance", models.NumberAnswer(0.502), false},
		{"numeric text", models.TextAnswer("0.5"), true},
		{"numeric text with spaces", models.TextAnswer(" 0.5 "), true},
		{"non-numeric text", models.TextAnswer("half"), false},
		{"list answer against number", models.ListAnswer("0.5"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.correct, EvaluateResponse(question, tt.answer))
		})
	}
}

func TestEvaluateResponse_List(t *testing.T) {
	question := &models.QuizQuestion{
		ID:            "q1",
		Type:          models.Matching,
		CorrectAnswer: models.ListAnswer("leaf", "stem", "root"),
	}

	tests := []struct {
		name    string
		answer  models.Answer
		correct bool
	}{
		{"same order", models.ListAnswer("leaf", "stem", "root"), true},
		{"different order", models.ListAnswer("root", "leaf", "stem"), true},
		{"case insensitive items", models.ListAnswer("Root", "LEAF", "stem"), true},
		{"missing item", models.ListAnswer("leaf", "stem"), false},
		{"extra item", models.ListAnswer("leaf", "stem", "root", "flower"), false},
		{"wrong item", models.ListAnswer("leaf", "stem", "flower"), false},
		{"number answer against list", models.NumberAnswer(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.correct, EvaluateResponse(question, tt.answer))
		})
	}
}

func TestEvaluateResponse_SingleItemListAcceptsText(t *testing.T) {
	question := &models.QuizQuestion{
		ID:            "q1",
		Type:          models.Ordering,
		CorrectAnswer: models.ListAnswer("germinate"),
	}

	assert.True(t, EvaluateResponse(question, models.TextAnswer("germinate")))
	assert.False(t, EvaluateResponse(question, models.TextAnswer("sprout")))
}
