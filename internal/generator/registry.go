package generator

import (
	"strings"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

// GenerateRequest carries everything a subject generator needs to produce one
// question. Difficulty has already been selected and clamped by the caller.
type GenerateRequest struct {
	GradeLevel string
	Topic      string
	Difficulty int // 1-10
	Type       models.QuestionType
}

// QuestionGenerator produces a single question of the requested shape. The
// correct answer must be derived analytically, never looked up. A returned
// error means the caller substitutes a fallback question of the same topic,
// difficulty and type; generators must not panic.
type QuestionGenerator interface {
	Generate(req GenerateRequest) (models.QuizQuestion, error)
}

// Template binds a generator to the question types, difficulties and topics
// it can serve.
type Template struct {
	Type         models.QuestionType
	Difficulties []int
	Topics       []string
	Generator    QuestionGenerator
}

func (t Template) supportsDifficulty(difficulty int) bool {
	for _, d := range t.Difficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

func (t Template) supportsTopic(topic string) bool {
	for _, candidate := range t.Topics {
		if strings.EqualFold(candidate, topic) {
			return true
		}
	}
	return false
}

// Registry maps a subject (learning area, case-insensitive) to its question
// templates. Populated once at construction; an unknown subject yields an
// empty template list and the quiz generator falls back per question.
type Registry struct {
	templates map[string][]Template
}

// NewRegistry builds the default template set for the CBC learning areas the
// service generates questions for.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string][]Template)}

	r.register("mathematics", mathematicsTemplates())
	r.register("science", scienceTemplates())
	r.register("english", languageTemplates())

	// "Language Activities" in lower primary maps onto the english templates.
	r.register("language", r.templates["english"])

	return r
}

func (r *Registry) register(subject string, templates []Template) {
	r.templates[strings.ToLower(subject)] = templates
}

// Templates returns all templates for a subject, or an empty list.
func (r *Registry) Templates(subject string) []Template {
	return r.templates[strings.ToLower(subject)]
}

// Find returns templates matching type, difficulty and topic. When no exact
// match exists the topic constraint is relaxed; an empty result after that
// means the question is skipped by the caller.
func (r *Registry) Find(subject string, qType models.QuestionType, difficulty int, topic string) []Template {
	var exact, relaxed []Template
	for _, tmpl := range r.Templates(subject) {
		if tmpl.Type != qType || !tmpl.supportsDifficulty(difficulty) {
			continue
		}
		relaxed = append(relaxed, tmpl)
		if tmpl.supportsTopic(topic) {
			exact = append(exact, tmpl)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return relaxed
}

func difficultySpan(min, max int) []int {
	span := make([]int, 0, max-min+1)
	for d := min; d <= max; d++ {
		span = append(span, d)
	}
	return span
}
