package generator

import (
	"fmt"
	"math/rand"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

func languageTemplates() []Template {
	grammarTopics := []string{
		"grammar", "vocabulary", "spelling", "general",
	}
	comprehensionTopics := []string{
		"comprehension", "reading", "general",
	}

	grammar := &GrammarGenerator{}
	comprehension := &ComprehensionGenerator{}

	return []Template{
		{Type: models.MultipleChoice, Difficulties: difficultySpan(1, 10), Topics: grammarTopics, Generator: grammar},
		{Type: models.FillBlank, Difficulties: difficultySpan(1, 8), Topics: grammarTopics, Generator: grammar},
		{Type: models.TrueFalse, Difficulties: difficultySpan(1, 6), Topics: grammarTopics, Generator: grammar},
		{Type: models.MultipleChoice, Difficulties: difficultySpan(2, 10), Topics: comprehensionTopics, Generator: comprehension},
		{Type: models.ShortAnswer, Difficulties: difficultySpan(3, 10), Topics: comprehensionTopics, Generator: comprehension},
	}
}

type grammarItem struct {
	sentence    string // with a ___ gap
	answer      string
	distractors []string
	rule        string
}

var grammarItems = []grammarItem{
	{
		sentence:    "The children ___ playing in the field.",
		answer:      "are",
		distractors: []string{"is", "am", "be"},
		rule:        "A plural subject takes the plural verb 'are'.",
	},
	{
		sentence:    "She ___ to school every morning.",
		answer:      "walks",
		distractors: []string{"walk", "walking", "walked"},
		rule:        "A singular subject in the present tense takes 'walks'.",
	},
	{
		sentence:    "One sheep, two ___.",
		answer:      "sheep",
		distractors: []string{"sheeps", "sheepes", "shoop"},
		rule:        "'Sheep' keeps the same form in the plural.",
	},
	{
		sentence:    "Yesterday we ___ a great meal together.",
		answer:      "ate",
		distractors: []string{"eat", "eaten", "eating"},
		rule:        "'Yesterday' signals the past tense, so use 'ate'.",
	},
	{
		sentence:    "The cat sat ___ the mat.",
		answer:      "on",
		distractors: []string{"in", "at", "over"},
		rule:        "'On' shows something resting on a surface.",
	},
}

// GrammarGenerator produces gap-fill and usage questions from the curated
// sentence pool.
type GrammarGenerator struct{}

func (g *GrammarGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	item := grammarItems[rand.Intn(len(grammarItems))]

	question := models.QuizQuestion{
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Subtopic:      "grammar",
		EstimatedTime: 20 + req.Difficulty*6,
		Explanation:   item.rule,
		Hints:         []string{"Say the sentence aloud and listen for what sounds right"},
		Metadata: models.QuestionMetadata{
			LearningObjective: "Use correct word forms in sentences",
			BloomsLevel:       bloomsForDifficulty(req.Difficulty),
			CommonMistakes:    []string{"matching the verb to the nearest noun instead of the subject"},
			Prerequisites:     []string{"basic sentence structure"},
		},
	}

	switch req.Type {
	case models.FillBlank:
		question.Question = fmt.Sprintf("Fill in the blank: %s", item.sentence)
		question.CorrectAnswer = models.TextAnswer(item.answer)

	case models.TrueFalse:
		shown := item.answer
		isTrue := rand.Intn(2) == 0
		if !isTrue {
			shown = item.distractors[rand.Intn(len(item.distractors))]
		}
		filled := fillGap(item.sentence, shown)
		question.Question = fmt.Sprintf("True or false: %q is a correct sentence.", filled)
		question.Options = []string{"True", "False"}
		question.CorrectAnswer = models.TextAnswer(fmt.Sprintf("%t", isTrue))
		question.Explanation = fmt.Sprintf("%s The correct sentence is %q.", item.rule, fillGap(item.sentence, item.answer))

	default: // multiple choice
		question.Question = fmt.Sprintf("Choose the word that completes the sentence: %s", item.sentence)
		options := append([]string{item.answer}, item.distractors...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		question.Options = options
		question.CorrectAnswer = models.TextAnswer(item.answer)
	}

	return question, nil
}

func fillGap(sentence, word string) string {
	out := make([]byte, 0, len(sentence)+len(word))
	replaced := false
	for i := 0; i < len(sentence); i++ {
		if !replaced && i+3 <= len(sentence) && sentence[i:i+3] == "___" {
			out = append(out, word...)
			i += 2
			replaced = true
			continue
		}
		out = append(out, sentence[i])
	}
	return string(out)
}

type passage struct {
	text      string
	questions []passageQuestion
}

type passageQuestion struct {
	prompt      string
	answer      string
	distractors []string
}

var passages = []passage{
	{
		text: "Amina lives near Lake Victoria. Every Saturday she helps her " +
			"grandmother sell fish at the market. She wakes up early, packs the " +
			"fish in a cool box, and carries it carefully to the stall.",
		questions: []passageQuestion{
			{
				prompt:      "What does Amina sell at the market?",
				answer:      "Fish",
				distractors: []string{"Vegetables", "Fruit", "Baskets"},
			},
			{
				prompt:      "When does Amina help her grandmother?",
				answer:      "Every Saturday",
				distractors: []string{"Every Monday", "Every evening", "Once a year"},
			},
		},
	},
	{
		text: "Kiprop planted three trees behind his school. He waters them each " +
			"morning before lessons begin. The tallest tree now gives shade " +
			"where pupils sit to read during break time.",
		questions: []passageQuestion{
			{
				prompt:      "How many trees did Kiprop plant?",
				answer:      "Three",
				distractors: []string{"Two", "Four", "Five"},
			},
			{
				prompt:      "What do pupils do under the tallest tree?",
				answer:      "Read",
				distractors: []string{"Sleep", "Cook", "Sing"},
			},
		},
	},
}

// ComprehensionGenerator pairs a short passage with one of its questions.
type ComprehensionGenerator struct{}

func (g *ComprehensionGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	p := passages[rand.Intn(len(passages))]
	pq := p.questions[rand.Intn(len(p.questions))]

	question := models.QuizQuestion{
		Type:          req.Type,
		Question:      fmt.Sprintf("Read the passage and answer.\n\n%s\n\n%s", p.text, pq.prompt),
		CorrectAnswer: models.TextAnswer(pq.answer),
		Explanation:   fmt.Sprintf("The passage states the answer directly: %s.", pq.answer),
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Subtopic:      "comprehension",
		EstimatedTime: 60 + req.Difficulty*10,
		Hints:         []string{"Find the sentence in the passage that talks about the question"},
		Metadata: models.QuestionMetadata{
			LearningObjective: "Retrieve information from a short passage",
			BloomsLevel:       models.BloomsUnderstand,
			CommonMistakes:    []string{"answering from memory instead of the passage"},
			Prerequisites:     []string{"reading fluency"},
		},
	}

	if req.Type == models.MultipleChoice {
		options := append([]string{pq.answer}, pq.distractors...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		question.Options = options
	}

	return question, nil
}
