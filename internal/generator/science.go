package generator

import (
	"fmt"
	"math/rand"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

func scienceTemplates() []Template {
	conceptTopics := []string{
		"plants", "animals", "water", "energy", "weather", "human body", "general",
	}
	experimentTopics := []string{
		"experiments", "water", "plants", "general",
	}

	concept := &ScienceConceptGenerator{}
	experiment := &ExperimentGenerator{}

	return []Template{
		{Type: models.MultipleChoice, Difficulties: difficultySpan(1, 10), Topics: conceptTopics, Generator: concept},
		{Type: models.TrueFalse, Difficulties: difficultySpan(1, 8), Topics: conceptTopics, Generator: concept},
		{Type: models.ShortAnswer, Difficulties: difficultySpan(3, 10), Topics: conceptTopics, Generator: concept},
		{Type: models.Ordering, Difficulties: difficultySpan(3, 10), Topics: experimentTopics, Generator: experiment},
		{Type: models.MultipleChoice, Difficulties: difficultySpan(2, 9), Topics: experimentTopics, Generator: experiment},
	}
}

// scienceFact pairs a prompt with its correct answer and curated distractors.
type scienceFact struct {
	prompt      string
	answer      string
	distractors []string
	explanation string
	objective   string
}

var scienceFacts = map[string][]scienceFact{
	"plants": {
		{
			prompt:      "Which part of a plant absorbs water from the soil?",
			answer:      "Roots",
			distractors: []string{"Leaves", "Flowers", "Stem"},
			explanation: "Roots anchor the plant and take in water and minerals from the soil.",
			objective:   "Identify the functions of plant parts",
		},
		{
			prompt:      "What do plants need to make their own food?",
			answer:      "Sunlight",
			distractors: []string{"Darkness", "Wind", "Rocks"},
			explanation: "Plants use sunlight, water and air to make food through photosynthesis.",
			objective:   "Describe how plants make food",
		},
	},
	"animals": {
		{
			prompt:      "Which animal is a mammal?",
			answer:      "Cow",
			distractors: []string{"Hen", "Tilapia", "Lizard"},
			explanation: "Mammals give birth to live young and feed them on milk; a cow does both.",
			objective:   "Classify animals into groups",
		},
		{
			prompt:      "What covers the body of a bird?",
			answer:      "Feathers",
			distractors: []string{"Scales", "Fur", "Shell"},
			explanation: "Birds are covered in feathers, which keep them warm and help them fly.",
			objective:   "Describe body coverings of animals",
		},
	},
	"water": {
		{
			prompt:      "What do we call water changing into vapour when heated?",
			answer:      "Evaporation",
			distractors: []string{"Condensation", "Freezing", "Melting"},
			explanation: "Heating water turns it into vapour; this change is called evaporation.",
			objective:   "Explain changes of state in the water cycle",
		},
		{
			prompt:      "Which of these is a safe way to make drinking water clean?",
			answer:      "Boiling",
			distractors: []string{"Adding soil", "Leaving it open", "Shaking it"},
			explanation: "Boiling kills germs in water and makes it safe to drink.",
			objective:   "Identify ways of treating drinking water",
		},
	},
	"energy": {
		{
			prompt:      "What is the main source of light energy during the day?",
			answer:      "The sun",
			distractors: []string{"The moon", "A torch", "A candle"},
			explanation: "The sun is the main natural source of light and heat energy.",
			objective:   "Identify sources of energy",
		},
	},
	"weather": {
		{
			prompt:      "Which instrument measures rainfall?",
			answer:      "Rain gauge",
			distractors: []string{"Thermometer", "Wind vane", "Ruler"},
			explanation: "A rain gauge collects rain so the amount can be measured.",
			objective:   "Use weather instruments",
		},
	},
	"human body": {
		{
			prompt:      "Which organ pumps blood around the body?",
			answer:      "Heart",
			distractors: []string{"Lungs", "Stomach", "Brain"},
			explanation: "The heart pumps blood through vessels to every part of the body.",
			objective:   "Name organs of the body and their work",
		},
	},
}

// ScienceConceptGenerator draws from the curated fact pools; unknown topics
// sample across every pool.
type ScienceConceptGenerator struct{}

func (g *ScienceConceptGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	fact, err := pickScienceFact(req.Topic)
	if err != nil {
		return models.QuizQuestion{}, err
	}

	question := models.QuizQuestion{
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		EstimatedTime: 25 + req.Difficulty*8,
		Explanation:   fact.explanation,
		Hints:         []string{"Think about what you observed in class or at home"},
		Metadata: models.QuestionMetadata{
			LearningObjective: fact.objective,
			BloomsLevel:       bloomsForDifficulty(req.Difficulty),
			CommonMistakes:    []string{"mixing up similar terms"},
			Prerequisites:     []string{"observation skills"},
		},
	}

	switch req.Type {
	case models.TrueFalse:
		isTrue := rand.Intn(2) == 0
		stated := fact.answer
		if !isTrue {
			stated = fact.distractors[rand.Intn(len(fact.distractors))]
		}
		question.Question = fmt.Sprintf("True or false: %s Answer: %s", fact.prompt, stated)
		question.Options = []string{"True", "False"}
		question.CorrectAnswer = models.TextAnswer(fmt.Sprintf("%t", isTrue))

	case models.ShortAnswer:
		question.Question = fact.prompt
		question.CorrectAnswer = models.TextAnswer(fact.answer)

	default: // multiple choice
		question.Question = fact.prompt
		options := append([]string{fact.answer}, fact.distractors...)
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		question.Options = options
		question.CorrectAnswer = models.TextAnswer(fact.answer)
	}

	return question, nil
}

func pickScienceFact(topic string) (scienceFact, error) {
	if pool, ok := scienceFacts[topic]; ok && len(pool) > 0 {
		return pool[rand.Intn(len(pool))], nil
	}
	// Unknown topic: sample across all pools
	var all []scienceFact
	for _, pool := range scienceFacts {
		all = append(all, pool...)
	}
	if len(all) == 0 {
		return scienceFact{}, fmt.Errorf("no science facts available for topic %q", topic)
	}
	return all[rand.Intn(len(all))], nil
}

// experiment is a named procedure whose steps must be performed in order.
type experiment struct {
	name      string
	steps     []string
	outcome   string
	objective string
}

var experiments = []experiment{
	{
		name: "growing a bean seed",
		steps: []string{
			"Put damp cotton wool in a clear jar",
			"Place the bean seed against the side of the jar",
			"Keep the jar in a warm, lit place",
			"Water the cotton wool every day",
			"Record how the seed changes each day",
		},
		outcome:   "The seed germinates, growing a root downwards and a shoot upwards.",
		objective: "Investigate conditions needed for germination",
	},
	{
		name: "cleaning dirty water by filtering",
		steps: []string{
			"Cut the bottom off a plastic bottle",
			"Layer cloth, charcoal and sand inside the bottle",
			"Hold the bottle over a clean container",
			"Pour the dirty water slowly through the layers",
			"Compare the filtered water with the original sample",
		},
		outcome:   "The layers trap dirt, so the collected water looks much clearer.",
		objective: "Demonstrate simple water filtration",
	},
	{
		name: "testing which materials dissolve in water",
		steps: []string{
			"Fill three cups with the same amount of water",
			"Add a spoon of salt, sand and sugar to separate cups",
			"Stir each cup the same number of times",
			"Observe which substances disappear into the water",
			"Record the results in a table",
		},
		outcome:   "Salt and sugar dissolve while sand settles at the bottom.",
		objective: "Classify materials as soluble or insoluble",
	},
}

// ExperimentGenerator builds procedure questions: either order the steps or
// pick the correct next step.
type ExperimentGenerator struct{}

func (g *ExperimentGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	exp := experiments[rand.Intn(len(experiments))]

	question := models.QuizQuestion{
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Subtopic:      "experiments",
		EstimatedTime: 45 + req.Difficulty*10,
		Explanation:   exp.outcome,
		Hints:         []string{"Picture yourself doing the experiment from start to finish"},
		Metadata: models.QuestionMetadata{
			LearningObjective: exp.objective,
			BloomsLevel:       models.BloomsAnalyze,
			CommonMistakes:    []string{"swapping preparation and observation steps"},
			Prerequisites:     []string{"following instructions safely"},
		},
	}

	if req.Type == models.Ordering {
		shuffled := append([]string(nil), exp.steps...)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		question.Question = fmt.Sprintf("Arrange the steps for %s in the correct order.", exp.name)
		question.Options = shuffled
		question.CorrectAnswer = models.ListAnswer(exp.steps...)
		return question, nil
	}

	// Multiple choice: which step comes after a given one
	idx := rand.Intn(len(exp.steps) - 1)
	correct := exp.steps[idx+1]
	options := []string{correct}
	for _, step := range exp.steps {
		if step != correct && step != exp.steps[idx] && len(options) < 4 {
			options = append(options, step)
		}
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	question.Question = fmt.Sprintf("When %s, what should you do right after you %q?",
		exp.name, exp.steps[idx])
	question.Options = options
	question.CorrectAnswer = models.TextAnswer(correct)
	return question, nil
}
