package generator

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/elimu-cbc/quiz-service/internal/models"
)

func mathematicsTemplates() []Template {
	arithmeticTopics := []string{
		"addition", "subtraction", "multiplication", "division",
		"numbers", "general",
	}
	wordProblemTopics := []string{
		"word problems", "money", "measurement", "general",
	}

	arithmetic := &ArithmeticGenerator{}
	wordProblem := &WordProblemGenerator{}

	return []Template{
		{Type: models.MultipleChoice, Difficulties: difficultySpan(1, 10), Topics: arithmeticTopics, Generator: arithmetic},
		{Type: models.TrueFalse, Difficulties: difficultySpan(1, 8), Topics: arithmeticTopics, Generator: arithmetic},
		{Type: models.ShortAnswer, Difficulties: difficultySpan(1, 10), Topics: arithmeticTopics, Generator: arithmetic},
		{Type: models.FillBlank, Difficulties: difficultySpan(1, 8), Topics: arithmeticTopics, Generator: arithmetic},
		{Type: models.MultipleChoice, Difficulties: difficultySpan(3, 10), Topics: wordProblemTopics, Generator: wordProblem},
		{Type: models.ShortAnswer, Difficulties: difficultySpan(3, 10), Topics: wordProblemTopics, Generator: wordProblem},
	}
}

// ArithmeticGenerator produces number-operation questions. Operand magnitude
// and the operation itself scale with difficulty; distractors perturb the
// correct value by a difficulty-scaled offset.
type ArithmeticGenerator struct{}

type arithmeticProblem struct {
	text     string
	answer   float64
	op       string
	operandA int
	operandB int
}

func (g *ArithmeticGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	problem := buildArithmeticProblem(req.Difficulty)

	question := models.QuizQuestion{
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Subtopic:      problem.op,
		EstimatedTime: 20 + req.Difficulty*10,
		Hints: []string{
			fmt.Sprintf("Work the %s out step by step on paper first", problem.op),
		},
		Metadata: models.QuestionMetadata{
			LearningObjective: fmt.Sprintf("Perform %s with whole numbers", problem.op),
			BloomsLevel:       bloomsForDifficulty(req.Difficulty),
			CommonMistakes:    arithmeticMistakes(problem.op),
			Prerequisites:     []string{"number recognition", "place value"},
		},
	}

	switch req.Type {
	case models.TrueFalse:
		claimed := problem.answer
		isTrue := rand.Intn(2) == 0
		if !isTrue {
			claimed = perturbAnswer(problem.answer, req.Difficulty)
		}
		question.Question = fmt.Sprintf("True or false: %s = %s", problem.text, formatNumber(claimed))
		question.Options = []string{"True", "False"}
		question.CorrectAnswer = models.TextAnswer(strconv.FormatBool(isTrue))
		question.Explanation = fmt.Sprintf("%s equals %s.", problem.text, formatNumber(problem.answer))

	case models.MultipleChoice:
		question.Question = fmt.Sprintf("What is %s?", problem.text)
		question.Options = numericOptions(problem.answer, req.Difficulty)
		question.CorrectAnswer = models.NumberAnswer(problem.answer)
		question.Explanation = fmt.Sprintf("%s = %s. %s", problem.text, formatNumber(problem.answer), arithmeticWorkings(problem))

	case models.FillBlank:
		question.Question = fmt.Sprintf("Fill in the blank: %s = ___", problem.text)
		question.CorrectAnswer = models.NumberAnswer(problem.answer)
		question.Explanation = fmt.Sprintf("%s = %s.", problem.text, formatNumber(problem.answer))

	default: // short answer
		question.Question = fmt.Sprintf("Calculate %s.", problem.text)
		question.CorrectAnswer = models.NumberAnswer(problem.answer)
		question.Explanation = fmt.Sprintf("%s = %s. %s", problem.text, formatNumber(problem.answer), arithmeticWorkings(problem))
	}

	return question, nil
}

func buildArithmeticProblem(difficulty int) arithmeticProblem {
	limit := difficulty * 10
	if limit < 10 {
		limit = 10
	}
	a := rand.Intn(limit) + 1
	b := rand.Intn(limit) + 1

	var op string
	switch {
	case difficulty <= 3:
		if rand.Intn(2) == 0 {
			op = "addition"
		} else {
			op = "subtraction"
		}
	case difficulty <= 6:
		op = "multiplication"
		// Keep products manageable at mid difficulty
		b = rand.Intn(12) + 1
	default:
		op = "division"
		b = rand.Intn(12) + 1
		a = b * (rand.Intn(12) + 1) // exact division only
	}

	switch op {
	case "addition":
		return arithmeticProblem{
			text: fmt.Sprintf("%d + %d", a, b), answer: float64(a + b),
			op: op, operandA: a, operandB: b,
		}
	case "subtraction":
		if b > a {
			a, b = b, a
		}
		return arithmeticProblem{
			text: fmt.Sprintf("%d - %d", a, b), answer: float64(a - b),
			op: op, operandA: a, operandB: b,
		}
	case "multiplication":
		return arithmeticProblem{
			text: fmt.Sprintf("%d × %d", a, b), answer: float64(a * b),
			op: op, operandA: a, operandB: b,
		}
	default:
		return arithmeticProblem{
			text: fmt.Sprintf("%d ÷ %d", a, b), answer: float64(a / b),
			op: op, operandA: a, operandB: b,
		}
	}
}

func arithmeticWorkings(p arithmeticProblem) string {
	switch p.op {
	case "addition":
		return fmt.Sprintf("Add %d and %d together.", p.operandA, p.operandB)
	case "subtraction":
		return fmt.Sprintf("Take %d away from %d.", p.operandB, p.operandA)
	case "multiplication":
		return fmt.Sprintf("Multiply %d by %d.", p.operandA, p.operandB)
	default:
		return fmt.Sprintf("Share %d into %d equal groups.", p.operandA, p.operandB)
	}
}

func arithmeticMistakes(op string) []string {
	switch op {
	case "addition":
		return []string{"forgetting to carry", "misaligning place values"}
	case "subtraction":
		return []string{"subtracting the larger digit from the smaller", "forgetting to borrow"}
	case "multiplication":
		return []string{"adding instead of multiplying", "times-table slips"}
	default:
		return []string{"dividing in the wrong order", "ignoring remainders"}
	}
}

// WordProblemGenerator wraps arithmetic in short everyday scenarios.
type WordProblemGenerator struct{}

var (
	problemNames = []string{"Wanjiku", "Otieno", "Akinyi", "Mwangi", "Chebet", "Baraka"}
	problemItems = []string{"mangoes", "oranges", "pencils", "books", "bananas", "sweets"}
)

func (g *WordProblemGenerator) Generate(req GenerateRequest) (models.QuizQuestion, error) {
	name := problemNames[rand.Intn(len(problemNames))]
	item := problemItems[rand.Intn(len(problemItems))]

	limit := req.Difficulty * 8
	if limit < 10 {
		limit = 10
	}
	have := rand.Intn(limit) + 2
	change := rand.Intn(have) + 1

	var text string
	var answer float64
	if rand.Intn(2) == 0 {
		text = fmt.Sprintf("%s has %d %s. A friend gives %s %d more. How many %s does %s have now?",
			name, have, item, name, change, item, name)
		answer = float64(have + change)
	} else {
		text = fmt.Sprintf("%s has %d %s and gives away %d. How many %s are left?",
			name, have, item, change, item)
		answer = float64(have - change)
	}

	question := models.QuizQuestion{
		Type:          req.Type,
		Question:      text,
		CorrectAnswer: models.NumberAnswer(answer),
		Explanation:   fmt.Sprintf("Start from %d and count the change of %d to get %s.", have, change, formatNumber(answer)),
		Difficulty:    req.Difficulty,
		Topic:         req.Topic,
		Subtopic:      "word problems",
		EstimatedTime: 40 + req.Difficulty*10,
		Hints: []string{
			"Underline the numbers in the story",
			"Decide whether the amount grows or shrinks",
		},
		Metadata: models.QuestionMetadata{
			LearningObjective: "Translate everyday situations into number operations",
			BloomsLevel:       models.BloomsApply,
			CommonMistakes:    []string{"choosing the wrong operation", "copying numbers incorrectly"},
			Prerequisites:     []string{"addition", "subtraction"},
		},
	}

	if req.Type == models.MultipleChoice {
		question.Options = numericOptions(answer, req.Difficulty)
	}

	return question, nil
}

// numericOptions builds four options containing the correct value and three
// perturbed distractors, shuffled in place.
func numericOptions(answer float64, difficulty int) []string {
	seen := map[string]bool{formatNumber(answer): true}
	options := []string{formatNumber(answer)}
	for attempts := 0; len(options) < 4 && attempts < 24; attempts++ {
		candidate := formatNumber(perturbAnswer(answer, difficulty))
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}
	// A near-zero answer at low difficulty has fewer distinct perturbations
	// than slots; fill the rest with sequential offsets.
	for delta := 1.0; len(options) < 4; delta++ {
		candidate := formatNumber(answer + delta)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// perturbAnswer shifts a numeric answer by a non-zero, difficulty-scaled
// offset to make a plausible wrong value.
func perturbAnswer(answer float64, difficulty int) float64 {
	variance := difficulty
	if variance < 2 {
		variance = 2
	}
	offset := rand.Intn(variance*2+1) - variance
	if offset == 0 {
		offset = 1
	}
	wrong := answer + float64(offset)
	if wrong < 0 {
		wrong = answer + float64(-offset)
	}
	return wrong
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func bloomsForDifficulty(difficulty int) models.BloomsLevel {
	switch {
	case difficulty <= 2:
		return models.BloomsRemember
	case difficulty <= 4:
		return models.BloomsUnderstand
	case difficulty <= 6:
		return models.BloomsApply
	case difficulty <= 8:
		return models.BloomsAnalyze
	default:
		return models.BloomsEvaluate
	}
}
