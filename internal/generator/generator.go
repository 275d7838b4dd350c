package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

// AIQuizGenerator assembles adaptive quizzes from the template registry and
// the performance analyzer. GenerateAdaptiveQuiz never fails: every internal
// step degrades to a simpler configuration, question or quiz instead of
// surfacing an error to the caller.
type AIQuizGenerator struct {
	registry *Registry
	analyzer *PerformanceAnalyzer
	logger   utils.Logger
}

func NewAIQuizGenerator(registry *Registry, analyzer *PerformanceAnalyzer, logger utils.Logger) *AIQuizGenerator {
	return &AIQuizGenerator{
		registry: registry,
		analyzer: analyzer,
		logger:   logger,
	}
}

// topicAllocation is one entry of the topic distribution; counts always sum
// to the configured question count.
type topicAllocation struct {
	Topic string
	Count int
}

// GenerateAdaptiveQuiz produces a quiz tuned to the student's recent
// performance. The returned quiz is never empty.
func (g *AIQuizGenerator) GenerateAdaptiveQuiz(config models.QuizConfiguration) *models.GeneratedQuiz {
	analysis := g.analyzer.Analyze(
		config.StudentID,
		config.LearningArea,
		config.StrugglingTopics,
		config.MasteredTopics,
		config.RecentPerformance,
	)

	optimized, err := optimizeConfiguration(config, analysis)
	if err != nil {
		g.logger.Warn("Configuration optimization failed, using original config",
			"student_id", config.StudentID, "error", err)
		optimized = config
	}

	distribution := buildTopicDistribution(optimized)
	questions := g.generateQuestions(optimized, analysis, distribution)

	if len(questions) == 0 {
		g.logger.Warn("All question generation failed, using generic fallback",
			"student_id", config.StudentID,
			"learning_area", config.LearningArea)
		questions = append(questions, g.fallbackQuestion(
			"general",
			optimized.DifficultyRange.Clamp(3),
			models.MultipleChoice,
		))
	}

	shuffleQuestions(questions)

	return g.assembleQuiz(optimized, analysis, questions)
}

// FallbackQuiz is the last-resort result: a complete two-question arithmetic
// quiz that satisfies the non-empty contract for any configuration.
func (g *AIQuizGenerator) FallbackQuiz(config models.QuizConfiguration) *models.GeneratedQuiz {
	difficulty := config.DifficultyRange.Clamp(3)
	questions := []models.QuizQuestion{
		g.fallbackQuestion("general", difficulty, models.MultipleChoice),
		g.fallbackQuestion("general", difficulty, models.MultipleChoice),
	}

	quiz := g.assembleQuiz(config, models.PerformanceAnalysis{
		StudentID:          config.StudentID,
		LearningArea:       config.LearningArea,
		AveragePerformance: 0.5,
		AttentionSpan:      30,
	}, questions)
	quiz.Description = "A short practice quiz to get started."
	return quiz
}

// optimizeConfiguration adjusts the requested configuration using the
// performance profile. A returned error makes the caller keep the original.
func optimizeConfiguration(config models.QuizConfiguration, analysis models.PerformanceAnalysis) (models.QuizConfiguration, error) {
	optimized := config

	switch {
	case analysis.AveragePerformance < 0.4:
		// Shift the range down so the student rebuilds confidence
		optimized.DifficultyRange.Min = maxInt(1, config.DifficultyRange.Min-1)
		optimized.DifficultyRange.Max = maxInt(3, config.DifficultyRange.Max-2)
	case analysis.AveragePerformance > 0.8:
		optimized.DifficultyRange.Min = minInt(8, config.DifficultyRange.Min+1)
		optimized.DifficultyRange.Max = minInt(10, config.DifficultyRange.Max+2)
	}
	if optimized.DifficultyRange.Max < optimized.DifficultyRange.Min {
		return config, fmt.Errorf("optimization produced inverted difficulty range [%d,%d]",
			optimized.DifficultyRange.Min, optimized.DifficultyRange.Max)
	}

	if analysis.AttentionSpan < 15 && optimized.QuestionCount > 10 {
		optimized.QuestionCount = 10
	}

	if analysis.PerformanceVariability > 0.3 {
		optimized.FocusOnWeakAreas = true
	}

	return optimized, nil
}

// buildTopicDistribution allocates the question count across topics. With
// weak-area focus 60% goes evenly across struggling topics and 40% across up
// to three mastered topics for confidence building; otherwise questions are
// split evenly across all known topics, or a single general bucket. Rounding
// remainder lands on the first topic so the total is exact.
func buildTopicDistribution(config models.QuizConfiguration) []topicAllocation {
	var allocations []topicAllocation

	if config.FocusOnWeakAreas && len(config.StrugglingTopics) > 0 {
		mastered := config.MasteredTopics
		if len(mastered) > 3 {
			mastered = mastered[:3]
		}

		weakTotal := int(math.Round(float64(config.QuestionCount) * 0.6))
		if len(mastered) == 0 {
			weakTotal = config.QuestionCount
		}

		perWeak := weakTotal / len(config.StrugglingTopics)
		for _, topic := range config.StrugglingTopics {
			allocations = append(allocations, topicAllocation{Topic: topic, Count: perWeak})
		}

		if len(mastered) > 0 {
			perMastered := (config.QuestionCount - weakTotal) / len(mastered)
			for _, topic := range mastered {
				allocations = append(allocations, topicAllocation{Topic: topic, Count: perMastered})
			}
		}
	} else {
		topics := append(append([]string{}, config.StrugglingTopics...), config.MasteredTopics...)
		if len(topics) == 0 {
			topics = []string{"general"}
		}
		perTopic := config.QuestionCount / len(topics)
		for _, topic := range topics {
			allocations = append(allocations, topicAllocation{Topic: topic, Count: perTopic})
		}
	}

	total := 0
	for _, alloc := range allocations {
		total += alloc.Count
	}
	allocations[0].Count += config.QuestionCount - total

	return allocations
}

func (g *AIQuizGenerator) generateQuestions(config models.QuizConfiguration, analysis models.PerformanceAnalysis, distribution []topicAllocation) []models.QuizQuestion {
	var questions []models.QuizQuestion

	for _, alloc := range distribution {
		for i := 0; i < alloc.Count; i++ {
			difficulty := selectDifficulty(config, analysis, alloc.Topic)
			qType := selectQuestionType(config)

			templates := g.registry.Find(config.LearningArea, qType, difficulty, alloc.Topic)
			if len(templates) == 0 {
				g.logger.Warn("No template available, skipping question",
					"learning_area", config.LearningArea,
					"type", qType,
					"difficulty", difficulty,
					"topic", alloc.Topic)
				continue
			}

			template := templates[rand.Intn(len(templates))]
			question, err := template.Generator.Generate(GenerateRequest{
				GradeLevel: config.GradeLevel,
				Topic:      alloc.Topic,
				Difficulty: difficulty,
				Type:       qType,
			})
			if err != nil {
				g.logger.Warn("Question generation failed, substituting fallback",
					"topic", alloc.Topic,
					"difficulty", difficulty,
					"type", qType,
					"error", err)
				question = g.fallbackQuestion(alloc.Topic, difficulty, qType)
			}

			question.ID = uuid.NewString()
			questions = append(questions, question)
		}
	}

	return questions
}

// selectDifficulty biases struggling topics toward the easy end and mastered
// topics toward the hard end; anything else interpolates by the student's
// average performance.
func selectDifficulty(config models.QuizConfiguration, analysis models.PerformanceAnalysis, topic string) int {
	bounds := config.DifficultyRange

	if containsTopic(config.StrugglingTopics, topic) {
		return bounds.Clamp(bounds.Min + 1)
	}
	if containsTopic(config.MasteredTopics, topic) {
		return bounds.Clamp(bounds.Max - 1)
	}

	span := float64(bounds.Max - bounds.Min)
	interpolated := float64(bounds.Min) + analysis.AveragePerformance*span
	return bounds.Clamp(int(math.Round(interpolated)))
}

// selectQuestionType prefers an allowed preferred type, then picks uniformly
// from the allowed set. An empty set degrades to multiple choice.
func selectQuestionType(config models.QuizConfiguration) models.QuestionType {
	if len(config.QuestionTypes) == 0 {
		return models.MultipleChoice
	}

	var preferred []models.QuestionType
	for _, p := range config.PreferredQuestionTypes {
		for _, allowed := range config.QuestionTypes {
			if p == allowed {
				preferred = append(preferred, p)
				break
			}
		}
	}
	if len(preferred) > 0 {
		return preferred[rand.Intn(len(preferred))]
	}

	return config.QuestionTypes[rand.Intn(len(config.QuestionTypes))]
}

// fallbackQuestion is a minimal, clearly labeled question preserving the
// intended topic, difficulty and type so the quiz still reaches its target
// count.
func (g *AIQuizGenerator) fallbackQuestion(topic string, difficulty int, qType models.QuestionType) models.QuizQuestion {
	a := difficulty + 2
	b := difficulty + 1
	question := models.QuizQuestion{
		ID:            uuid.NewString(),
		Type:          qType,
		Question:      fmt.Sprintf("Practice question: what is %d + %d?", a, b),
		CorrectAnswer: models.NumberAnswer(float64(a + b)),
		Explanation:   fmt.Sprintf("%d + %d = %d.", a, b, a+b),
		Difficulty:    difficulty,
		Topic:         topic,
		EstimatedTime: 30,
		Hints:         []string{"Count up from the bigger number"},
		Metadata: models.QuestionMetadata{
			LearningObjective: "Practice basic addition",
			BloomsLevel:       models.BloomsRemember,
		},
	}
	switch {
	case qType == models.TrueFalse:
		question.Question = fmt.Sprintf("True or false: %d + %d = %d", a, b, a+b)
		question.Options = []string{"True", "False"}
		question.CorrectAnswer = models.TextAnswer("true")
	case qType.HasOptions():
		// Matching and Ordering have no sensible single-fact rendering;
		// fall back to a multiple-choice form of the same sum.
		question.Type = models.MultipleChoice
		question.Options = numericOptions(float64(a+b), difficulty)
	}
	return question
}

// shuffleQuestions is a Fisher-Yates shuffle for presentation variety; the
// adaptation logic works by attempt index, not original order.
func shuffleQuestions(questions []models.QuizQuestion) {
	for i := len(questions) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}

func (g *AIQuizGenerator) assembleQuiz(config models.QuizConfiguration, analysis models.PerformanceAnalysis, questions []models.QuizQuestion) *models.GeneratedQuiz {
	title := fmt.Sprintf("%s %s Quiz", strings.ToUpper(config.GradeLevel), titleCase(config.LearningArea))
	if config.Strand != "" {
		title += " - " + config.Strand
	}

	totalDuration := 0
	totalDifficulty := 0
	for _, q := range questions {
		totalDuration += q.EstimatedTime
		totalDifficulty += q.Difficulty
	}
	avgDifficulty := float64(totalDifficulty) / float64(len(questions))

	expectedScore := analysis.AveragePerformance * (10 - avgDifficulty) / 10
	expectedScore = math.Max(0.3, math.Min(0.95, expectedScore))

	return &models.GeneratedQuiz{
		ID:                uuid.NewString(),
		Title:             title,
		Description:       describeQuiz(config, analysis),
		Configuration:     config,
		Questions:         questions,
		EstimatedDuration: totalDuration,
		AdaptiveFeatures: models.AdaptiveFeatures{
			DifficultyAdjustment: config.AdaptToDifficulty,
			WeakAreaFocus:        config.FocusOnWeakAreas,
			StrengthReinforce:    config.ReinforceStrengths,
			ReviewQuestions:      config.IncludeReviewQuestions,
		},
		Metadata: models.GenerationMetadata{
			GeneratedAt:        time.Now(),
			PerformanceFactors: analysis.Factors,
			AdaptationReasons:  analysis.Recommendations,
			ExpectedScore:      expectedScore,
		},
	}
}

func describeQuiz(config models.QuizConfiguration, analysis models.PerformanceAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A %d-question %s quiz", config.QuestionCount, strings.ToLower(config.LearningArea))

	switch {
	case config.FocusOnWeakAreas && len(config.StrugglingTopics) > 0:
		fmt.Fprintf(&sb, " focused on strengthening %s", strings.Join(config.StrugglingTopics, ", "))
	case len(config.MasteredTopics) > 0:
		sb.WriteString(" building on topics you already know well")
	}

	switch {
	case analysis.AveragePerformance > 0.8:
		sb.WriteString(". You've been doing great, so expect a challenge!")
	case analysis.AveragePerformance < 0.4:
		sb.WriteString(". Questions start gently to build confidence.")
	default:
		sb.WriteString(". Difficulty adapts as you answer.")
	}

	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func containsTopic(topics []string, topic string) bool {
	for _, t := range topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
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
