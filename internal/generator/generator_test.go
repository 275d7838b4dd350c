package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimu-cbc/quiz-service/internal/models"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

func newTestGenerator() *AIQuizGenerator {
	return NewAIQuizGenerator(NewRegistry(), NewPerformanceAnalyzer(), utils.NewDefaultLogger())
}

func baseConfig() models.QuizConfiguration {
	return models.QuizConfiguration{
		StudentID:       "student-1",
		GradeLevel:      "grade4",
		LearningArea:    "mathematics",
		QuestionCount:   10,
		DifficultyRange: models.DifficultyRange{Min: 3, Max: 7},
		QuestionTypes:   []models.QuestionType{models.MultipleChoice, models.ShortAnswer},
	}
}

func distributionTotal(allocations []topicAllocation) int {
	total := 0
	for _, alloc := range allocations {
		total += alloc.Count
	}
	return total
}

func TestBuildTopicDistribution_WeakAreaFocusSplit(t *testing.T) {
	config := baseConfig()
	config.FocusOnWeakAreas = true
	config.StrugglingTopics = []string{"division", "subtraction"}
	config.MasteredTopics = []string{"addition"}

	allocations := buildTopicDistribution(config)

	require.Len(t, allocations, 3)
	assert.Equal(t, config.QuestionCount, distributionTotal(allocations))

	byTopic := map[string]int{}
	for _, alloc := range allocations {
		byTopic[alloc.Topic] = alloc.Count
	}
	// 60% of 10 across two weak topics, 40% to the single mastered one.
	// The rounding remainder lands on the first allocation.
	assert.Equal(t, 3, byTopic["subtraction"])
	assert.Equal(t, 4, byTopic["addition"])
	assert.Equal(t, 3, byTopic["division"])
}

func TestBuildTopicDistribution_NoMasteredTopicsAllWeak(t *testing.T) {
	config := baseConfig()
	config.FocusOnWeakAreas = true
	config.StrugglingTopics = []string{"division", "fractions", "subtraction"}

	allocations := buildTopicDistribution(config)

	require.Len(t, allocations, 3)
	assert.Equal(t, config.QuestionCount, distributionTotal(allocations))
	for _, alloc := range allocations {
		assert.GreaterOrEqual(t, alloc.Count, 3)
	}
}

func TestBuildTopicDistribution_EvenSplitWithoutFocus(t *testing.T) {
	config := baseConfig()
	config.QuestionCount = 7
	config.StrugglingTopics = []string{"division"}
	config.MasteredTopics = []string{"addition", "multiplication"}

	allocations := buildTopicDistribution(config)

	require.Len(t, allocations, 3)
	assert.Equal(t, 7, distributionTotal(allocations))
	// 7 / 3 = 2 each, remainder 1 on the first topic.
	assert.Equal(t, "division", allocations[0].Topic)
	assert.Equal(t, 3, allocations[0].Count)
}

func TestBuildTopicDistribution_NoTopicsUsesGeneralBucket(t *testing.T) {
	config := baseConfig()

	allocations := buildTopicDistribution(config)

	require.Len(t, allocations, 1)
	assert.Equal(t, "general", allocations[0].Topic)
	assert.Equal(t, config.QuestionCount, allocations[0].Count)
}

func TestBuildTopicDistribution_MasteredTopicsCappedAtThree(t *testing.T) {
	config := baseConfig()
	config.FocusOnWeakAreas = true
	config.StrugglingTopics = []string{"division"}
	config.MasteredTopics = []string{"a", "b", "c", "d", "e"}

	allocations := buildTopicDistribution(config)

	require.Len(t, allocations, 4, "one weak topic plus at most three mastered")
	assert.Equal(t, config.QuestionCount, distributionTotal(allocations))
}

func TestOptimizeConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		analysis models.PerformanceAnalysis
		mutate   func(*models.QuizConfiguration)
		check    func(*testing.T, models.QuizConfiguration)
	}{
		{
			name:     "low performance eases range",
			analysis: models.PerformanceAnalysis{AveragePerformance: 0.3, AttentionSpan: 25},
			check: func(t *testing.T, got models.QuizConfiguration) {
				assert.Equal(t, 2, got.DifficultyRange.Min)
				assert.Equal(t, 5, got.DifficultyRange.Max)
			},
		},
		{
			name:     "high performance raises range",
			analysis: models.PerformanceAnalysis{AveragePerformance: 0.9, AttentionSpan: 25},
			check: func(t *testing.T, got models.QuizConfiguration) {
				assert.Equal(t, 4, got.DifficultyRange.Min)
				assert.Equal(t, 9, got.DifficultyRange.Max)
			},
		},
		{
			name:     "short attention span caps question count",
			analysis: models.PerformanceAnalysis{AveragePerformance: 0.5, AttentionSpan: 12},
			mutate: func(c *models.QuizConfiguration) {
				c.QuestionCount = 25
			},
			check: func(t *testing.T, got models.QuizConfiguration) {
				assert.Equal(t, 10, got.QuestionCount)
			},
		},
		{
			name:     "high variability forces weak area focus",
			analysis: models.PerformanceAnalysis{AveragePerformance: 0.5, PerformanceVariability: 0.4, AttentionSpan: 18},
			check: func(t *testing.T, got models.QuizConfiguration) {
				assert.True(t, got.FocusOnWeakAreas)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := baseConfig()
			if tt.mutate != nil {
				tt.mutate(&config)
			}
			got, err := optimizeConfiguration(config, tt.analysis)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestSelectDifficulty(t *testing.T) {
	config := baseConfig()
	config.StrugglingTopics = []string{"division"}
	config.MasteredTopics = []string{"addition"}
	analysis := models.PerformanceAnalysis{AveragePerformance: 0.5}

	assert.Equal(t, 4, selectDifficulty(config, analysis, "division"), "struggling topics sit just above the floor")
	assert.Equal(t, 6, selectDifficulty(config, analysis, "addition"), "mastered topics sit just below the ceiling")
	assert.Equal(t, 5, selectDifficulty(config, analysis, "numbers"), "neutral topics interpolate by performance")

	for _, topic := range []string{"division", "addition", "numbers"} {
		d := selectDifficulty(config, analysis, topic)
		assert.GreaterOrEqual(t, d, config.DifficultyRange.Min)
		assert.LessOrEqual(t, d, config.DifficultyRange.Max)
	}
}

func TestSelectQuestionType(t *testing.T) {
	config := baseConfig()
	config.QuestionTypes = []models.QuestionType{models.ShortAnswer}
	config.PreferredQuestionTypes = []models.QuestionType{models.Matching, models.ShortAnswer}

	for i := 0; i < 20; i++ {
		assert.Equal(t, models.ShortAnswer, selectQuestionType(config),
			"preferred types outside the allowed set never win")
	}

	assert.Equal(t, models.MultipleChoice, selectQuestionType(models.QuizConfiguration{}),
		"empty type set degrades to multiple choice")
}

func TestGenerateAdaptiveQuiz(t *testing.T) {
	g := newTestGenerator()
	config := baseConfig()

	quiz := g.GenerateAdaptiveQuiz(config)

	require.NotNil(t, quiz)
	assert.NotEmpty(t, quiz.ID)
	assert.Equal(t, "GRADE4 Mathematics Quiz", quiz.Title)
	require.Len(t, quiz.Questions, config.QuestionCount)

	seen := map[string]bool{}
	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.False(t, seen[q.ID], "question ids are unique")
		seen[q.ID] = true

		assert.GreaterOrEqual(t, q.Difficulty, config.DifficultyRange.Min)
		assert.LessOrEqual(t, q.Difficulty, config.DifficultyRange.Max)
		assert.NotEmpty(t, q.Question)
		assert.Contains(t, config.QuestionTypes, q.Type)
		if q.Type == models.MultipleChoice {
			assert.Len(t, q.Options, 4)
		}
	}

	assert.GreaterOrEqual(t, quiz.Metadata.ExpectedScore, 0.3)
	assert.LessOrEqual(t, quiz.Metadata.ExpectedScore, 0.95)
	assert.Greater(t, quiz.EstimatedDuration, 0)
}

func TestGenerateAdaptiveQuiz_StrugglingStudentGetsEasierFocusedQuiz(t *testing.T) {
	g := newTestGenerator()
	config := baseConfig()
	config.FocusOnWeakAreas = true
	config.StrugglingTopics = []string{"subtraction", "division"}
	config.MasteredTopics = []string{"addition"}
	config.RecentPerformance = []float64{0.3, 0.25, 0.2}

	quiz := g.GenerateAdaptiveQuiz(config)

	require.Len(t, quiz.Questions, config.QuestionCount)

	// Average 0.25 < 0.4 shifts the range from [3,7] down to [2,5].
	weak := 0
	for _, q := range quiz.Questions {
		assert.GreaterOrEqual(t, q.Difficulty, 2)
		assert.LessOrEqual(t, q.Difficulty, 5)
		if q.Topic == "subtraction" || q.Topic == "division" {
			weak++
		}
	}
	assert.Equal(t, 6, weak, "60% of questions target struggling topics")
}

func TestGenerateAdaptiveQuiz_UnknownLearningAreaStillProducesQuiz(t *testing.T) {
	g := newTestGenerator()
	config := baseConfig()
	config.LearningArea = "woodwork"
	config.QuestionCount = 5

	quiz := g.GenerateAdaptiveQuiz(config)

	require.NotNil(t, quiz)
	assert.NotEmpty(t, quiz.Questions, "generation never returns an empty quiz")
}

func TestFallbackQuiz(t *testing.T) {
	g := newTestGenerator()
	config := baseConfig()

	quiz := g.FallbackQuiz(config)

	require.NotNil(t, quiz)
	require.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		assert.Equal(t, models.MultipleChoice, q.Type)
		assert.Equal(t, config.DifficultyRange.Clamp(3), q.Difficulty)
		assert.NotEmpty(t, q.Options)
	}
}

func TestFallbackQuestion_TrueFalseKeepsType(t *testing.T) {
	g := newTestGenerator()

	question := g.fallbackQuestion("addition", 3, models.TrueFalse)

	assert.Equal(t, models.TrueFalse, question.Type)
	assert.Equal(t, []string{"True", "False"}, question.Options)
	assert.Equal(t, models.TextAnswer("true"), question.CorrectAnswer)

	converted := g.fallbackQuestion("addition", 3, models.Matching)
	assert.Equal(t, models.MultipleChoice, converted.Type)
	assert.Len(t, converted.Options, 4)
}

func TestNumericOptions_ZeroAnswerTerminates(t *testing.T) {
	// A zero answer at minimum difficulty has only two distinct perturbed
	// values; the generator must still produce a full option set.
	for difficulty := 1; difficulty <= 3; difficulty++ {
		options := numericOptions(0, difficulty)

		require.Len(t, options, 4)
		assert.Contains(t, options, "0")
		seen := map[string]bool{}
		for _, opt := range options {
			seen[opt] = true
		}
		assert.Len(t, seen, 4, "options must be distinct")
	}
}

func TestShuffleQuestionsPreservesSet(t *testing.T) {
	questions := make([]models.QuizQuestion, 8)
	for i := range questions {
		questions[i] = models.QuizQuestion{ID: string(rune('a' + i))}
	}

	shuffleQuestions(questions)

	seen := map[string]bool{}
	for _, q := range questions {
		seen[q.ID] = true
	}
	assert.Len(t, seen, 8)
}

func TestRegistryFind(t *testing.T) {
	registry := NewRegistry()

	exact := registry.Find("mathematics", models.ShortAnswer, 5, "addition")
	require.NotEmpty(t, exact)
	for _, tmpl := range exact {
		assert.True(t, tmpl.supportsTopic("addition"))
	}

	relaxed := registry.Find("mathematics", models.ShortAnswer, 5, "volcanoes")
	assert.NotEmpty(t, relaxed, "unknown topic relaxes to any template of the right shape")

	assert.Empty(t, registry.Find("woodwork", models.ShortAnswer, 5, "addition"))

	alias := registry.Find("language", models.MultipleChoice, 3, "grammar")
	assert.NotEmpty(t, alias, "language maps onto the english templates")
}
