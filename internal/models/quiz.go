package models

import "time"

// DifficultyRange is an inclusive [Min, Max] pair on the 1-10 scale.
type DifficultyRange struct {
	Min int `json:"min" validate:"min=1,max=10"`
	Max int `json:"max" validate:"min=1,max=10,gtefield=Min"`
}

func (r DifficultyRange) Clamp(difficulty int) int {
	if difficulty < r.Min {
		return r.Min
	}
	if difficulty > r.Max {
		return r.Max
	}
	return difficulty
}

// QuizConfiguration describes a quiz generation request. StrugglingTopics and
// MasteredTopics are assumed disjoint; overlap is not rejected but skews the
// topic distribution.
type QuizConfiguration struct {
	StudentID    string `json:"student_id" validate:"required"`
	GradeLevel   string `json:"grade_level" validate:"required"`
	LearningArea string `json:"learning_area" validate:"required"`
	Strand       string `json:"strand,omitempty"`
	SubStrand    string `json:"sub_strand,omitempty"`

	QuestionCount   int             `json:"question_count" validate:"required,min=1,max=50"`
	TimeLimit       int             `json:"time_limit,omitempty"` // minutes, 0 = untimed
	DifficultyRange DifficultyRange `json:"difficulty_range"`
	QuestionTypes   []QuestionType  `json:"question_types" validate:"required,min=1,dive,question_type"`

	AdaptToDifficulty      bool `json:"adapt_to_difficulty"`
	FocusOnWeakAreas       bool `json:"focus_on_weak_areas"`
	ReinforceStrengths     bool `json:"reinforce_strengths"`
	IncludeReviewQuestions bool `json:"include_review_questions"`

	RecentPerformance      []float64      `json:"recent_performance,omitempty" validate:"dive,min=0,max=1"`
	StrugglingTopics       []string       `json:"struggling_topics,omitempty"`
	MasteredTopics         []string       `json:"mastered_topics,omitempty"`
	PreferredQuestionTypes []QuestionType `json:"preferred_question_types,omitempty"`
}

type AdaptiveFeatures struct {
	DifficultyAdjustment bool `json:"difficulty_adjustment"`
	WeakAreaFocus        bool `json:"weak_area_focus"`
	StrengthReinforce    bool `json:"strength_reinforce"`
	ReviewQuestions      bool `json:"review_questions"`
}

type GenerationMetadata struct {
	GeneratedAt        time.Time `json:"generated_at"`
	PerformanceFactors []string  `json:"performance_factors,omitempty"`
	AdaptationReasons  []string  `json:"adaptation_reasons,omitempty"`
	ExpectedScore      float64   `json:"expected_score"`
}

// GeneratedQuiz is created once by the generator and never mutated afterwards;
// the engine resolves it by ID through the quiz repository.
type GeneratedQuiz struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Configuration     QuizConfiguration  `json:"configuration"`
	Questions         []QuizQuestion     `json:"questions"`
	EstimatedDuration int                `json:"estimated_duration"` // seconds
	AdaptiveFeatures  AdaptiveFeatures   `json:"adaptive_features"`
	Metadata          GenerationMetadata `json:"generation_metadata"`
}

// QuestionByID returns the question with the given id, or nil.
func (q *GeneratedQuiz) QuestionByID(id string) *QuizQuestion {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}
