package models

import "time"

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

type AdaptationTrigger string

const (
	TriggerStreakIncorrect AdaptationTrigger = "streak_incorrect"
	TriggerStreakCorrect   AdaptationTrigger = "streak_correct"
	TriggerTimePressure    AdaptationTrigger = "time_pressure"
	TriggerConfidenceLow   AdaptationTrigger = "confidence_low"
	TriggerTopicStruggle   AdaptationTrigger = "topic_struggle"
)

type AdaptationAction string

const (
	ActionReduceDifficulty   AdaptationAction = "reduce_difficulty"
	ActionIncreaseDifficulty AdaptationAction = "increase_difficulty"
	ActionProvideHint        AdaptationAction = "provide_hint"
	ActionAddExplanation     AdaptationAction = "add_explanation"
	ActionChangeTopic        AdaptationAction = "change_topic"
)

// ChangesDifficulty reports whether the action retargets question difficulty,
// which makes the engine look for a substitute next question.
func (a AdaptationAction) ChangesDifficulty() bool {
	return a == ActionReduceDifficulty || a == ActionIncreaseDifficulty
}

// QuizResponse records one answered question. Difficulty is copied from the
// question at answer time so results can be bucketed without a join.
type QuizResponse struct {
	QuestionID string          `json:"question_id"`
	Answer     Answer          `json:"answer"`
	IsCorrect  bool            `json:"is_correct"`
	TimeSpent  int             `json:"time_spent"` // seconds
	HintsUsed  int             `json:"hints_used"`
	Confidence ConfidenceLevel `json:"confidence"`
	Difficulty int             `json:"difficulty"`
}

// QuizAdaptation is an append-only audit record of one adaptation decision.
type QuizAdaptation struct {
	Timestamp          time.Time         `json:"timestamp"`
	Trigger            AdaptationTrigger `json:"trigger"`
	Action             AdaptationAction  `json:"action"`
	QuestionIndex      int               `json:"question_index"`
	PreviousDifficulty int               `json:"previous_difficulty"`
	NewDifficulty      int               `json:"new_difficulty"`
	Reason             string            `json:"reason"`
}

// QuizAttempt is the mutable session state for one (quiz, student) pairing.
// All mutation goes through the adaptive engine; Responses and Adaptations are
// append-only and Completed transitions false->true exactly once.
type QuizAttempt struct {
	ID                   string           `json:"id"`
	QuizID               string           `json:"quiz_id"`
	StudentID            string           `json:"student_id"`
	StartTime            time.Time        `json:"start_time"`
	EndTime              *time.Time       `json:"end_time,omitempty"`
	Responses            []QuizResponse   `json:"responses"`
	CurrentQuestionIndex int              `json:"current_question_index"`
	Score                int              `json:"score"`
	MaxScore             int              `json:"max_score"`
	TimeSpent            int              `json:"time_spent"` // cumulative seconds
	Adaptations          []QuizAdaptation `json:"adaptations"`
	Completed            bool             `json:"completed"`
}

// AnsweredQuestionIDs returns the set of question ids already answered.
func (a *QuizAttempt) AnsweredQuestionIDs() map[string]bool {
	answered := make(map[string]bool, len(a.Responses))
	for _, r := range a.Responses {
		answered[r.QuestionID] = true
	}
	return answered
}
