package models

import "time"

// PerformanceAnalysis is the analyzer's profile of a student's recent work.
type PerformanceAnalysis struct {
	StudentID              string   `json:"student_id"`
	LearningArea           string   `json:"learning_area"`
	AveragePerformance     float64  `json:"average_performance"`     // 0.0 - 1.0
	PerformanceVariability float64  `json:"performance_variability"` // population std dev
	AttentionSpan          int      `json:"attention_span"`          // minutes
	Factors                []string `json:"factors,omitempty"`
	Recommendations        []string `json:"recommendations,omitempty"`
}

// QuizResults is derived from an attempt on demand and never persisted by the
// engine itself; archiving is the caller's concern.
type QuizResults struct {
	AttemptID               string             `json:"attempt_id"`
	QuizID                  string             `json:"quiz_id"`
	StudentID               string             `json:"student_id"`
	Score                   int                `json:"score"`
	MaxScore                int                `json:"max_score"`
	Accuracy                float64            `json:"accuracy"` // 0.0 - 1.0
	TimeSpent               int                `json:"time_spent"`
	PerformanceByDifficulty map[int]float64    `json:"performance_by_difficulty"`
	TopicPerformance        map[string]float64 `json:"topic_performance"`
	AdaptationsSummary      []string           `json:"adaptations_summary,omitempty"`
	Recommendations         []string           `json:"recommendations,omitempty"`
	CompletedAt             *time.Time         `json:"completed_at,omitempty"`
}

// StudentPerformanceSummary aggregates a student's archived attempts in one
// learning area, shaped to feed QuizConfiguration's performance fields.
type StudentPerformanceSummary struct {
	StudentID         string    `json:"student_id"`
	LearningArea      string    `json:"learning_area"`
	RecentPerformance []float64 `json:"recent_performance"`
	StrugglingTopics  []string  `json:"struggling_topics"`
	MasteredTopics    []string  `json:"mastered_topics"`
	AttemptCount      int       `json:"attempt_count"`
}
