package models

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	FillBlank      QuestionType = "fill_blank"
	Matching       QuestionType = "matching"
	Ordering       QuestionType = "ordering"
)

// HasOptions reports whether the type presents a fixed option list to the student.
func (t QuestionType) HasOptions() bool {
	switch t {
	case MultipleChoice, TrueFalse, Matching, Ordering:
		return true
	}
	return false
}

type BloomsLevel string

const (
	BloomsRemember   BloomsLevel = "remember"
	BloomsUnderstand BloomsLevel = "understand"
	BloomsApply      BloomsLevel = "apply"
	BloomsAnalyze    BloomsLevel = "analyze"
	BloomsEvaluate   BloomsLevel = "evaluate"
	BloomsCreate     BloomsLevel = "create"
)

type AnswerKind string

const (
	AnswerText   AnswerKind = "text"
	AnswerNumber AnswerKind = "number"
	AnswerList   AnswerKind = "list"
)

// Answer is a tagged value: a question's correct answer or a student's submitted
// answer. Exactly one payload field is meaningful, selected by Kind.
type Answer struct {
	Kind   AnswerKind `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Number float64    `json:"number,omitempty"`
	List   []string   `json:"list,omitempty"`
}

func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerText, Text: text}
}

func NumberAnswer(value float64) Answer {
	return Answer{Kind: AnswerNumber, Number: value}
}

func ListAnswer(items ...string) Answer {
	return Answer{Kind: AnswerList, List: items}
}

type QuestionMetadata struct {
	LearningObjective string      `json:"learning_objective"`
	BloomsLevel       BloomsLevel `json:"blooms_level"`
	CommonMistakes    []string    `json:"common_mistakes,omitempty"`
	Prerequisites     []string    `json:"prerequisites,omitempty"`
}

// QuizQuestion is immutable once generated.
type QuizQuestion struct {
	ID            string           `json:"id"`
	Type          QuestionType     `json:"type"`
	Question      string           `json:"question"`
	Options       []string         `json:"options,omitempty"`
	CorrectAnswer Answer           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Difficulty    int              `json:"difficulty"` // 1-10
	Topic         string           `json:"topic"`
	Subtopic      string           `json:"subtopic,omitempty"`
	EstimatedTime int              `json:"estimated_time"` // seconds
	Hints         []string         `json:"hints,omitempty"`
	Metadata      QuestionMetadata `json:"metadata"`
}
