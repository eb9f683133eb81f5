package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestion is one generated multiple-choice question. The json tags match
// the shape the generation backend is asked to produce.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuestionResult is one graded quiz answer, stored on the assessment.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

type Assessment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	QuizScore      float64
	Questions      []QuestionResult
	Category       string
	ImprovementTip string
	CreatedAt      time.Time
}
